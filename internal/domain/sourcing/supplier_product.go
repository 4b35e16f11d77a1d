package sourcing

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sourcematch/backend/internal/domain/shared"
)

// SupplierProduct represents a product listed by a supplier, imported from
// the supplier's catalog. It is the aggregate root of the matching state
// machine: a supplier product is either unmatched or confirmed against
// exactly one local product.
type SupplierProduct struct {
	shared.TenantAggregateRoot
	SupplierID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SourceCode    string          `gorm:"type:varchar(100);index"` // Supplier's own article number
	RawName       string          `gorm:"type:varchar(300);not null"`
	LocalizedName string          `gorm:"type:varchar(300)"` // Translated name, preferred for matching when set
	Price         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'CNY'"`
	ImageURL      string          `gorm:"type:varchar(500)"`
	SourceURL     string          `gorm:"type:varchar(500)"` // Listing URL on the supplier platform

	// Match state. ConfirmedAt is non-nil exactly when ManualConfirmed is
	// true, and LocalProductID is always set while confirmed.
	LocalProductID  *uuid.UUID `gorm:"type:uuid;index"`
	Confidence      float64    `gorm:"not null;default:0"`
	ManualConfirmed bool       `gorm:"not null;default:false"`
	ConfirmedBy     *uuid.UUID `gorm:"type:uuid"`
	ConfirmedAt     *time.Time
}

// TableName returns the table name for GORM
func (SupplierProduct) TableName() string {
	return "supplier_products"
}

// NewSupplierProduct creates a new unmatched supplier product
func NewSupplierProduct(tenantID, supplierID uuid.UUID, rawName string) (*SupplierProduct, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier ID is required")
	}
	if err := validateListingName(rawName); err != nil {
		return nil, err
	}

	sp := &SupplierProduct{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SupplierID:          supplierID,
		RawName:             rawName,
		Price:               decimal.Zero,
		Currency:            "CNY",
	}

	sp.AddDomainEvent(NewSupplierProductCreatedEvent(sp))

	return sp, nil
}

// ConfirmMatch confirms this supplier product against a local product.
// Confirming over an existing different match succeeds; the previous local
// product ID is returned so callers can audit the overwrite. Confirming the
// already-confirmed pair again refreshes confidence and the confirmation
// timestamp.
func (sp *SupplierProduct) ConfirmMatch(localProductID uuid.UUID, confidence float64, confirmedBy uuid.UUID) (*uuid.UUID, error) {
	if localProductID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Local product ID is required")
	}
	if confidence < 0 || confidence > 1 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Confidence must be between 0 and 1")
	}

	var previous *uuid.UUID
	if sp.ManualConfirmed && sp.LocalProductID != nil && *sp.LocalProductID != localProductID {
		prev := *sp.LocalProductID
		previous = &prev
	}

	now := time.Now()
	lp := localProductID
	sp.LocalProductID = &lp
	sp.Confidence = confidence
	sp.ManualConfirmed = true
	if confirmedBy != uuid.Nil {
		by := confirmedBy
		sp.ConfirmedBy = &by
	} else {
		sp.ConfirmedBy = nil
	}
	sp.ConfirmedAt = &now
	sp.UpdatedAt = now
	sp.IncrementVersion()

	sp.AddDomainEvent(NewMatchConfirmedEvent(sp, previous))

	return previous, nil
}

// Unmatch clears the match state. Unmatching an already unmatched product
// is a no-op.
func (sp *SupplierProduct) Unmatch() {
	if !sp.ManualConfirmed && sp.LocalProductID == nil {
		return
	}

	previous := sp.LocalProductID
	sp.LocalProductID = nil
	sp.Confidence = 0
	sp.ManualConfirmed = false
	sp.ConfirmedBy = nil
	sp.ConfirmedAt = nil
	sp.UpdatedAt = time.Now()
	sp.IncrementVersion()

	sp.AddDomainEvent(NewMatchUnmatchedEvent(sp, previous))
}

// IsConfirmedTo reports whether this product is currently confirmed against
// the given local product
func (sp *SupplierProduct) IsConfirmedTo(localProductID uuid.UUID) bool {
	return sp.ManualConfirmed && sp.LocalProductID != nil && *sp.LocalProductID == localProductID
}

// IsConfirmed reports whether this product has a confirmed match
func (sp *SupplierProduct) IsConfirmed() bool {
	return sp.ManualConfirmed
}

// ReassignSupplier moves this product to a different supplier. Match state
// is deliberately left untouched: the confirmed local product and the
// rejection history describe the product itself, not its supplier.
func (sp *SupplierProduct) ReassignSupplier(newSupplierID uuid.UUID) error {
	if newSupplierID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Supplier ID is required")
	}
	if newSupplierID == sp.SupplierID {
		return nil
	}

	oldSupplierID := sp.SupplierID
	sp.SupplierID = newSupplierID
	sp.UpdatedAt = time.Now()
	sp.IncrementVersion()

	sp.AddDomainEvent(NewSupplierReassignedEvent(sp, oldSupplierID))

	return nil
}

// UpdateListing updates the supplier-provided listing fields
func (sp *SupplierProduct) UpdateListing(rawName, localizedName string, price decimal.Decimal, currency string) error {
	if err := validateListingName(rawName); err != nil {
		return err
	}
	if len(localizedName) > 300 {
		return shared.NewDomainError("VALIDATION_ERROR", "Localized name cannot exceed 300 characters")
	}
	if price.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Price cannot be negative")
	}
	if currency != "" && len(currency) != 3 {
		return shared.NewDomainError("VALIDATION_ERROR", "Currency must be a 3-letter code")
	}

	sp.RawName = rawName
	sp.LocalizedName = strings.TrimSpace(localizedName)
	sp.Price = price
	if currency != "" {
		sp.Currency = strings.ToUpper(currency)
	}
	sp.UpdatedAt = time.Now()
	sp.IncrementVersion()

	sp.AddDomainEvent(NewSupplierProductUpdatedEvent(sp))

	return nil
}

// SetURLs sets the image and source listing URLs
func (sp *SupplierProduct) SetURLs(imageURL, sourceURL string) error {
	if imageURL != "" {
		if err := validateListingURL(imageURL); err != nil {
			return err
		}
	}
	if sourceURL != "" {
		if err := validateListingURL(sourceURL); err != nil {
			return err
		}
	}

	sp.ImageURL = imageURL
	sp.SourceURL = sourceURL
	sp.UpdatedAt = time.Now()
	sp.IncrementVersion()

	return nil
}

// MatchingName returns the name used for similarity comparison:
// the localized name when present, otherwise the raw supplier name.
func (sp *SupplierProduct) MatchingName() string {
	if sp.LocalizedName != "" {
		return sp.LocalizedName
	}
	return sp.RawName
}

func validateListingName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Product name cannot be empty")
	}
	if len(name) > 300 {
		return shared.NewDomainError("VALIDATION_ERROR", "Product name cannot exceed 300 characters")
	}
	return nil
}

func validateListingURL(raw string) error {
	if len(raw) > 500 {
		return shared.NewDomainError("VALIDATION_ERROR", "URL cannot exceed 500 characters")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return shared.NewDomainError("VALIDATION_ERROR", "URL must be a valid http(s) address")
	}
	return nil
}
