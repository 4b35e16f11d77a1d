package sourcing

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
	"github.com/sourcematch/backend/internal/domain/shared"
)

// HighScoreThreshold is the similarity above which a suggestion counts as
// high-confidence. It is the default cutoff for bulk auto-confirmation and
// for the high_score listing filter.
const HighScoreThreshold = 0.95

// MatchSuggestion is a scored candidate pairing of a supplier product with
// a local product. Suggestions are computed on demand and never persisted;
// only confirmations and rejections are durable.
type MatchSuggestion struct {
	LocalProductID uuid.UUID `json:"local_product_id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	LocalizedName  string    `json:"localized_name,omitempty"`
	Similarity     float64   `json:"similarity"`
	CommonTokens   []string  `json:"common_tokens,omitempty"`
}

// SortSuggestions orders suggestions by similarity descending, breaking
// ties by ascending local product ID so equal-score candidates always
// appear in the same order.
func SortSuggestions(suggestions []MatchSuggestion) {
	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Similarity != suggestions[j].Similarity {
			return suggestions[i].Similarity > suggestions[j].Similarity
		}
		return bytes.Compare(suggestions[i].LocalProductID[:], suggestions[j].LocalProductID[:]) < 0
	})
}

// FilterType selects which supplier products a suggestion listing returns
type FilterType string

const (
	// FilterAll returns every supplier product
	FilterAll FilterType = "all"
	// FilterWithSuggestions returns only products with at least one suggestion
	FilterWithSuggestions FilterType = "with_suggestions"
	// FilterWithoutSuggestions returns only products with no suggestions
	FilterWithoutSuggestions FilterType = "without_suggestions"
	// FilterHighScore returns only products whose best suggestion is at or
	// above HighScoreThreshold
	FilterHighScore FilterType = "high_score"
)

// ParseFilterType validates a filter type string; empty defaults to all
func ParseFilterType(s string) (FilterType, error) {
	switch FilterType(s) {
	case "":
		return FilterAll, nil
	case FilterAll, FilterWithSuggestions, FilterWithoutSuggestions, FilterHighScore:
		return FilterType(s), nil
	default:
		return "", shared.NewDomainError("VALIDATION_ERROR", "Invalid filter type: "+s)
	}
}
