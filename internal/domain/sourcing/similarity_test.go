package sourcing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	t.Run("identical strings score 1.0", func(t *testing.T) {
		score, tokens := Score("蓝牙耳机A1", "蓝牙耳机A1")
		assert.Equal(t, 1.0, score)
		assert.NotEmpty(t, tokens)
	})

	t.Run("identical after normalization scores 1.0", func(t *testing.T) {
		// Full-width A1 folds to half-width, case folds too
		score, _ := Score("蓝牙耳机Ａ１", "蓝牙耳机a1")
		assert.Equal(t, 1.0, score)
	})

	t.Run("empty inputs score 0", func(t *testing.T) {
		score, tokens := Score("", "蓝牙耳机A1")
		assert.Equal(t, 0.0, score)
		assert.Nil(t, tokens)

		score, tokens = Score("蓝牙耳机A1", "")
		assert.Equal(t, 0.0, score)
		assert.Nil(t, tokens)

		score, _ = Score("", "")
		assert.Equal(t, 0.0, score)
	})

	t.Run("punctuation-only input scores 0", func(t *testing.T) {
		score, tokens := Score("!!! --- !!!", "蓝牙耳机A1")
		assert.Equal(t, 0.0, score)
		assert.Nil(t, tokens)
	})

	t.Run("no overlap scores 0", func(t *testing.T) {
		score, tokens := Score("USB Charger", "蓝牙耳机")
		assert.Equal(t, 0.0, score)
		assert.Nil(t, tokens)
	})

	t.Run("CJK name shares model token with English name", func(t *testing.T) {
		score, tokens := Score("蓝牙耳机A1", "Bluetooth Earphone A1")
		assert.Greater(t, score, 0.0)
		assert.Less(t, score, 1.0)
		assert.Equal(t, []string{"a1"}, tokens)
	})

	t.Run("CJK names split per character", func(t *testing.T) {
		score, tokens := Score("蓝牙耳机A1", "蓝牙耳机A2")
		// Shares 蓝, 牙, 耳, 机 out of five tokens each
		assert.Equal(t, []string{"机", "牙", "耳", "蓝"}, tokens)
		assert.InDelta(t, 4.0/6.0, score, 1e-9)
	})

	t.Run("short fragment of a long name scores below full overlap", func(t *testing.T) {
		full, _ := Score("蓝牙耳机", "蓝牙耳机")
		fragment, _ := Score("蓝牙", "蓝牙耳机高保真降噪无线版")
		assert.Equal(t, 1.0, full)
		assert.Less(t, fragment, full)
	})

	t.Run("punctuation is ignored", func(t *testing.T) {
		score, _ := Score("Bluetooth-Earphone A1!", "bluetooth earphone a1")
		assert.Equal(t, 1.0, score)
	})

	t.Run("symmetric", func(t *testing.T) {
		s1, t1 := Score("蓝牙耳机A1", "Bluetooth Earphone A1")
		s2, t2 := Score("Bluetooth Earphone A1", "蓝牙耳机A1")
		assert.Equal(t, s1, s2)
		assert.Equal(t, t1, t2)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		first, firstTokens := Score("无线蓝牙耳机 A1 Pro", "蓝牙耳机A1")
		for i := 0; i < 10; i++ {
			score, tokens := Score("无线蓝牙耳机 A1 Pro", "蓝牙耳机A1")
			assert.Equal(t, first, score)
			assert.Equal(t, firstTokens, tokens)
		}
	})

	t.Run("common tokens are sorted", func(t *testing.T) {
		_, tokens := Score("wireless bluetooth earphone", "earphone bluetooth case")
		require.Len(t, tokens, 2)
		assert.Equal(t, []string{"bluetooth", "earphone"}, tokens)
	})

	t.Run("score never exceeds 1", func(t *testing.T) {
		pairs := [][2]string{
			{"蓝牙耳机A1", "蓝牙耳机A1 蓝牙耳机A1"},
			{"a b c", "a b c d"},
			{"耳机", "耳机耳机"},
		}
		for _, p := range pairs {
			score, _ := Score(p[0], p[1])
			assert.LessOrEqual(t, score, 1.0)
			assert.GreaterOrEqual(t, score, 0.0)
		}
	})
}

func TestTokenize(t *testing.T) {
	t.Run("splits Han runs into single characters keeping latin runs whole", func(t *testing.T) {
		tokens := tokenize("蓝牙耳机a1")
		assert.Equal(t, []string{"蓝", "牙", "耳", "机", "a1"}, tokens)
	})

	t.Run("latin run between Han characters stays whole", func(t *testing.T) {
		tokens := tokenize("耳机a1蓝牙")
		assert.Equal(t, []string{"耳", "机", "a1", "蓝", "牙"}, tokens)
	})

	t.Run("whitespace separates fields", func(t *testing.T) {
		tokens := tokenize("bluetooth earphone a1")
		assert.Equal(t, []string{"bluetooth", "earphone", "a1"}, tokens)
	})
}

func TestNormalizeName(t *testing.T) {
	t.Run("folds width and case", func(t *testing.T) {
		assert.Equal(t, "蓝牙耳机a1", normalizeName("蓝牙耳机Ａ１"))
	})

	t.Run("strips punctuation to spaces", func(t *testing.T) {
		assert.Equal(t, "bluetooth earphone a1", normalizeName("Bluetooth-Earphone (A1)"))
	})

	t.Run("collapses to empty for symbol-only input", func(t *testing.T) {
		assert.Equal(t, "", normalizeName("!!! ---"))
	})
}
