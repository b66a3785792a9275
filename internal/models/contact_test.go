package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name     string
		previous string
		newCount int
		want     string
	}{
		{"first report stays under review", StatusUnderReview, 1, StatusUnderReview},
		{"second report flags", StatusUnderReview, 2, StatusFlagged},
		{"many reports flag", StatusUnderReview, 7, StatusFlagged},
		{"flagged is sticky", StatusFlagged, 1, StatusFlagged},
		{"flagged stays flagged on more reports", StatusFlagged, 3, StatusFlagged},
		{"manual safe reset, one new report", StatusSafe, 3, StatusUnderReview},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextStatus(tt.previous, tt.newCount))
		})
	}
}

// A contact manually reset to safe must take two fresh reports to be flagged
// again, not one.
func TestNextStatusSafeResetSequence(t *testing.T) {
	count := 5 // cumulative count at the time of the manual reset

	count++
	first := NextStatus(StatusSafe, count)
	assert.Equal(t, StatusUnderReview, first)

	count++
	second := NextStatus(first, count)
	assert.Equal(t, StatusFlagged, second)
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidKind(KindPhone))
	assert.True(t, ValidKind(KindEmail))
	assert.False(t, ValidKind("fax"))
	assert.False(t, ValidKind(""))

	assert.True(t, ValidStatus(StatusSafe))
	assert.True(t, ValidStatus(StatusUnderReview))
	assert.True(t, ValidStatus(StatusFlagged))
	assert.False(t, ValidStatus("banned"))
}
