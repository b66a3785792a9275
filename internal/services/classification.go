package services

import (
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/models"
)

// Verdict is the user-facing classification of a contact.
type Verdict string

const (
	VerdictNotReported     Verdict = "Not Reported"
	VerdictSafe            Verdict = "Safe"
	VerdictUnderReview     Verdict = "Under Review"
	VerdictMultipleReports Verdict = "Multiple Reports"
	VerdictFlagged         Verdict = "Flagged"
)

// Classify maps a ledger entry to its verdict. A nil entry (nobody reported
// this contact) is Not Reported, as is a contact a moderator marked safe.
// The Multiple Reports branch only fires for entries whose status was
// manually reset while their cumulative count stayed above one.
func Classify(c *models.Contact) Verdict {
	if c == nil {
		return VerdictNotReported
	}
	switch c.Status {
	case models.StatusFlagged:
		return VerdictFlagged
	case models.StatusSafe:
		return VerdictNotReported
	}
	if c.ReportCount >= 2 {
		return VerdictMultipleReports
	}
	return VerdictUnderReview
}

var trustScores = map[Verdict]int{
	VerdictNotReported:     100,
	VerdictSafe:            95,
	VerdictUnderReview:     60,
	VerdictMultipleReports: 15,
	VerdictFlagged:         0,
}

// TrustScore is a fixed presentational lookup, not a computed statistic.
func TrustScore(v Verdict) int {
	return trustScores[v]
}

// CategoryBreakdown groups reports by category and sorts descending by count.
// Ties keep the order categories first appeared in. An empty category counts
// as "Unknown".
func CategoryBreakdown(reports []models.Report) []dto.CategoryCount {
	counts := make(map[string]int)
	var order []string
	for _, r := range reports {
		cat := r.Category
		if cat == "" {
			cat = "Unknown"
		}
		if _, seen := counts[cat]; !seen {
			order = append(order, cat)
		}
		counts[cat]++
	}

	breakdown := make([]dto.CategoryCount, 0, len(order))
	for _, cat := range order {
		breakdown = append(breakdown, dto.CategoryCount{Category: cat, Count: counts[cat]})
	}
	// Insertion-order stable sort keeps ties deterministic.
	for i := 1; i < len(breakdown); i++ {
		for j := i; j > 0 && breakdown[j].Count > breakdown[j-1].Count; j-- {
			breakdown[j], breakdown[j-1] = breakdown[j-1], breakdown[j]
		}
	}
	return breakdown
}

// PrimaryCategory is the category of the newest report, "None" when there are
// no reports. Reports are expected newest first.
func PrimaryCategory(reports []models.Report) string {
	if len(reports) == 0 {
		return "None"
	}
	if reports[0].Category == "" {
		return "Unknown"
	}
	return reports[0].Category
}
