package dto

import "time"

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// SearchResponse is the public verdict for one contact. A contact nobody has
// reported yields {status: "Not Reported", report_count: 0} with no breakdown.
type SearchResponse struct {
	Status            string          `json:"status"`
	ReportCount       int             `json:"report_count"`
	TrustScore        int             `json:"trust_score"`
	FraudCategory     string          `json:"fraud_category"`
	CategoryBreakdown []CategoryCount `json:"category_breakdown"`
	LastReportedAt    *time.Time      `json:"last_reported_at,omitempty"`
}
