package dto

// SubmitReportRequest is the multipart form of POST /api/report; the optional
// evidence file rides alongside as the "evidence" part.
type SubmitReportRequest struct {
	Contact     string `form:"contact" json:"contact"`
	Kind        string `form:"kind" json:"kind"`
	Category    string `form:"category" json:"category"`
	Description string `form:"description" json:"description"`
}

type RemovalRequestInput struct {
	Contact string `json:"contact"`
	Reason  string `json:"reason"`
}
