package domain

// Trace is the per-request diagnostic object. It is populated throughout the
// pipeline regardless of outcome, but only returned to the caller when the
// debug flag was set. Field names match what the mobile client already parses.
type Trace struct {
	ProjectID      string   `json:"projectId,omitempty"`
	Step           string   `json:"step,omitempty"`
	MarkerDocs     int      `json:"mm_docs"`
	ReportDocs     int      `json:"rc_docs"`
	MarkerError    string   `json:"mm_error,omitempty"`
	ReportError    string   `json:"rc_error,omitempty"`
	CandidateCount int      `json:"candidate_count"`
	SampleTitles   []string `json:"sample_titles,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// NewTrace starts a trace for one invocation.
func NewTrace(projectID string) *Trace {
	return &Trace{ProjectID: projectID, Step: "start"}
}
