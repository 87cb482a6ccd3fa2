package domain

// MarkerSample is a capped preview of one map_marker document.
type MarkerSample struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Address   string `json:"address,omitempty"`
	CrimeType string `json:"crimeType,omitempty"`
}

// ReportSample is a capped preview of one report_community document.
type ReportSample struct {
	ID           string `json:"id"`
	Title        string `json:"title,omitempty"`
	IncidentType string `json:"incidentType,omitempty"`
	Location     string `json:"location,omitempty"`
}

// DiagReport is the diagnostic probe output: collection counts and samples
// with per-query error capture. A failed count reports -1 plus the error
// string, matching what operators already expect from the probe.
type DiagReport struct {
	ProjectID        string         `json:"projectId,omitempty"`
	MarkerCount      int64          `json:"map_marker_count"`
	MarkerCountError string         `json:"map_marker_count_error,omitempty"`
	ReportCount      int64          `json:"report_community_count"`
	ReportCountError string         `json:"report_community_count_error,omitempty"`
	MarkerDocs       int            `json:"mm_docs"`
	ReportDocs       int            `json:"rc_docs"`
	MarkerFetchError string         `json:"mm_error,omitempty"`
	ReportFetchError string         `json:"rc_error,omitempty"`
	MarkerSamples    []MarkerSample `json:"mm_samples"`
	ReportSamples    []ReportSample `json:"rc_samples"`
}
