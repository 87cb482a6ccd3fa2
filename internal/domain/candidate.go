package domain

// SourceType identifies which collection a candidate was retrieved from.
type SourceType string

const (
	// SourceMapMarker is the incident marker collection.
	SourceMapMarker SourceType = "map_marker"
	// SourceCommunityReport is the community report collection.
	SourceCommunityReport SourceType = "report_community"
)

// Candidate is one normalized, retrievable unit of text derived from a stored
// document, eligible for ranking against a question. Immutable once built.
type Candidate struct {
	ID    string // collection-qualified, e.g. "map_marker/<docId>"
	Type  SourceType
	Title string
	Text  string
}

// ScoredCandidate is a candidate with its cosine similarity against the question.
type ScoredCandidate struct {
	Candidate
	Score float64
}

// SourceRef is the caller-facing citation for one selected candidate.
type SourceRef struct {
	ID    string     `json:"id"`
	Type  SourceType `json:"type"`
	Score float64    `json:"score"`
}

// Ref returns the citation record for a scored candidate.
func (c ScoredCandidate) Ref() SourceRef {
	return SourceRef{ID: c.ID, Type: c.Type, Score: c.Score}
}
