package domain

import "strings"

// MapMarker mirrors one document of the map_marker collection.
// Field values are already stringified by the repository layer; absent fields
// are empty strings.
type MapMarker struct {
	ID          string
	Name        string
	Description string
	Address     string
	CrimeType   string
	Time        string
	URL         string
	Latitude    string
	Longitude   string
}

// SearchText joins the marker's non-empty semantic fields for embedding.
func (m MapMarker) SearchText() string {
	return joinNonEmpty(
		m.Name,
		m.Description,
		m.Address,
		m.CrimeType,
		m.Time,
		m.URL,
		m.Latitude,
		m.Longitude,
	)
}

// DisplayTitle picks the first non-empty of name, crime type, address,
// falling back to the document id.
func (m MapMarker) DisplayTitle() string {
	return firstNonEmpty(m.Name, m.CrimeType, m.Address, m.ID)
}

// Candidate converts the marker into a uniform retrieval candidate.
func (m MapMarker) Candidate() Candidate {
	return Candidate{
		ID:    string(SourceMapMarker) + "/" + m.ID,
		Type:  SourceMapMarker,
		Title: m.DisplayTitle(),
		Text:  m.SearchText(),
	}
}

// CommunityReport mirrors one document of the report_community collection.
type CommunityReport struct {
	ID           string
	Title        string
	Description  string
	IncidentType string
	Location     string
	RegionName   string
	OccurDate    string
	OccurTime    string
	Status       string
	WriterName   string
	ImageURL     string
}

// SearchText joins the report's non-empty semantic fields for embedding.
func (r CommunityReport) SearchText() string {
	return joinNonEmpty(
		r.Title,
		r.Description,
		r.IncidentType,
		r.Location,
		r.RegionName,
		r.OccurDate,
		r.OccurTime,
		r.Status,
		r.WriterName,
		r.ImageURL,
	)
}

// DisplayTitle picks the first non-empty of title, incident type, location,
// falling back to the document id.
func (r CommunityReport) DisplayTitle() string {
	return firstNonEmpty(r.Title, r.IncidentType, r.Location, r.ID)
}

// Candidate converts the report into a uniform retrieval candidate.
func (r CommunityReport) Candidate() Candidate {
	return Candidate{
		ID:    string(SourceCommunityReport) + "/" + r.ID,
		Type:  SourceCommunityReport,
		Title: r.DisplayTitle(),
		Text:  r.SearchText(),
	}
}

// joinNonEmpty newline-joins values, skipping empty ones so absent fields
// contribute no stray separators.
func joinNonEmpty(values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "\n")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
