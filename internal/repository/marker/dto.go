package marker

import (
	"strconv"

	"github.com/safemap-cloud/askmap/internal/domain"
)

// markerDTO mirrors the Firestore map_marker schema. Field names come from the
// original CSV import, hence the mixed casing and Korean coordinate keys.
type markerDTO struct {
	Name        string   `firestore:"name"`
	Description string   `firestore:"Description"`
	Address     string   `firestore:"Address"`
	CrimeType   string   `firestore:"Crime Type"`
	Time        string   `firestore:"Time"`
	URL         string   `firestore:"url"`
	Latitude    *float64 `firestore:"위도"`
	Longitude   *float64 `firestore:"경도"`
}

func (d markerDTO) toDomain(id string) domain.MapMarker {
	return domain.MapMarker{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		Address:     d.Address,
		CrimeType:   d.CrimeType,
		Time:        d.Time,
		URL:         d.URL,
		Latitude:    formatCoord(d.Latitude),
		Longitude:   formatCoord(d.Longitude),
	}
}

// formatCoord renders a coordinate for text joining; nil means the field was
// absent and contributes nothing.
func formatCoord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
