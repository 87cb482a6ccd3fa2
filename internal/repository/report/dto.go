package report

import "github.com/safemap-cloud/askmap/internal/domain"

// reportDTO mirrors the Firestore report_community schema written by the
// mobile client.
type reportDTO struct {
	Title        string `firestore:"title"`
	Description  string `firestore:"description"`
	IncidentType string `firestore:"incidentType"`
	Location     string `firestore:"location"`
	RegionName   string `firestore:"regionName"`
	OccurDate    string `firestore:"occurDate"`
	OccurTime    string `firestore:"occurTime"`
	Status       string `firestore:"status"`
	WriterName   string `firestore:"writerName"`
	ImageURL     string `firestore:"imageUrl"`
}

func (d reportDTO) toDomain(id string) domain.CommunityReport {
	return domain.CommunityReport{
		ID:           id,
		Title:        d.Title,
		Description:  d.Description,
		IncidentType: d.IncidentType,
		Location:     d.Location,
		RegionName:   d.RegionName,
		OccurDate:    d.OccurDate,
		OccurTime:    d.OccurTime,
		Status:       d.Status,
		WriterName:   d.WriterName,
		ImageURL:     d.ImageURL,
	}
}
