// Package diag reports collection counts and samples for operational checks.
package diag

import (
	"context"

	"github.com/safemap-cloud/askmap/internal/domain"
)

const sampleLimit = 3

// Service probes both collections read-only. Every query failure is captured
// in the report instead of aborting the probe, so a half-broken store still
// yields useful output.
type Service struct {
	markers   MarkerSource
	reports   ReportSource
	projectID string
}

// New creates a diagnostic service.
func New(markers MarkerSource, reports ReportSource, projectID string) *Service {
	return &Service{markers: markers, reports: reports, projectID: projectID}
}

// Peek gathers counts and capped samples from both collections.
func (s *Service) Peek(ctx context.Context) domain.DiagReport {
	report := domain.DiagReport{
		ProjectID:     s.projectID,
		MarkerSamples: []domain.MarkerSample{},
		ReportSamples: []domain.ReportSample{},
	}

	if count, err := s.markers.Count(ctx); err != nil {
		report.MarkerCount = -1
		report.MarkerCountError = err.Error()
	} else {
		report.MarkerCount = count
	}

	if count, err := s.reports.Count(ctx); err != nil {
		report.ReportCount = -1
		report.ReportCountError = err.Error()
	} else {
		report.ReportCount = count
	}

	if markers, err := s.markers.Recent(ctx, sampleLimit); err != nil {
		report.MarkerFetchError = err.Error()
	} else {
		report.MarkerDocs = len(markers)
		for _, m := range markers {
			report.MarkerSamples = append(report.MarkerSamples, domain.MarkerSample{
				ID:        m.ID,
				Name:      m.Name,
				Address:   m.Address,
				CrimeType: m.CrimeType,
			})
		}
	}

	if reports, err := s.reports.Recent(ctx, sampleLimit); err != nil {
		report.ReportFetchError = err.Error()
	} else {
		report.ReportDocs = len(reports)
		for _, r := range reports {
			report.ReportSamples = append(report.ReportSamples, domain.ReportSample{
				ID:           r.ID,
				Title:        r.Title,
				IncidentType: r.IncidentType,
				Location:     r.Location,
			})
		}
	}

	return report
}
