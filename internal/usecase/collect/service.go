// Package collect builds the bounded candidate pool from both collections.
package collect

import (
	"context"
	"sync"

	"github.com/safemap-cloud/askmap/internal/domain"
)

const (
	defaultMaxDocs   = 80
	sampleTitleLimit = 5
)

// Service queries both collections and maps the documents into a uniform
// candidate list. A failing collection degrades to an empty result; the
// failure reason lands in the trace, never in an error return.
type Service struct {
	markers MarkerSource
	reports ReportSource
	maxDocs int
}

// New creates a collector service.
func New(markers MarkerSource, reports ReportSource) *Service {
	return &Service{markers: markers, reports: reports, maxDocs: defaultMaxDocs}
}

// WithMaxDocs overrides the per-collection document cap.
func (s *Service) WithMaxDocs(n int) *Service {
	if n > 0 {
		s.maxDocs = n
	}
	return s
}

// Collect queries both collections concurrently and returns the combined
// candidate pool, markers first. The pool never exceeds 2 × maxDocs.
func (s *Service) Collect(ctx context.Context, trace *domain.Trace) []domain.Candidate {
	var (
		wg        sync.WaitGroup
		markers   []domain.MapMarker
		reports   []domain.CommunityReport
		markerErr error
		reportErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		markers, markerErr = s.markers.Recent(ctx, s.maxDocs)
	}()
	go func() {
		defer wg.Done()
		reports, reportErr = s.fetchReports(ctx)
	}()
	wg.Wait()

	if markerErr != nil {
		trace.MarkerError = markerErr.Error()
		markers = nil
	}
	if reportErr != nil {
		trace.ReportError = reportErr.Error()
		reports = nil
	}

	trace.MarkerDocs = len(markers)
	trace.ReportDocs = len(reports)

	candidates := make([]domain.Candidate, 0, len(markers)+len(reports))
	for _, m := range markers {
		candidates = append(candidates, m.Candidate())
	}
	for _, r := range reports {
		candidates = append(candidates, r.Candidate())
	}

	trace.CandidateCount = len(candidates)
	trace.SampleTitles = sampleTitles(candidates)

	return candidates
}

// fetchReports prefers the creation-time ordering and falls back to an
// unordered bounded query when the ordered one fails.
func (s *Service) fetchReports(ctx context.Context) ([]domain.CommunityReport, error) {
	reports, err := s.reports.RecentOrdered(ctx, s.maxDocs)
	if err != nil {
		return s.reports.Recent(ctx, s.maxDocs)
	}
	return reports, nil
}

func sampleTitles(candidates []domain.Candidate) []string {
	n := len(candidates)
	if n > sampleTitleLimit {
		n = sampleTitleLimit
	}
	titles := make([]string, 0, n)
	for _, c := range candidates[:n] {
		titles = append(titles, string(c.Type)+":"+c.Title)
	}
	return titles
}
