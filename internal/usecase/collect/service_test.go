package collect

import (
	"context"
	"errors"
	"testing"

	"github.com/safemap-cloud/askmap/internal/domain"
)

// --- Fakes ---

type fakeMarkers struct {
	markers []domain.MapMarker
	err     error
	limit   int
}

func (f *fakeMarkers) Recent(_ context.Context, limit int) ([]domain.MapMarker, error) {
	f.limit = limit
	return f.markers, f.err
}

type fakeReports struct {
	ordered        []domain.CommunityReport
	orderedErr     error
	unordered      []domain.CommunityReport
	unorderedErr   error
	orderedCalls   int
	unorderedCalls int
}

func (f *fakeReports) RecentOrdered(_ context.Context, _ int) ([]domain.CommunityReport, error) {
	f.orderedCalls++
	return f.ordered, f.orderedErr
}

func (f *fakeReports) Recent(_ context.Context, _ int) ([]domain.CommunityReport, error) {
	f.unorderedCalls++
	return f.unordered, f.unorderedErr
}

// --- Tests ---

func TestCollect_CombinesBothCollections(t *testing.T) {
	markers := &fakeMarkers{markers: []domain.MapMarker{
		{ID: "m1", Name: "마커1"},
		{ID: "m2", Name: "마커2"},
	}}
	reports := &fakeReports{ordered: []domain.CommunityReport{
		{ID: "r1", Title: "제보1"},
	}}

	trace := domain.NewTrace("test-project")
	candidates := New(markers, reports).Collect(context.Background(), trace)

	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(candidates))
	}
	// Markers first, then reports, preserving collection order.
	if candidates[0].ID != "map_marker/m1" || candidates[2].ID != "report_community/r1" {
		t.Errorf("unexpected candidate order: %v", candidates)
	}
	if trace.MarkerDocs != 2 || trace.ReportDocs != 1 {
		t.Errorf("trace counts = %d/%d, want 2/1", trace.MarkerDocs, trace.ReportDocs)
	}
	if trace.CandidateCount != 3 {
		t.Errorf("trace.CandidateCount = %d, want 3", trace.CandidateCount)
	}
	if len(trace.SampleTitles) != 3 || trace.SampleTitles[0] != "map_marker:마커1" {
		t.Errorf("unexpected sample titles: %v", trace.SampleTitles)
	}
}

func TestCollect_MarkerFailureDegrades(t *testing.T) {
	markers := &fakeMarkers{err: errors.New("permission denied")}
	reports := &fakeReports{ordered: []domain.CommunityReport{{ID: "r1", Title: "제보"}}}

	trace := domain.NewTrace("p")
	candidates := New(markers, reports).Collect(context.Background(), trace)

	if len(candidates) != 1 {
		t.Fatalf("expected surviving collection only, got %d candidates", len(candidates))
	}
	if trace.MarkerError == "" {
		t.Error("marker failure must be recorded in the trace")
	}
	if trace.MarkerDocs != 0 {
		t.Errorf("failed collection must count zero docs, got %d", trace.MarkerDocs)
	}
}

func TestCollect_BothFailYieldEmptyPool(t *testing.T) {
	markers := &fakeMarkers{err: errors.New("marker down")}
	reports := &fakeReports{
		orderedErr:   errors.New("no index"),
		unorderedErr: errors.New("report down"),
	}

	trace := domain.NewTrace("p")
	candidates := New(markers, reports).Collect(context.Background(), trace)

	if len(candidates) != 0 {
		t.Fatalf("expected empty pool, got %d", len(candidates))
	}
	if trace.MarkerError == "" || trace.ReportError == "" {
		t.Errorf("both failures must be recorded: %+v", trace)
	}
}

func TestCollect_OrderedQueryFallsBackToUnordered(t *testing.T) {
	markers := &fakeMarkers{}
	reports := &fakeReports{
		orderedErr: errors.New("missing index on createdAt"),
		unordered:  []domain.CommunityReport{{ID: "r1"}, {ID: "r2"}},
	}

	trace := domain.NewTrace("p")
	candidates := New(markers, reports).Collect(context.Background(), trace)

	if reports.orderedCalls != 1 || reports.unorderedCalls != 1 {
		t.Errorf("expected ordered then unordered, got %d/%d", reports.orderedCalls, reports.unorderedCalls)
	}
	if len(candidates) != 2 {
		t.Fatalf("fallback results must be used, got %d candidates", len(candidates))
	}
	if trace.ReportError != "" {
		t.Errorf("successful fallback must not record an error, got %q", trace.ReportError)
	}
}

func TestCollect_MaxDocsForwarded(t *testing.T) {
	markers := &fakeMarkers{}
	reports := &fakeReports{}

	New(markers, reports).WithMaxDocs(40).Collect(context.Background(), domain.NewTrace("p"))

	if markers.limit != 40 {
		t.Errorf("expected limit 40 forwarded to source, got %d", markers.limit)
	}
}

func TestCollect_SampleTitlesCapped(t *testing.T) {
	var ms []domain.MapMarker
	for i := 0; i < 8; i++ {
		ms = append(ms, domain.MapMarker{ID: "m", Name: "n"})
	}
	markers := &fakeMarkers{markers: ms}
	reports := &fakeReports{}

	trace := domain.NewTrace("p")
	New(markers, reports).Collect(context.Background(), trace)

	if len(trace.SampleTitles) != 5 {
		t.Errorf("sample titles must cap at 5, got %d", len(trace.SampleTitles))
	}
}
