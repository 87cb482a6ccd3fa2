package diag

import (
	"context"

	"github.com/safemap-cloud/askmap/internal/domain"
)

// MarkerSource provides counts and samples over the map_marker collection.
type MarkerSource interface {
	Recent(ctx context.Context, limit int) ([]domain.MapMarker, error)
	Count(ctx context.Context) (int64, error)
}

// ReportSource provides counts and samples over the report_community collection.
type ReportSource interface {
	Recent(ctx context.Context, limit int) ([]domain.CommunityReport, error)
	Count(ctx context.Context) (int64, error)
}
