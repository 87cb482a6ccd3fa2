package collect

import (
	"context"

	"github.com/safemap-cloud/askmap/internal/domain"
)

// MarkerSource reads incident markers from the document store.
type MarkerSource interface {
	Recent(ctx context.Context, limit int) ([]domain.MapMarker, error)
}

// ReportSource reads community reports from the document store.
// RecentOrdered may fail when the store lacks an index on the creation
// timestamp; Recent is the unordered fallback.
type ReportSource interface {
	RecentOrdered(ctx context.Context, limit int) ([]domain.CommunityReport, error)
	Recent(ctx context.Context, limit int) ([]domain.CommunityReport, error)
}
