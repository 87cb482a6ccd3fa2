// Package marker reads incident markers from the map_marker collection.
package marker

import (
	"context"
	"fmt"

	"github.com/safemap-cloud/askmap/internal/db/firestore"
	"github.com/safemap-cloud/askmap/internal/domain"
)

const collectionName = "map_marker"

// Repo reads map_marker documents from Firestore.
type Repo struct {
	client *firestore.Client
}

// New creates a marker repository.
func New(client *firestore.Client) *Repo {
	return &Repo{client: client}
}

// Recent returns up to limit markers in natural collection order.
// The collection is bulk-imported and carries no usable ordering field.
func (r *Repo) Recent(ctx context.Context, limit int) ([]domain.MapMarker, error) {
	snaps, err := r.client.Collection(collectionName).Limit(limit).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collectionName, err)
	}

	markers := make([]domain.MapMarker, 0, len(snaps))
	for _, snap := range snaps {
		var dto markerDTO
		if err := snap.DataTo(&dto); err != nil {
			// Imported rows occasionally carry malformed fields; skip them
			// rather than failing the whole query.
			continue
		}
		markers = append(markers, dto.toDomain(snap.Ref.ID))
	}
	return markers, nil
}

// Count returns the collection's aggregate document count.
func (r *Repo) Count(ctx context.Context) (int64, error) {
	return r.client.Count(ctx, collectionName)
}
