// Package report reads community reports from the report_community collection.
package report

import (
	"context"
	"fmt"

	fs "cloud.google.com/go/firestore"

	"github.com/safemap-cloud/askmap/internal/db/firestore"
	"github.com/safemap-cloud/askmap/internal/domain"
)

const (
	collectionName = "report_community"
	orderField     = "createdAt"
)

// Repo reads report_community documents from Firestore.
type Repo struct {
	client *firestore.Client
}

// New creates a report repository.
func New(client *firestore.Client) *Repo {
	return &Repo{client: client}
}

// RecentOrdered returns up to limit reports ordered by creation time,
// newest first. Fails when the createdAt field lacks an index.
func (r *Repo) RecentOrdered(ctx context.Context, limit int) ([]domain.CommunityReport, error) {
	snaps, err := r.client.Collection(collectionName).
		OrderBy(orderField, fs.Desc).
		Limit(limit).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("query %s ordered by %s: %w", collectionName, orderField, err)
	}
	return r.decode(snaps), nil
}

// Recent returns up to limit reports in natural collection order. Used as the
// fallback when the ordered query fails.
func (r *Repo) Recent(ctx context.Context, limit int) ([]domain.CommunityReport, error) {
	snaps, err := r.client.Collection(collectionName).Limit(limit).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collectionName, err)
	}
	return r.decode(snaps), nil
}

// Count returns the collection's aggregate document count.
func (r *Repo) Count(ctx context.Context) (int64, error) {
	return r.client.Count(ctx, collectionName)
}

func (r *Repo) decode(snaps []*fs.DocumentSnapshot) []domain.CommunityReport {
	reports := make([]domain.CommunityReport, 0, len(snaps))
	for _, snap := range snaps {
		var dto reportDTO
		if err := snap.DataTo(&dto); err != nil {
			continue
		}
		reports = append(reports, dto.toDomain(snap.Ref.ID))
	}
	return reports
}
