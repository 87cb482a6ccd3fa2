package chat

import (
	"context"

	"github.com/safemap-cloud/askmap/internal/domain"
)

// Collector builds the candidate pool, recording degraded-mode detail in the
// trace instead of failing.
type Collector interface {
	Collect(ctx context.Context, trace *domain.Trace) []domain.Candidate
}

// Ranker selects the top-K candidates for a question.
type Ranker interface {
	Rank(ctx context.Context, question string, candidates []domain.Candidate, topK int) ([]domain.ScoredCandidate, error)
}

// Answerer generates the grounded reply from the selected candidates.
type Answerer interface {
	Generate(ctx context.Context, question string, top []domain.ScoredCandidate) (string, error)
}
