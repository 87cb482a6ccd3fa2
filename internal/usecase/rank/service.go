// Package rank scores the candidate pool against the question and keeps the
// top-K by cosine similarity.
package rank

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/safemap-cloud/askmap/internal/domain"
)

const (
	defaultTopK = 5
	// embedTextLimit bounds the per-candidate text sent to the embedding API.
	embedTextLimit = 7000
)

// Service ranks candidates with two embedding round-trips per invocation:
// one for the question, one batched call covering the whole pool.
type Service struct {
	query domain.Embedder
	pool  domain.BatchEmbedder

	topK      int
	textLimit int
}

// New creates a ranking service.
func New(query domain.Embedder, pool domain.BatchEmbedder) *Service {
	return &Service{query: query, pool: pool, topK: defaultTopK, textLimit: embedTextLimit}
}

// WithDefaultTopK overrides the top-K used when the caller passes none.
func (s *Service) WithDefaultTopK(k int) *Service {
	if k > 0 {
		s.topK = k
	}
	return s
}

// Rank embeds the question and every candidate, scores them, and returns the
// top-K by descending score. Ties keep the original collection order. A
// non-positive topK selects the default; a topK above the pool size clamps to
// the pool. Embedding failures propagate unretried.
func (s *Service) Rank(
	ctx context.Context, question string, candidates []domain.Candidate, topK int,
) ([]domain.ScoredCandidate, error) {
	if topK <= 0 {
		topK = s.topK
	}

	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = domain.Truncate(c.Text, s.textLimit)
	}

	// The two embedding requests are independent; issue them concurrently and
	// join before scoring.
	var (
		wg       sync.WaitGroup
		queryRes domain.EmbeddingResult
		queryErr error
		poolRes  domain.BatchEmbeddingResult
		poolErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		queryRes, queryErr = s.query.Embed(ctx, question)
	}()
	go func() {
		defer wg.Done()
		poolRes, poolErr = s.pool.BatchEmbed(ctx, texts)
	}()
	wg.Wait()

	if queryErr != nil {
		return nil, fmt.Errorf("embed question: %w", queryErr)
	}
	if poolErr != nil {
		return nil, fmt.Errorf("embed candidates: %w", poolErr)
	}
	if len(poolRes.Embeddings) != len(candidates) {
		return nil, fmt.Errorf("got %d vectors for %d candidates: %w",
			len(poolRes.Embeddings), len(candidates), domain.ErrEmbeddingCountMismatch)
	}

	scored := make([]domain.ScoredCandidate, len(candidates))
	for i, c := range candidates {
		scored[i] = domain.ScoredCandidate{
			Candidate: c,
			Score:     domain.Cosine(queryRes.Embedding, poolRes.Embeddings[i]),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topK > len(scored) {
		topK = len(scored)
	}
	return scored[:topK], nil
}
