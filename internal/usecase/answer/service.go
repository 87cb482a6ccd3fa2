// Package answer assembles the grounded prompt and generates the final reply.
package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/safemap-cloud/askmap/internal/domain"
)

// promptTextLimit bounds the per-candidate text placed into the prompt; it is
// much tighter than the embedding limit since every selected candidate shares
// one context window.
const promptTextLimit = 1200

// systemInstruction pins the model to the supplied context. Korean, matching
// the dataset and the client app.
const systemInstruction = "너는 map_marker, report_community 컬렉션의 데이터만 근거로 사실대로 답한다. " +
	"모르면 모른다고 답한다."

// Service turns the ranked candidates into a grounded answer.
type Service struct {
	completer domain.Completer
	textLimit int
}

// New creates an answer service.
func New(completer domain.Completer) *Service {
	return &Service{completer: completer, textLimit: promptTextLimit}
}

// Generate builds the context block from the ranked candidates and asks the
// model for a grounded reply. An empty completion becomes a fixed fallback;
// provider failures propagate to the pipeline.
func (s *Service) Generate(
	ctx context.Context, question string, top []domain.ScoredCandidate,
) (string, error) {
	user := fmt.Sprintf(
		"질문: %s\n\n관련 데이터:\n%s\n\n가능하면 출처(#번호/컬렉션)을 괄호로 표시.",
		question, s.contextBlock(top),
	)

	text, err := s.completer.Complete(ctx, domain.Prompt{
		System: systemInstruction,
		User:   user,
	})
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	if text == "" {
		return domain.AnswerNoResponse, nil
	}
	return text, nil
}

// contextBlock renders each candidate as a labeled snippet in rank order.
func (s *Service) contextBlock(top []domain.ScoredCandidate) string {
	blocks := make([]string, len(top))
	for i, c := range top {
		blocks[i] = fmt.Sprintf("[#%d %s] %s\n%s",
			i+1, c.Type, c.Title, domain.Truncate(c.Text, s.textLimit))
	}
	return strings.Join(blocks, "\n\n")
}
