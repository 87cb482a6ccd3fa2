// Package chat orchestrates the retrieval-augmented answering pipeline.
package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/safemap-cloud/askmap/internal/domain"
	"github.com/safemap-cloud/askmap/internal/logger"
)

// Result is one pipeline invocation's outcome. The trace is always populated;
// the transport decides whether the caller gets to see it.
type Result struct {
	Answer domain.Answer
	Trace  *domain.Trace
}

// Service runs collect → rank → generate for one question. Terminal states
// (empty question, empty pool) and unrecovered failures all come back as
// fixed answers, never as errors: the caller always receives a structured
// payload.
type Service struct {
	collector Collector
	ranker    Ranker
	answerer  Answerer
	projectID string
}

// New creates the pipeline service.
func New(collector Collector, ranker Ranker, answerer Answerer, projectID string) *Service {
	return &Service{
		collector: collector,
		ranker:    ranker,
		answerer:  answerer,
		projectID: projectID,
	}
}

// Ask answers a question grounded in the document collections.
func (s *Service) Ask(ctx context.Context, question string, topK int) (res Result) {
	trace := domain.NewTrace(s.projectID)
	res.Trace = trace

	// Last-resort guard: an unexpected panic anywhere below still yields the
	// generic failure payload rather than escaping to the transport.
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error("rag pipeline panic",
				zap.Any("panic", r),
				zap.Stack("stacktrace"),
			)
			trace.Error = fmt.Sprint(r)
			res.Answer = domain.Answer{Text: domain.AnswerServerError}
		}
	}()

	question = strings.TrimSpace(question)
	if question == "" {
		res.Answer = domain.Answer{Text: domain.AnswerEmptyQuestion}
		return res
	}

	trace.Step = "collect"
	candidates := s.collector.Collect(ctx, trace)
	if len(candidates) == 0 {
		res.Answer = domain.Answer{Text: domain.AnswerNoDocuments}
		return res
	}

	trace.Step = "rank"
	top, err := s.ranker.Rank(ctx, question, candidates, topK)
	if err != nil {
		return s.fail(ctx, trace, err, &res)
	}

	trace.Step = "generate"
	text, err := s.answerer.Generate(ctx, question, top)
	if err != nil {
		return s.fail(ctx, trace, err, &res)
	}

	sources := make([]domain.SourceRef, len(top))
	for i, c := range top {
		sources[i] = c.Ref()
	}

	trace.Step = "done"
	res.Answer = domain.Answer{Text: text, Sources: sources}
	return res
}

// fail logs the full error server-side and substitutes the generic message;
// the raw detail survives only inside the trace.
func (s *Service) fail(ctx context.Context, trace *domain.Trace, err error, res *Result) Result {
	logger.FromContext(ctx).Error("rag pipeline failed",
		zap.String("step", trace.Step),
		zap.Error(err),
	)
	trace.Error = err.Error()
	res.Answer = domain.Answer{Text: domain.AnswerServerError}
	return *res
}
