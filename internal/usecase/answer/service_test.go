package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/safemap-cloud/askmap/internal/domain"
)

type fakeCompleter struct {
	reply      string
	err        error
	calls      int
	lastPrompt domain.Prompt
}

func (f *fakeCompleter) Complete(_ context.Context, prompt domain.Prompt) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.reply, f.err
}

func scoredPool() []domain.ScoredCandidate {
	return []domain.ScoredCandidate{
		{
			Candidate: domain.Candidate{
				ID: "map_marker/m1", Type: domain.SourceMapMarker,
				Title: "강남역", Text: "절도 다발 구역",
			},
			Score: 0.9,
		},
		{
			Candidate: domain.Candidate{
				ID: "report_community/r1", Type: domain.SourceCommunityReport,
				Title: "심야 소음", Text: "주말마다 반복",
			},
			Score: 0.7,
		},
	}
}

func TestGenerate_PromptLayout(t *testing.T) {
	completer := &fakeCompleter{reply: "답변"}
	svc := New(completer)

	got, err := svc.Generate(context.Background(), "강남 사건?", scoredPool())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "답변" {
		t.Errorf("answer = %q", got)
	}

	user := completer.lastPrompt.User
	if !strings.Contains(user, "질문: 강남 사건?") {
		t.Errorf("user message missing question: %q", user)
	}
	if !strings.Contains(user, "[#1 map_marker] 강남역\n절도 다발 구역") {
		t.Errorf("first snippet malformed: %q", user)
	}
	if !strings.Contains(user, "[#2 report_community] 심야 소음") {
		t.Errorf("second snippet malformed: %q", user)
	}
	if !strings.Contains(user, "출처(#번호/컬렉션)") {
		t.Errorf("citation hint missing: %q", user)
	}
	if completer.lastPrompt.System == "" {
		t.Error("system instruction must be set")
	}

	// Snippets are blank-line separated in rank order.
	first := strings.Index(user, "[#1 ")
	second := strings.Index(user, "[#2 ")
	if first == -1 || second == -1 || second < first {
		t.Errorf("snippets out of rank order: %q", user)
	}
}

func TestGenerate_TruncatesSnippets(t *testing.T) {
	completer := &fakeCompleter{reply: "ok"}
	svc := New(completer)

	long := strings.Repeat("가", 2000)
	top := []domain.ScoredCandidate{{
		Candidate: domain.Candidate{ID: "map_marker/x", Type: domain.SourceMapMarker, Title: "t", Text: long},
	}}

	if _, err := svc.Generate(context.Background(), "질문", top); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(completer.lastPrompt.User, long) {
		t.Error("snippet was not truncated")
	}
	if !strings.Contains(completer.lastPrompt.User, strings.Repeat("가", 1200)) {
		t.Error("expected 1200-rune prefix in prompt")
	}
}

func TestGenerate_EmptyCompletionFallsBack(t *testing.T) {
	completer := &fakeCompleter{reply: ""}
	svc := New(completer)

	got, err := svc.Generate(context.Background(), "질문", scoredPool())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != domain.AnswerNoResponse {
		t.Errorf("answer = %q, want fixed no-response message", got)
	}
}

func TestGenerate_ProviderErrorPropagates(t *testing.T) {
	wantErr := errors.New("model down")
	svc := New(&fakeCompleter{err: wantErr})

	if _, err := svc.Generate(context.Background(), "질문", scoredPool()); !errors.Is(err, wantErr) {
		t.Errorf("provider error not propagated: %v", err)
	}
}
