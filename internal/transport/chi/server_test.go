package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gochi "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/safemap-cloud/askmap/internal/domain"
	chatuc "github.com/safemap-cloud/askmap/internal/usecase/chat"
)

// --- Fakes ---

type fakeChat struct {
	result       chatuc.Result
	lastQuestion string
	lastTopK     int
	calls        int
}

func (f *fakeChat) Ask(_ context.Context, question string, topK int) chatuc.Result {
	f.calls++
	f.lastQuestion = question
	f.lastTopK = topK
	return f.result
}

type fakeDiag struct {
	report domain.DiagReport
	calls  int
}

func (f *fakeDiag) Peek(_ context.Context) domain.DiagReport {
	f.calls++
	return f.report
}

func newTestRouter(chat ChatService, diag DiagService, debug bool) http.Handler {
	r := gochi.NewRouter()
	NewServer(chat, diag, zap.NewNop(), debug).Routes(r)
	return r
}

func answered(text string) chatuc.Result {
	return chatuc.Result{
		Answer: domain.Answer{
			Text: text,
			Sources: []domain.SourceRef{
				{ID: "map_marker/m1", Type: "map_marker", Score: 0.91},
			},
		},
		Trace: &domain.Trace{ProjectID: "proj", Step: "done", CandidateCount: 3},
	}
}

// --- Tests ---

func TestChat_OK(t *testing.T) {
	chat := &fakeChat{result: answered("강남역 인근에서 절도가 보고되었습니다.")}
	router := newTestRouter(chat, &fakeDiag{}, false)

	body := `{"question":"강남 사건 알려줘","topK":3}`
	req := httptest.NewRequest("POST", "/v1/chat", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if chat.lastQuestion != "강남 사건 알려줘" || chat.lastTopK != 3 {
		t.Errorf("forwarded %q/%d", chat.lastQuestion, chat.lastTopK)
	}

	var resp ChatResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Answer != "강남역 인근에서 절도가 보고되었습니다." {
		t.Errorf("answer = %q", resp.Answer)
	}
	if len(resp.Sources) != 1 || resp.Sources[0].ID != "map_marker/m1" {
		t.Errorf("sources = %v", resp.Sources)
	}
	if resp.Info != nil {
		t.Error("trace must be withheld unless debug is enabled")
	}
}

func TestChat_ServerDebugExposesTrace(t *testing.T) {
	chat := &fakeChat{result: answered("답변")}
	router := newTestRouter(chat, &fakeDiag{}, true)

	req := httptest.NewRequest("POST", "/v1/chat", strings.NewReader(`{"question":"q"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var resp ChatResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Info == nil {
		t.Fatal("debug mode must include the trace")
	}
	if resp.Info.Step != "done" || resp.Info.CandidateCount != 3 {
		t.Errorf("trace = %+v", resp.Info)
	}
}

func TestChat_RequestDebugExposesTrace(t *testing.T) {
	chat := &fakeChat{result: answered("답변")}
	router := newTestRouter(chat, &fakeDiag{}, false)

	req := httptest.NewRequest("POST", "/v1/chat", strings.NewReader(`{"question":"q","debug":true}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var resp ChatResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Info == nil {
		t.Fatal("request-level debug must include the trace")
	}
}

func TestChat_TerminalStateStill200(t *testing.T) {
	chat := &fakeChat{result: chatuc.Result{
		Answer: domain.Answer{Text: domain.AnswerNoDocuments},
		Trace:  &domain.Trace{Step: "collect"},
	}}
	router := newTestRouter(chat, &fakeDiag{}, false)

	req := httptest.NewRequest("POST", "/v1/chat", strings.NewReader(`{"question":"q"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for terminal states", rr.Code)
	}

	var resp ChatResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Answer != domain.AnswerNoDocuments {
		t.Errorf("answer = %q", resp.Answer)
	}
	if resp.Sources != nil {
		t.Error("terminal state must omit sources")
	}
}

func TestChat_MalformedBody_400(t *testing.T) {
	chat := &fakeChat{}
	router := newTestRouter(chat, &fakeDiag{}, false)

	req := httptest.NewRequest("POST", "/v1/chat", strings.NewReader(`{"question":`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if chat.calls != 0 {
		t.Error("malformed body must not reach the pipeline")
	}

	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != codeBadRequest {
		t.Errorf("error code = %s, want %s", errResp.Code, codeBadRequest)
	}
}

func TestDiag_OK(t *testing.T) {
	diag := &fakeDiag{report: domain.DiagReport{
		ProjectID:     "proj",
		MarkerCount:   42,
		ReportCount:   -1,
		MarkerSamples: []domain.MarkerSample{{ID: "m1", Name: "강남역"}},
		ReportSamples: []domain.ReportSample{},
	}}
	router := newTestRouter(&fakeChat{}, diag, false)

	req := httptest.NewRequest("POST", "/v1/diag", http.NoBody)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if diag.calls != 1 {
		t.Errorf("diag calls = %d", diag.calls)
	}

	var resp DiagResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.OK {
		t.Error("ok must be true")
	}
	if resp.Info.MarkerCount != 42 || resp.Info.ReportCount != -1 {
		t.Errorf("info = %+v", resp.Info)
	}
}

func TestHealth_OK(t *testing.T) {
	router := newTestRouter(&fakeChat{}, &fakeDiag{}, false)

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status = %q", resp["status"])
	}
	if resp["version"] == "" {
		t.Error("version must be present")
	}
}
