package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"go.uber.org/zap"

	"github.com/safemap-cloud/askmap/internal/domain"
	"github.com/safemap-cloud/askmap/internal/metrics"
	"github.com/safemap-cloud/askmap/internal/secret"
)

func TestMain(m *testing.M) {
	metrics.RegisterModelMetrics()
	os.Exit(m.Run())
}

// embeddingAPIResponse mirrors the OpenAI-compatible embedding response.
type embeddingAPIResponse struct {
	Object string             `json:"object"`
	Data   []embeddingAPIItem `json:"data"`
	Model  string             `json:"model"`
	Usage  struct {
		PromptTokens int `json:"prompt_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage"`
}

type embeddingAPIItem struct {
	Object    string    `json:"object"`
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

func newEmbedderAgainst(url string) *Embedder {
	return NewEmbedder(&EmbedderConfig{
		Keys:    secret.Static("test-key"),
		BaseURL: url,
		Model:   "test-model",
		Logger:  zap.NewNop(),
	})
}

func TestEmbedder_Embed(t *testing.T) {
	expectedVec := []float32{0.1, 0.2, 0.3, 0.4}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}

		resp := embeddingAPIResponse{Object: "list", Model: "test-model"}
		resp.Data = append(resp.Data, embeddingAPIItem{Object: "embedding", Embedding: expectedVec, Index: 0})
		resp.Usage.PromptTokens = 10
		resp.Usage.TotalTokens = 10

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	result, err := newEmbedderAgainst(server.URL).Embed(context.Background(), "강남역 근처 위험한가요")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	if len(result.Embedding) != len(expectedVec) {
		t.Fatalf("expected %d dimensions, got %d", len(expectedVec), len(result.Embedding))
	}
	for i, v := range result.Embedding {
		if v != expectedVec[i] {
			t.Errorf("vec[%d] = %f, expected %f", i, v, expectedVec[i])
		}
	}
	if result.TotalTokens != 10 {
		t.Errorf("TotalTokens = %d, want 10", result.TotalTokens)
	}
}

func TestEmbedder_BatchEmbed_PreservesInputOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Input) != 3 {
			t.Errorf("expected 3 inputs, got %d", len(req.Input))
		}

		// Respond with items out of order; the embedder must realign by index.
		resp := embeddingAPIResponse{Object: "list", Model: "test-model"}
		resp.Data = []embeddingAPIItem{
			{Object: "embedding", Embedding: []float32{2}, Index: 2},
			{Object: "embedding", Embedding: []float32{0}, Index: 0},
			{Object: "embedding", Embedding: []float32{1}, Index: 1},
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	result, err := newEmbedderAgainst(server.URL).BatchEmbed(
		context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("BatchEmbed failed: %v", err)
	}

	if len(result.Embeddings) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(result.Embeddings))
	}
	for i, vec := range result.Embeddings {
		if vec[0] != float32(i) {
			t.Errorf("vector %d = %v, not aligned with input order", i, vec)
		}
	}
}

func TestEmbedder_BatchEmbed_CountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := embeddingAPIResponse{Object: "list", Model: "test-model"}
		resp.Data = []embeddingAPIItem{{Object: "embedding", Embedding: []float32{1}, Index: 0}}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	_, err := newEmbedderAgainst(server.URL).BatchEmbed(context.Background(), []string{"a", "b"})
	if !errors.Is(err, domain.ErrEmbeddingCountMismatch) {
		t.Fatalf("expected ErrEmbeddingCountMismatch, got %v", err)
	}
}

func TestEmbedder_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"detail":"rate limit exceeded"}`))
	}))
	defer server.Close()

	_, err := newEmbedderAgainst(server.URL).Embed(context.Background(), "question")
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", err)
	}
}

func TestEmbedder_KeyResolutionFailure(t *testing.T) {
	emb := NewEmbedder(&EmbedderConfig{
		Keys:   secret.Static(""),
		Model:  "test-model",
		Logger: zap.NewNop(),
	})

	_, err := emb.Embed(context.Background(), "question")
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", err)
	}
}
