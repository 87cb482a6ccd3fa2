package askmap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 90 * time.Second

// Source references one document that grounded the answer.
type Source struct {
	ID    string  `json:"id"`
	Type  string  `json:"type"`
	Score float64 `json:"score"`
}

// ChatAnswer is the response to Ask. Info carries the server-side pipeline
// trace and is present only when the server runs with debug enabled.
type ChatAnswer struct {
	Answer  string          `json:"answer"`
	Sources []Source        `json:"sources,omitempty"`
	Info    json.RawMessage `json:"info,omitempty"`
}

// MarkerSample is a preview of one map_marker document.
type MarkerSample struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Address   string `json:"address,omitempty"`
	CrimeType string `json:"crimeType,omitempty"`
}

// ReportSample is a preview of one report_community document.
type ReportSample struct {
	ID           string `json:"id"`
	Title        string `json:"title,omitempty"`
	IncidentType string `json:"incidentType,omitempty"`
	Location     string `json:"location,omitempty"`
}

// DiagInfo is the diagnostic probe output. Failed counts come back as -1
// with the error string alongside.
type DiagInfo struct {
	ProjectID        string         `json:"projectId,omitempty"`
	MarkerCount      int64          `json:"map_marker_count"`
	MarkerCountError string         `json:"map_marker_count_error,omitempty"`
	ReportCount      int64          `json:"report_community_count"`
	ReportCountError string         `json:"report_community_count_error,omitempty"`
	MarkerDocs       int            `json:"mm_docs"`
	ReportDocs       int            `json:"rc_docs"`
	MarkerFetchError string         `json:"mm_error,omitempty"`
	ReportFetchError string         `json:"rc_error,omitempty"`
	MarkerSamples    []MarkerSample `json:"mm_samples"`
	ReportSamples    []ReportSample `json:"rc_samples"`
}

// Client is the askmap SDK entry point.
type Client struct {
	baseURL string
	apiKey  string
	debug   bool
	hc      *http.Client
	obs     *observer
}

// New creates an askmap Client for the given base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("askmap: base URL required")
	}

	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  cfg.apiKey,
		debug:   cfg.debug,
		hc:      hc,
		obs:     obs,
	}, nil
}

// Ask sends a question to the answering pipeline. topK caps the number of
// sources; pass 0 for the server default.
func (c *Client) Ask(ctx context.Context, question string, topK int) (ans ChatAnswer, err error) {
	start := time.Now()
	defer func() { c.obs.observe("ask", start, err) }()

	body := map[string]any{"question": question}
	if topK > 0 {
		body["topK"] = topK
	}
	if c.debug {
		body["debug"] = true
	}

	err = c.post(ctx, "/v1/chat", body, &ans)
	return ans, err
}

// Diag fetches collection counts and samples from the diagnostic probe.
func (c *Client) Diag(ctx context.Context) (info DiagInfo, err error) {
	start := time.Now()
	defer func() { c.obs.observe("diag", start, err) }()

	var resp struct {
		OK   bool     `json:"ok"`
		Info DiagInfo `json:"info"`
	}
	if err = c.post(ctx, "/v1/diag", struct{}{}, &resp); err != nil {
		return DiagInfo{}, err
	}
	return resp.Info, nil
}

// Health checks service availability.
func (c *Client) Health(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("health", start, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("askmap: build request: %w", err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("askmap: health: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode}
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("askmap: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("askmap: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("askmap: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var e struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&e) == nil {
			apiErr.Code = e.Code
			apiErr.Message = e.Message
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("askmap: decode response: %w", err)
	}
	return nil
}
