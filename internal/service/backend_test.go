package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"retail-storefront/pkg/retail"

	"golang.org/x/oauth2"
)

// fakeCatalog stands in for the upstream commerce API. Routing is by path
// suffix; request bodies are recorded so tests can assert on what the
// services sent. A zero status means success with the configured payload.
type fakeCatalog struct {
	searchResp   *retail.SearchResponse
	searchStatus int

	// Raw JSON keeps the metadata.product payloads readable in tests.
	predictRaw    string
	predictStatus int

	product       *retail.Product
	productStatus int
	productCalls  int

	completions    []string
	completeStatus int
	completeCalls  int

	eventStatus int

	chatChunks string
	chatStatus int

	searches []*retail.SearchRequest
	predicts []*retail.UserEvent
	events   []*retail.UserEvent
	chats    []*retail.ConversationalSearchRequest
}

func (f *fakeCatalog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case strings.HasSuffix(path, ":search"):
		var req retail.SearchRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.searches = append(f.searches, &req)
		if f.searchStatus != 0 {
			http.Error(w, `{"error": {"message": "search unavailable"}}`, f.searchStatus)
			return
		}
		resp := f.searchResp
		if resp == nil {
			resp = &retail.SearchResponse{}
		}
		_ = json.NewEncoder(w).Encode(resp)

	case strings.HasSuffix(path, ":predict"):
		var req struct {
			UserEvent *retail.UserEvent `json:"userEvent"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.predicts = append(f.predicts, req.UserEvent)
		if f.predictStatus != 0 {
			http.Error(w, `{"error": {"message": "predict unavailable"}}`, f.predictStatus)
			return
		}
		body := f.predictRaw
		if body == "" {
			body = `{"results": []}`
		}
		_, _ = w.Write([]byte(body))

	case strings.HasSuffix(path, "userEvents:write"):
		var event retail.UserEvent
		_ = json.NewDecoder(r.Body).Decode(&event)
		f.events = append(f.events, &event)
		if f.eventStatus != 0 {
			http.Error(w, `{"error": {"message": "write rejected"}}`, f.eventStatus)
			return
		}
		_, _ = w.Write([]byte(`{}`))

	case strings.HasSuffix(path, ":completeQuery"):
		f.completeCalls++
		if f.completeStatus != 0 {
			http.Error(w, `{"error": {"message": "completion unavailable"}}`, f.completeStatus)
			return
		}
		resp := retail.CompleteQueryResponse{}
		for _, s := range f.completions {
			resp.CompletionResults = append(resp.CompletionResults, &retail.CompletionResult{Suggestion: s})
		}
		_ = json.NewEncoder(w).Encode(resp)

	case strings.HasSuffix(path, ":conversationalSearch"):
		var req retail.ConversationalSearchRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.chats = append(f.chats, &req)
		if f.chatStatus != 0 {
			http.Error(w, `{"error": {"message": "conversation unavailable"}}`, f.chatStatus)
			return
		}
		body := f.chatChunks
		if body == "" {
			body = `[]`
		}
		_, _ = w.Write([]byte(body))

	case strings.Contains(path, "/products/"):
		f.productCalls++
		if f.productStatus != 0 {
			http.Error(w, `{"error": {"message": "product not found"}}`, f.productStatus)
			return
		}
		p := f.product
		if p == nil {
			p = &retail.Product{}
		}
		_ = json.NewEncoder(w).Encode(p)

	default:
		http.NotFound(w, r)
	}
}

func newFakeCatalog(t *testing.T) (*fakeCatalog, *retail.Client) {
	t.Helper()
	fake := &fakeCatalog{}
	ts := httptest.NewServer(fake)
	t.Cleanup(ts.Close)

	client, err := retail.New(context.Background(), retail.Config{
		ProjectId:   "demo-project",
		Location:    "global",
		CatalogId:   "default_catalog",
		Branch:      "default_branch",
		Endpoint:    ts.URL,
		TokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"}),
	})
	if err != nil {
		t.Fatalf("retail.New() error = %v", err)
	}
	return fake, client
}

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }
