package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"retail-storefront/internal/constant"
	"retail-storefront/internal/entity"
	"retail-storefront/internal/pkg/serverutils"
	"retail-storefront/internal/repository/memory"
	"retail-storefront/internal/service"
	"retail-storefront/pkg/retail"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"golang.org/x/oauth2"
)

// fakeBackend plays the upstream commerce API for handler tests, mirroring
// the route shapes of the real one. Configure the payloads, then assert on
// the recorded requests.
type fakeBackend struct {
	searchResp   *retail.SearchResponse
	searchStatus int

	predictRaw    string
	predictStatus int

	product       *retail.Product
	productStatus int

	completions    []string
	completeStatus int

	chatChunks string
	chatStatus int

	eventStatus int

	searches []*retail.SearchRequest
	events   []*retail.UserEvent
	chats    []*retail.ConversationalSearchRequest
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

type testLogger struct{}

func (testLogger) Debug(string, string, map[string]interface{}) {}
func (testLogger) Info(string, string, map[string]interface{})  {}
func (testLogger) Warn(string, string, map[string]interface{})  {}
func (testLogger) Error(string, string, map[string]interface{}) {}
func (testLogger) Sync() error                                  { return nil }

// stubOAuth replaces the Google handshake so handler tests stay offline.
type stubOAuth struct {
	loginURL string
	state    string
	profile  *entity.UserProfile
	err      error
	gotCode  string
}

func (s *stubOAuth) BeginLogin() (string, string) {
	return s.loginURL, s.state
}

func (s *stubOAuth) HandleCallback(_ context.Context, code string) (*entity.UserProfile, error) {
	s.gotCode = code
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

// newTestApp wires the full handler stack the way the server does, with the
// fake backend behind the retail client and a stub for the OAuth handshake.
func newTestApp(t *testing.T, fake *fakeBackend, oauth *stubOAuth) *fiber.App {
	t.Helper()

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

	engine := html.New("../../views", ".html")
	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/main",
	})
	app.Use(serverutils.ErrorHandlerMiddleware())
	app.Use(serverutils.NewSessionMiddleware(serverutils.SessionConfig{
		Repository: memory.NewSessionRepository(time.Hour),
		Secret:     "test-secret",
		CookieName: constant.SessionCookieName,
		TTL:        time.Hour,
	}))

	events := service.NewEventService(client, testLogger{})
	catalog := service.NewCatalogService(client, events, "default_search", "recently_viewed")
	cart := service.NewCartService(client, events)
	chat := service.NewChatService(client, "default_search")

	NewStorefrontController(catalog).RegisterRoutes(app)
	NewCartController(cart).RegisterRoutes(app)
	NewChatController(chat).RegisterRoutes(app)
	NewEventController(events).RegisterRoutes(app)
	if oauth != nil {
		NewOAuthController(oauth).RegisterRoutes(app)
	}

	return app
}

// sessionCookie pulls the session cookie off a response. The middleware only
// sets it on the first response of a fresh session, so flows grab it once and
// attach it to every later request.
func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == constant.SessionCookieName {
			return cookie
		}
	}
	t.Fatal("expected a session cookie on the response")
	return nil
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}
