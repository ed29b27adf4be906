package retail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	DefaultEndpoint = "https://retail.googleapis.com"

	cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"
)

type Config struct {
	ProjectId string
	Location  string
	CatalogId string
	Branch    string

	// Endpoint and TokenSource are overridable for tests. When TokenSource is
	// nil the client picks up Application Default Credentials.
	Endpoint    string
	TokenSource oauth2.TokenSource
}

// Client talks to the catalog service over its REST surface. One instance is
// shared by all requests; it is safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
	tokens     oauth2.TokenSource
}

// APIError is any non-2xx answer from the service, body included so callers
// can log the real reason in one line.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("status error, got status %d. with response body %s", e.StatusCode, e.Body)
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Branch == "" {
		cfg.Branch = "default_branch"
	}
	tokens := cfg.TokenSource
	if tokens == nil {
		ts, err := google.DefaultTokenSource(ctx, cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("load default credentials: %w", err)
		}
		tokens = ts
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: tokens,
	}, nil
}

// --- Resource paths ---

func (c *Client) catalogPath() string {
	return fmt.Sprintf("projects/%s/locations/%s/catalogs/%s",
		c.cfg.ProjectId, c.cfg.Location, c.cfg.CatalogId)
}

func (c *Client) placementPath(servingConfigId string) string {
	return c.catalogPath() + "/servingConfigs/" + servingConfigId
}

func (c *Client) branchPath() string {
	return c.catalogPath() + "/branches/" + c.cfg.Branch
}

func (c *Client) productPath(productId string) string {
	return c.branchPath() + "/products/" + url.PathEscape(productId)
}

// BranchResource is the fully qualified branch name search requests carry.
func (c *Client) BranchResource() string {
	return c.branchPath()
}

// GetProduct fetches one product by its bare catalog id.
func (c *Client) GetProduct(ctx context.Context, productId string) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodGet, c.cfg.Endpoint+"/v2/"+c.productPath(productId), nil, &product); err != nil {
		return nil, fmt.Errorf("get product %s: %w", productId, err)
	}
	return &product, nil
}

// CompleteQuery asks for typeahead suggestions against the user-data dataset.
func (c *Client) CompleteQuery(ctx context.Context, query, visitorId, dataset string) (*CompleteQueryResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("visitorId", visitorId)
	if dataset != "" {
		params.Set("dataset", dataset)
	}
	endpoint := c.cfg.Endpoint + "/v2/" + c.catalogPath() + ":completeQuery?" + params.Encode()

	var out CompleteQueryResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, fmt.Errorf("complete query: %w", err)
	}
	return &out, nil
}

// WriteUserEvent pushes one behavioral event. Exactly one attempt; the caller
// decides whether a failure matters.
func (c *Client) WriteUserEvent(ctx context.Context, event *UserEvent) error {
	if event.EventTime == "" {
		event.EventTime = time.Now().UTC().Format(time.RFC3339Nano)
	}
	endpoint := c.cfg.Endpoint + "/v2/" + c.catalogPath() + "/userEvents:write"
	if err := c.do(ctx, http.MethodPost, endpoint, event, nil); err != nil {
		return fmt.Errorf("write user event %s: %w", event.EventType, err)
	}
	return nil
}

// do runs one JSON round trip against the service. No retries.
func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		payloadJson, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(payloadJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if err := c.authorize(req); err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &APIError{StatusCode: res.StatusCode, Body: string(resBody)}
	}

	if out != nil {
		if err := json.Unmarshal(resBody, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

func (c *Client) authorize(req *http.Request) error {
	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("fetch access token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	return nil
}
