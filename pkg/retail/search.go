package retail

import (
	"context"
	"fmt"
	"net/http"
)

// Search runs one search or browse call against a serving config. The caller
// owns the request shape (query vs pageCategories, filter, paging); the client
// only fills in the branch when it was left empty.
func (c *Client) Search(ctx context.Context, servingConfigId string, req *SearchRequest) (*SearchResponse, error) {
	if req.Branch == "" {
		req.Branch = c.branchPath()
	}
	endpoint := c.cfg.Endpoint + "/v2/" + c.placementPath(servingConfigId) + ":search"

	var out SearchResponse
	if err := c.do(ctx, http.MethodPost, endpoint, req, &out); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return &out, nil
}

// Predict asks a recommendation serving config for products given an event
// context. returnProduct is always requested so results arrive render-ready.
func (c *Client) Predict(ctx context.Context, servingConfigId string, userEvent *UserEvent, pageSize int) (*PredictResponse, error) {
	req := &PredictRequest{
		UserEvent: userEvent,
		PageSize:  pageSize,
		Params: map[string]any{
			"returnProduct": true,
		},
	}
	endpoint := c.cfg.Endpoint + "/v2/" + c.placementPath(servingConfigId) + ":predict"

	var out PredictResponse
	if err := c.do(ctx, http.MethodPost, endpoint, req, &out); err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	return &out, nil
}
