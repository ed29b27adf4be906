package retail

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type ConversationalSearchRequest struct {
	Query          string `json:"query"`
	VisitorId      string `json:"visitorId"`
	Branch         string `json:"branch,omitempty"`
	ConversationId string `json:"conversationId,omitempty"`
}

// ConversationalSearchChunk is one fragment of the streamed answer. Text
// arrives split across chunks; ids and refinements can show up on any of them.
type ConversationalSearchChunk struct {
	ConversationId             string            `json:"conversationId,omitempty"`
	ConversationalTextResponse string            `json:"conversationalTextResponse,omitempty"`
	FollowupQuestion           *FollowupQuestion `json:"followupQuestion,omitempty"`
	RefinedSearch              []*RefinedSearch  `json:"refinedSearch,omitempty"`
	State                      string            `json:"state,omitempty"`
}

type FollowupQuestion struct {
	FollowupQuestion string `json:"followupQuestion,omitempty"`
}

type RefinedSearch struct {
	Query string `json:"query,omitempty"`
}

// ConversationReply is the merged view of a whole response stream.
type ConversationReply struct {
	ConversationId   string
	Text             string
	FollowupQuestion string
	RefinedQueries   []string
}

// Accumulator folds streamed chunks into one reply. Transport-agnostic: feed
// it chunks from anywhere, read the merged result once the stream is done.
type Accumulator struct {
	text           strings.Builder
	conversationId string
	followup       string
	refined        []string
	seenRefined    map[string]bool
}

func NewAccumulator() *Accumulator {
	return &Accumulator{seenRefined: map[string]bool{}}
}

// Add merges one chunk: text fragments concatenate in arrival order, the last
// non-empty conversation id and followup win, refined queries dedupe.
func (a *Accumulator) Add(chunk *ConversationalSearchChunk) {
	if chunk == nil {
		return
	}
	a.text.WriteString(chunk.ConversationalTextResponse)
	if chunk.ConversationId != "" {
		a.conversationId = chunk.ConversationId
	}
	if chunk.FollowupQuestion != nil && chunk.FollowupQuestion.FollowupQuestion != "" {
		a.followup = chunk.FollowupQuestion.FollowupQuestion
	}
	for _, refined := range chunk.RefinedSearch {
		if refined == nil || refined.Query == "" || a.seenRefined[refined.Query] {
			continue
		}
		a.seenRefined[refined.Query] = true
		a.refined = append(a.refined, refined.Query)
	}
}

func (a *Accumulator) Reply() *ConversationReply {
	return &ConversationReply{
		ConversationId:   a.conversationId,
		Text:             a.text.String(),
		FollowupQuestion: a.followup,
		RefinedQueries:   a.refined,
	}
}

// ConversationalSearch sends one turn and drains the whole response stream
// before returning. The REST stream is a JSON array of chunk objects, decoded
// one element at a time. There is no partial consumption: the merged reply is
// only built from a fully read stream.
func (c *Client) ConversationalSearch(ctx context.Context, servingConfigId string, req *ConversationalSearchRequest) (*ConversationReply, error) {
	if req.Branch == "" {
		req.Branch = c.branchPath()
	}
	endpoint := c.cfg.Endpoint + "/v2alpha/" + c.placementPath(servingConfigId) + ":conversationalSearch"

	payloadJson, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(payloadJson)))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if err := c.authorize(httpReq); err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("conversational search failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		resBody, _ := io.ReadAll(res.Body)
		return nil, &APIError{StatusCode: res.StatusCode, Body: string(resBody)}
	}

	reply, err := drainChunkStream(res.Body)
	if err != nil {
		return nil, fmt.Errorf("conversational search: %w", err)
	}
	return reply, nil
}

func drainChunkStream(r io.Reader) (*ConversationReply, error) {
	dec := json.NewDecoder(r)

	// Opening bracket of the chunk array.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read stream start: %w", err)
	}

	acc := NewAccumulator()
	for dec.More() {
		var chunk ConversationalSearchChunk
		if err := dec.Decode(&chunk); err != nil {
			return nil, fmt.Errorf("decode chunk: %w", err)
		}
		acc.Add(&chunk)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read stream end: %w", err)
	}
	return acc.Reply(), nil
}
