package retail

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccumulatorMergesChunks(t *testing.T) {
	acc := NewAccumulator()
	acc.Add(&ConversationalSearchChunk{ConversationId: "conv-1", ConversationalTextResponse: "You could "})
	acc.Add(&ConversationalSearchChunk{ConversationalTextResponse: "try a desk lamp."})
	acc.Add(&ConversationalSearchChunk{
		RefinedSearch:    []*RefinedSearch{{Query: "desk lamp"}, {Query: "desk lamp"}},
		FollowupQuestion: &FollowupQuestion{FollowupQuestion: "What is your budget?"},
	})
	acc.Add(nil)

	reply := acc.Reply()
	assert.Equal(t, "conv-1", reply.ConversationId)
	assert.Equal(t, "You could try a desk lamp.", reply.Text)
	assert.Equal(t, "What is your budget?", reply.FollowupQuestion)
	assert.Equal(t, []string{"desk lamp"}, reply.RefinedQueries, "duplicate refinements collapse")
}

func TestAccumulatorLastConversationIdWins(t *testing.T) {
	acc := NewAccumulator()
	acc.Add(&ConversationalSearchChunk{ConversationId: "conv-1"})
	acc.Add(&ConversationalSearchChunk{ConversationalTextResponse: "..."})
	acc.Add(&ConversationalSearchChunk{ConversationId: "conv-2"})

	assert.Equal(t, "conv-2", acc.Reply().ConversationId)
}

func TestConversationalSearchDrainsWholeStream(t *testing.T) {
	var gotPath string
	var gotBody []byte

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)

		flusher := w.(http.Flusher)
		_, _ = w.Write([]byte(`[{"conversationId": "conv-9", "conversationalTextResponse": "Here are "}`))
		flusher.Flush()
		_, _ = w.Write([]byte(`,{"conversationalTextResponse": "some options.", "refinedSearch": [{"query": "running shoes"}]}]`))
	}))

	reply, err := client.ConversationalSearch(context.Background(), "default_search", &ConversationalSearchRequest{
		Query:     "shoes for jogging",
		VisitorId: "visitor-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, "/v2alpha/projects/demo-project/locations/global/catalogs/default_catalog/servingConfigs/default_search:conversationalSearch", gotPath)
	assert.Contains(t, string(gotBody), `"shoes for jogging"`)
	assert.Equal(t, "conv-9", reply.ConversationId)
	assert.Equal(t, "Here are some options.", reply.Text)
	assert.Equal(t, []string{"running shoes"}, reply.RefinedQueries)
}

func TestConversationalSearchRejectsBrokenStream(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"conversationId": "conv-1"}`))
	}))

	_, err := client.ConversationalSearch(context.Background(), "default_search", &ConversationalSearchRequest{
		Query:     "shoes",
		VisitorId: "visitor-1",
	})
	assert.Error(t, err, "a stream cut off before the closing bracket is an error")
}
