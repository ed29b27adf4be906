package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"retail-storefront/internal/constant"
	"retail-storefront/internal/dto"
	"retail-storefront/internal/entity"
	"retail-storefront/internal/mapper"
	"retail-storefront/pkg/retail"
)

// IChatService drives the conversational shopping flow. The conversation id
// lives in the session: absent before the first exchange, reused on every
// turn after it, dropped again on clear.
type IChatService interface {
	SendMessage(ctx context.Context, session *entity.Session, message string) (*dto.ChatMessageResponse, error)
	ClearConversation(session *entity.Session)
	History(session *entity.Session) []dto.ChatTurnView
}

type chatService struct {
	client       *retail.Client
	mapper       *mapper.ProductMapper
	searchConfig string
	transcript   *log.Logger
}

func NewChatService(client *retail.Client, searchServingConfig string) IChatService {
	return &chatService{
		client:       client,
		mapper:       mapper.NewProductMapper(),
		searchConfig: searchServingConfig,
		transcript:   initConversationLogger(),
	}
}

// initConversationLogger keeps raw exchanges in their own file so the main
// logs stay readable.
func initConversationLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "conversation.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[Conversation] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

func (s *chatService) SendMessage(ctx context.Context, session *entity.Session, message string) (*dto.ChatMessageResponse, error) {
	reply, err := s.client.ConversationalSearch(ctx, s.searchConfig, &retail.ConversationalSearchRequest{
		Query:     message,
		VisitorId: session.VisitorId,
		// Empty on the first exchange; the service assigns one and every
		// later turn sends it back.
		ConversationId: session.ConversationId,
	})
	if err != nil {
		log.Printf("[Chat] ERROR - conversational search failed: %v", err)
		return nil, fmt.Errorf("conversational search: %w", err)
	}

	if reply.ConversationId != "" {
		session.ConversationId = reply.ConversationId
	}
	session.AppendChatTurn(constant.ChatMessageRoleUser, message)
	session.AppendChatTurn(constant.ChatMessageRoleModel, reply.Text)
	s.transcript.Printf("conversation=%s visitor=%s user=%q model=%q refined=%v",
		session.ConversationId, session.VisitorId, message, reply.Text, reply.RefinedQueries)

	response := &dto.ChatMessageResponse{
		Reply:            reply.Text,
		FollowupQuestion: reply.FollowupQuestion,
		ConversationId:   session.ConversationId,
	}

	// When the reply refined the request into a concrete query, run it and
	// attach a few products. Losing this search keeps the text answer.
	if len(reply.RefinedQueries) > 0 {
		response.Products = s.refinedProducts(ctx, session.VisitorId, reply.RefinedQueries[0])
	}
	return response, nil
}

func (s *chatService) refinedProducts(ctx context.Context, visitorId, query string) []dto.ProductCard {
	resp, err := s.client.Search(ctx, s.searchConfig, &retail.SearchRequest{
		Query:     query,
		VisitorId: visitorId,
		PageSize:  constant.ChatResultPageSize,
	})
	if err != nil {
		log.Printf("[Chat] WARN - refined search %q failed: %v", query, err)
		return nil
	}
	return s.mapper.SearchResultsToCards(resp.Results)
}

func (s *chatService) ClearConversation(session *entity.Session) {
	session.ResetConversation()
	log.Printf("[Chat] Conversation cleared for visitor %s", session.VisitorId)
}

func (s *chatService) History(session *entity.Session) []dto.ChatTurnView {
	turns := make([]dto.ChatTurnView, 0, len(session.ChatHistory))
	for _, turn := range session.ChatHistory {
		turns = append(turns, dto.ChatTurnView{Role: turn.Role, Content: turn.Content})
	}
	return turns
}
