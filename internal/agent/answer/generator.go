package answer

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/pasar-labs/xiara/server/internal/agent/model"
)

// Generator produces natural-language product answers with a chat model.
type Generator struct {
	chatModel einomodel.BaseChatModel
	prompt    model.PromptConfig
}

func NewGenerator(chatModel einomodel.BaseChatModel, prompt model.PromptConfig) *Generator {
	return &Generator{chatModel: chatModel, prompt: prompt}
}

func (g *Generator) systemPrompt() string {
	return fmt.Sprintf(
		"You are %s, a conversational and friendly AI shopping assistant for the %s marketplace.\n"+
			"Understand user intent and respond naturally in multi-turn conversations.\n"+
			"If the query is clear, respond with useful product recommendations.\n"+
			"Keep responses conversational, concise, and engaging.",
		g.prompt.AgentName, g.prompt.Marketplace)
}

// Generate answers one sub-query given the rendered conversation context.
func (g *Generator) Generate(ctx context.Context, conversationContext string, subQuery string) (*model.Answer, error) {
	userContent := subQuery
	if conversationContext != "" {
		userContent = fmt.Sprintf("Recent conversation:\n%s\n\nCurrent request: %s", conversationContext, subQuery)
	}

	messages := []*schema.Message{
		schema.SystemMessage(g.systemPrompt()),
		schema.UserMessage(userContent),
	}

	out, err := g.chatModel.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}
	if out == nil || out.Content == "" {
		return &model.Answer{Text: "I'm not sure."}, nil
	}
	return &model.Answer{Text: out.Content}, nil
}

var _ model.AnswerGenerator = (*Generator)(nil)
