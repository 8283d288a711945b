package answer

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/pasar-labs/xiara/server/internal/agent/model"
)

// LLMBorderlineClassifier asks a chat model whether a borderline shopping
// query is ambiguous. Callers treat any error as "not ambiguous".
type LLMBorderlineClassifier struct {
	chatModel einomodel.BaseChatModel
}

func NewLLMBorderlineClassifier(chatModel einomodel.BaseChatModel) *LLMBorderlineClassifier {
	return &LLMBorderlineClassifier{chatModel: chatModel}
}

func (c *LLMBorderlineClassifier) Classify(ctx context.Context, query string) (bool, error) {
	prompt := fmt.Sprintf(
		"Is the following shopping-related query ambiguous (multiple possible interpretations)? "+
			"Answer only 'YES' or 'NO'. Query: '%s'", query)

	out, err := c.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return false, fmt.Errorf("classify borderline query: %w", err)
	}
	if out == nil {
		return false, fmt.Errorf("classify borderline query: empty response")
	}

	answer := strings.ToUpper(strings.TrimSpace(out.Content))
	return strings.HasPrefix(answer, "Y"), nil
}

var _ model.BorderlineClassifier = (*LLMBorderlineClassifier)(nil)
