package deepseek

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/intent"
	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/observability"
)

const extractionPrompt = `Analyze this hotel guest utterance. Extract bookings, room type, food items, and quantities as JSON.
Return ONLY valid JSON with structure: {"intent": "booking/food/inquiry", "entities": {"room_type": "", "guest_name": "", "dates": {"check_in": "", "check_out": ""}, "food_items": [], "quantity": 1}}
Dates must be YYYY-MM-DD. Omit entity keys you did not hear.
Input: `

// Client extracts structured intent from an utterance using the DeepSeek
// chat-completions API, which is OpenAI-compatible.
type Client struct {
	client openai.Client
	model  string
	logger *observability.Logger
}

func New(apiKey, baseURL, model string, logger *observability.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("DeepSeek API key is required")
	}
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	)
	return &Client{client: client, model: model, logger: logger}, nil
}

// Extract returns the intent and entities for one utterance. It never returns
// an error: provider failures and unparseable responses degrade to the
// unknown intent with empty entities.
func (c *Client) Extract(ctx context.Context, utterance string) intent.Result {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(extractionPrompt + utterance),
		},
		Temperature: openai.Float(0.3),
		MaxTokens:   openai.Int(400),
	})
	if err != nil {
		c.logger.Error(ctx, "intent extraction request failed", err)
		return intent.Unknown()
	}
	if len(resp.Choices) == 0 {
		c.logger.Error(ctx, "intent extraction returned no choices", nil)
		return intent.Unknown()
	}

	result, err := intent.Parse(resp.Choices[0].Message.Content)
	if err != nil {
		c.logger.Error(ctx, "failed to parse intent extraction response", err)
		return intent.Unknown()
	}

	c.logger.Info(ctx, "intent extracted",
		observability.Field{Key: "intent", Value: result.Intent})
	return result
}
