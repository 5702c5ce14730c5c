package googleai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/observability"
)

const frontDeskModel = "gemini-1.5-flash"

// Client produces free-form front-desk replies for inquiry turns. It makes no
// tool calls; bookings and orders never run through this path.
type Client struct {
	apiKey    string
	hotelName string
	logger    *observability.Logger
}

func New(apiKey, hotelName string, logger *observability.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Google AI API key is required")
	}
	return &Client{apiKey: apiKey, hotelName: hotelName, logger: logger}, nil
}

// Reply generates a short conversational response to the transcript.
func (c *Client) Reply(ctx context.Context, transcript string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	prompt := fmt.Sprintf(`You are the front desk receptionist of %s, speaking with a guest on the phone.
The guest said: %q
Reply in one or two short spoken sentences. If the guest seems to want a room or food, ask the one question that moves that along. Never invent prices or availability.`,
		c.hotelName, transcript)

	model := client.GenerativeModel(frontDeskModel)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate front desk reply: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no reply returned from Gemini")
	}
	part, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response format")
	}
	return strings.TrimSpace(string(part)), nil
}
