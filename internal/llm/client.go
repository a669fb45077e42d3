package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Message roles for conversation history.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is a single turn in a conversation history.
type Message struct {
	Role string
	Text string
}

// Client is an abstraction over LLM providers. Implementations may return
// non-conformant text at any time; callers must validate everything.
type Client interface {
	// GenerateJSON generates JSON content for a single prompt.
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	// Converse generates a reply to input given the accumulated history.
	Converse(ctx context.Context, history []Message, input string) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateJSON generates JSON content using the scoring model.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.config.ScoringModel)
	model.SetTemperature(scoringTemperature)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	return CleanJSONBlock(text), nil
}

// Converse sends input to the chat model with the given history and returns
// the complete reply.
func (c *GeminiClient) Converse(ctx context.Context, history []Message, input string) (string, error) {
	model := c.client.GenerativeModel(c.config.ChatModel)
	model.SetTemperature(chatTemperature)

	session := model.StartChat()
	session.History = make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		session.History = append(session.History, &genai.Content{
			Role:  msg.Role,
			Parts: []genai.Part{genai.Text(msg.Text)},
		})
	}

	resp, err := session.SendMessage(ctx, genai.Text(input))
	if err != nil {
		return "", fmt.Errorf("failed to generate reply: %w", err)
	}

	return extractTextFromResponse(resp)
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
