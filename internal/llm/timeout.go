package llm

import (
	"context"
	"time"
)

// timeoutClient bounds every model call with a deadline.
type timeoutClient struct {
	Client
	timeout time.Duration
}

// WithTimeout wraps a client so each call runs under its own deadline. A
// non-positive timeout returns the client unchanged.
func WithTimeout(client Client, timeout time.Duration) Client {
	if timeout <= 0 {
		return client
	}
	return &timeoutClient{Client: client, timeout: timeout}
}

func (c *timeoutClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.Client.GenerateJSON(ctx, prompt)
}

func (c *timeoutClient) Converse(ctx context.Context, history []Message, input string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.Client.Converse(ctx, history, input)
}
