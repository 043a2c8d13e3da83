package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/docchat/internal/errors"
	"github.com/diogo/docchat/internal/models"
)

// Chat posts a message to /api/chat and returns the reply text
func (c *Client) Chat(ctx context.Context, message string) (*models.ChatResponse, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apierrors.ErrEmptyMessage
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(models.ChatRequest{Message: message})
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(models.PathChat), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(ctx, req, "chat", models.PathChat)
	if err != nil {
		return nil, err
	}

	return parseChatResponse(body)
}

// parseChatResponse extracts the reply text; every other field is ignored
func parseChatResponse(body []byte) (*models.ChatResponse, error) {
	if !gjson.ValidBytes(body) {
		return nil, withEndpoint(apierrors.NewParseError("response is not valid JSON", ""), models.PathChat)
	}

	text := gjson.GetBytes(body, PathText)
	if !text.Exists() {
		return nil, withEndpoint(apierrors.NewParseError("missing reply text", PathText), models.PathChat)
	}
	if text.Type != gjson.String {
		return nil, withEndpoint(apierrors.NewParseError("reply text is not a string", PathText), models.PathChat)
	}

	return &models.ChatResponse{Text: text.String()}, nil
}

func withEndpoint(err *apierrors.ParseError, endpoint string) *apierrors.ParseError {
	err.Endpoint = endpoint
	return err
}
