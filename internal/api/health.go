package api

import (
	"context"
	"fmt"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/docchat/internal/errors"
	"github.com/diogo/docchat/internal/models"
)

// Health queries /api/health for the backend's mode and model
func (c *Client) Health(ctx context.Context) (*models.HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(models.PathHealth), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	body, err := c.do(ctx, req, "health check", models.PathHealth)
	if err != nil {
		return nil, err
	}

	return parseHealthResponse(body)
}

func parseHealthResponse(body []byte) (*models.HealthStatus, error) {
	if !gjson.ValidBytes(body) {
		return nil, withEndpoint(apierrors.NewParseError("response is not valid JSON", ""), models.PathHealth)
	}

	result := gjson.GetManyBytes(body, PathMode, PathModel)
	mode, model := result[0], result[1]

	if mode.Type != gjson.String {
		return nil, withEndpoint(apierrors.NewParseError("missing mode", PathMode), models.PathHealth)
	}

	status := &models.HealthStatus{Mode: mode.String()}
	if model.Type == gjson.String {
		status.Model = model.String()
	}
	return status, nil
}
