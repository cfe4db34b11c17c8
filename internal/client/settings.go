package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/EO-DataHub/eodhp-admin-console/models"
)

const settingsFallbackMessage = "failed to update settings"

// GetSettings retrieves the system settings document.
func (c *Client) GetSettings(ctx context.Context) (models.Settings, error) {
	respBody, err := c.get(ctx, c.Endpoints.Settings)
	if err != nil {
		return nil, err
	}

	settings := models.Settings{}
	if err := json.Unmarshal(respBody, &settings); err != nil {
		return nil, &ParseError{URL: c.resolve(c.Endpoints.Settings), Err: err}
	}
	return settings, nil
}

// UpdateSetting persists a single boolean flag.
func (c *Client) UpdateSetting(ctx context.Context, name string, value bool) error {
	payload, err := json.Marshal(map[string]bool{name: value})
	if err != nil {
		return fmt.Errorf("failed to encode setting: %w", err)
	}

	respBody, statusCode, err := c.makeRequest(ctx, http.MethodPost, c.Endpoints.Settings, "application/json", payload)
	if err != nil {
		return err
	}

	if !isSuccess(statusCode) {
		var body models.Response
		_ = json.Unmarshal(respBody, &body)
		message := body.Error
		if message == "" {
			message = settingsFallbackMessage
		}
		return &HTTPError{Message: message, Status: statusCode}
	}
	return nil
}
