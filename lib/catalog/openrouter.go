// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the OpenRouter API root.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// OpenRouter queries the OpenRouter model listing endpoint.
type OpenRouter struct {
	baseURL string
	client  *http.Client
}

// NewOpenRouter builds a catalog client. Empty baseURL means
// [DefaultBaseURL]; zero timeout means 20 seconds.
func NewOpenRouter(baseURL string, timeout time.Duration) *OpenRouter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &OpenRouter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// modelListing is the shape of GET /models.
type modelListing struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Has fetches the model listing and reports whether id appears in it.
func (o *OpenRouter) Has(ctx context.Context, id string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/models", nil)
	if err != nil {
		return false, fmt.Errorf("building catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return false, fmt.Errorf("catalog returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var listing modelListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return false, fmt.Errorf("parsing catalog response: %w", err)
	}

	lowered := strings.ToLower(id)
	for _, entry := range listing.Data {
		if strings.ToLower(entry.ID) == lowered {
			return true, nil
		}
	}
	return false, nil
}
