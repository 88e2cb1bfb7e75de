// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by metadata backends.
package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// GetJSON issues a GET for reqURL, requires a 2xx status, and decodes the
// JSON response body into v. The caller's context bounds the request; the
// client's timeout applies on top of it. Failures are returned as-is for
// the caller to treat as fatal — search calls are never retried, the
// external scheduler re-invokes the run against the unchanged window.
func GetJSON(ctx context.Context, client *http.Client, reqURL, userAgent string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, req.URL.Host)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
