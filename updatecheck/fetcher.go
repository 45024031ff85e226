// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package updatecheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielhkuo/habitpair/pwa"
)

// HTTPFetcher GETs a version.json URL, bypassing every cache on the way
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

func (f HTTPFetcher) Fetch(ctx context.Context) (pwa.Descriptor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return pwa.Descriptor{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return pwa.Descriptor{}, fmt.Errorf("failed to fetch %s: %w", f.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return pwa.Descriptor{}, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, f.URL)
	}

	var d pwa.Descriptor
	if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
		return pwa.Descriptor{}, fmt.Errorf("failed to decode version descriptor: %w", err)
	}
	if d.DeploymentID == "" {
		return pwa.Descriptor{}, errors.New("version descriptor has no deploymentId")
	}

	return d, nil
}
