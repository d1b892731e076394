package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"icon-generator/models"
)

// DefaultFlagBaseURL serves circular country-flag SVGs, addressed by
// lowercase country code.
const DefaultFlagBaseURL = "https://hatscripts.github.io/circle-flags/flags"

// FlagFetcher retrieves country flag art over HTTP.
type FlagFetcher struct {
	BaseURL string
	Client  *http.Client
}

func NewFlagFetcher() *FlagFetcher {
	return &FlagFetcher{
		BaseURL: DefaultFlagBaseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch downloads the flag SVG for a country code. Any transport or HTTP
// error wraps models.ErrFetchFailed so the whole generation request fails.
func (f *FlagFetcher) Fetch(ctx context.Context, countryCode string) (string, error) {
	url := fmt.Sprintf("%s/%s.svg", f.BaseURL, countryCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: building request for %s: %v", models.ErrFetchFailed, url, err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: fetching %s: %v", models.ErrFetchFailed, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: fetching %s: status %s", models.ErrFetchFailed, url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", models.ErrFetchFailed, url, err)
	}
	return string(data), nil
}
