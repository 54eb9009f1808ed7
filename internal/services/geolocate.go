package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hbui/cinecli/internal/shared"
)

// locateTimeout is the fixed budget for one position fix.
const locateTimeout = 5 * time.Second

// Position is a single geolocation fix.
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lon"`
}

// Locator resolves the user's position through an HTTP geolocation lookup.
type Locator struct {
	providerURL string
	httpClient  *http.Client
}

// NewLocator creates a Locator for the given provider endpoint.
func NewLocator(providerURL string, client *http.Client) *Locator {
	if providerURL == "" {
		providerURL = "http://ip-api.com/json"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Locator{providerURL: providerURL, httpClient: client}
}

// Locate requests one high-accuracy position fix with a 5 second timeout and
// no cached result. Failure causes map to distinct sentinel errors:
// [shared.ErrLocationDenied] when the provider refuses the request,
// [shared.ErrTimeout] when the budget runs out, and
// [shared.ErrLocationUnavailable] for every other cause.
func (l *Locator) Locate(ctx context.Context) (*Position, error) {
	ctx, cancel := context.WithTimeout(ctx, locateTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.providerURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrLocationUnavailable, err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: position request took longer than %s", shared.ErrTimeout, locateTimeout)
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrLocationUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: provider returned status %d", shared.ErrLocationDenied, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: provider returned status %d", shared.ErrLocationUnavailable, resp.StatusCode)
	}

	var pos Position
	if err := json.NewDecoder(resp.Body).Decode(&pos); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrLocationUnavailable, err)
	}

	if pos.Lat == 0 && pos.Lng == 0 {
		return nil, fmt.Errorf("%w: provider returned no coordinates", shared.ErrLocationUnavailable)
	}

	return &pos, nil
}
