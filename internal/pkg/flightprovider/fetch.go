package flightprovider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/flightprovider/providerutils"
)

// Page is what a variant asks the session to render.
type Page struct {
	URL          string
	WaitSelector string
}

// RenderPage waits for a navigation slot and renders page under the source
// timeout. Failures come back as transport errors.
func RenderPage(ctx context.Context, source string, config FlightProviderConfig, page Page) (string, error) {
	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	if err := providerutils.WaitForSlot(ctx, config.Limiter, providerutils.RateLimitKey(source), config.RateLimitPerMinute); err != nil {
		return "", err
	}

	slog.DebugContext(ctx, "rendering provider page", slog.String("source", source), slog.String("url", page.URL))

	html, err := config.Session.Render(ctx, page.URL, page.WaitSelector)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", fmt.Errorf("render %s: %w", source, err)
		}

		return "", providerutils.ErrTransport.Withf("render %s: %w", source, err)
	}

	return html, nil
}
