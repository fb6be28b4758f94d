package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// CollySession fetches server-rendered pages without a browser. It ignores
// the wait selector since nothing renders after the response.
type CollySession struct {
	collector *colly.Collector
}

func NewCollySession(opts Options) (*CollySession, error) {
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
	)

	timeout := opts.ImplicitWait
	if timeout <= 0 {
		timeout = defaultImplicitWait
	}
	c.SetRequestTimeout(timeout)

	if opts.RequestDelay > 0 {
		if err := c.Limit(&colly.LimitRule{
			DomainGlob:  "*",
			Parallelism: 1,
			Delay:       opts.RequestDelay,
		}); err != nil {
			return nil, fmt.Errorf("failed to set limit rule: %w", err)
		}
	}

	return &CollySession{collector: c}, nil
}

// Render implements Session.
func (s *CollySession) Render(ctx context.Context, url string, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := s.collector.Clone()

	var (
		body    string
		respErr error
	)

	c.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
	})

	c.OnError(func(r *colly.Response, err error) {
		respErr = fmt.Errorf("status %d: %w", r.StatusCode, err)
	})

	started := time.Now()
	if err := c.Visit(url); err != nil {
		if respErr != nil {
			return "", respErr
		}
		return "", fmt.Errorf("failed to visit %s after %s: %w", url, time.Since(started), err)
	}

	c.Wait()

	if respErr != nil {
		return "", respErr
	}

	return body, nil
}

// Close implements Session.
func (s *CollySession) Close() error {
	return nil
}
