package browser

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const defaultImplicitWait = 10 * time.Second

// RodSession drives a headless Chrome through rod.
type RodSession struct {
	launcher     *launcher.Launcher
	browser      *rod.Browser
	implicitWait time.Duration
	userAgent    string
}

// chromePaths are probed when no binary is configured; rod downloads a
// Chromium build when none of them exist.
var chromePaths = []string{
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/snap/bin/chromium",
	`C:\Program Files\Google\Chrome\Application\chrome.exe`,
	`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
}

// NewRodSession launches the browser and connects to it.
func NewRodSession(ctx context.Context, opts Options) (*RodSession, error) {
	l := launcher.New().
		Context(ctx).
		Headless(opts.Headless).
		NoSandbox(true).
		Leakless(false).
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("no-first-run").
		Set("no-default-browser-check").
		Set("disable-extensions").
		Set("mute-audio")

	if opts.UserDataDir != "" {
		if err := os.MkdirAll(opts.UserDataDir, 0o755); err != nil {
			slog.WarnContext(ctx, "failed to create browser data directory, using a temporary one",
				slog.String("dir", opts.UserDataDir), slog.String("error", err.Error()))
		} else {
			l = l.UserDataDir(opts.UserDataDir)
		}
	}

	if bin := resolveBin(opts.BinPath); bin != "" {
		l = l.Bin(bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	wait := opts.ImplicitWait
	if wait <= 0 {
		wait = defaultImplicitWait
	}

	slog.InfoContext(ctx, "browser session opened",
		slog.String("driver", DriverRod), slog.Duration("implicit_wait", wait))

	return &RodSession{
		launcher:     l,
		browser:      browser,
		implicitWait: wait,
		userAgent:    opts.UserAgent,
	}, nil
}

func resolveBin(configured string) string {
	if configured != "" {
		return configured
	}

	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// Render implements Session.
func (s *RodSession) Render(ctx context.Context, url string, waitSelector string) (string, error) {
	page, err := s.browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("failed to open page: %w", err)
	}
	defer page.Close()

	if s.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: s.userAgent}); err != nil {
			return "", fmt.Errorf("failed to set user agent: %w", err)
		}
	}

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("failed to navigate: %w", err)
	}

	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("failed to wait for load: %w", err)
	}

	if waitSelector != "" {
		if _, err := page.Timeout(s.implicitWait).Element(waitSelector); err != nil && !IsTimeout(err) {
			return "", fmt.Errorf("failed to wait for %q: %w", waitSelector, err)
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get HTML: %w", err)
	}

	return html, nil
}

// Close closes the browser and kills the launched process.
func (s *RodSession) Close() error {
	if s.browser == nil {
		return nil
	}

	err := s.browser.Close()
	s.launcher.Kill()

	return err
}
