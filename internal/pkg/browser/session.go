package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/exception"
)

const (
	DriverRod   = "rod"
	DriverColly = "colly"
)

var ErrSessionOpen = exception.ApplicationError{
	Kind:       exception.KindTransport,
	StatusCode: http.StatusServiceUnavailable,
	Message:    "failed to open automation session",
}

var ErrUnknownDriver = exception.ApplicationError{
	Kind:       exception.KindConfig,
	StatusCode: http.StatusInternalServerError,
	Message:    "unknown browser driver",
}

// Session renders a page and returns its HTML. Only one is open per process.
type Session interface {
	// Render navigates to url and waits up to the implicit wait for
	// waitSelector before returning the document. A selector that never
	// appears is not an error; the caller sees an empty result page.
	Render(ctx context.Context, url string, waitSelector string) (string, error)
	Close() error
}

// Opener acquires a Session.
type Opener func(ctx context.Context) (Session, error)

// Options configures the session drivers.
type Options struct {
	Driver       string
	BinPath      string
	Headless     bool
	UserDataDir  string
	UserAgent    string
	ImplicitWait time.Duration
	RequestDelay time.Duration
}

// NewOpener returns the opener for the configured driver.
func NewOpener(opts Options) (Opener, error) {
	switch opts.Driver {
	case DriverRod, "":
		return func(ctx context.Context) (Session, error) {
			return NewRodSession(ctx, opts)
		}, nil
	case DriverColly:
		return func(_ context.Context) (Session, error) {
			return NewCollySession(opts)
		}, nil
	default:
		return nil, ErrUnknownDriver.Withf("driver %q", opts.Driver)
	}
}

// WithSession opens a session, runs fn and closes the session on every exit
// path, panics included.
func WithSession(ctx context.Context, open Opener, fn func(ctx context.Context, session Session) error) (err error) {
	session, err := open(ctx)
	if err != nil {
		return ErrSessionOpen.WithCause(err)
	}

	defer func() {
		closeErr := session.Close()
		if closeErr == nil {
			return
		}

		slog.WarnContext(ctx, "failed to close automation session", slog.String("error", closeErr.Error()))

		if err == nil {
			err = fmt.Errorf("close session: %w", closeErr)
		}
	}()

	return fn(ctx, session)
}

// IsTimeout reports whether err is the implicit wait running out.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
