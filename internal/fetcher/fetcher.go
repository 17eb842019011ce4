package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/junsooki/photoframe/internal/logging"
	"github.com/junsooki/photoframe/internal/mailbox"
)

// DefaultMaxBodyBytes caps how much of a response body is read.
const DefaultMaxBodyBytes = 64 << 20

// ErrBodyTooLarge is returned when a response exceeds MaxBodyBytes.
var ErrBodyTooLarge = errors.New("response body too large")

// StatusError is a response with a non-2xx status code.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error %d", e.Code)
}

// Outcome classifies a single fetch attempt.
type Outcome int

const (
	OutcomePublished Outcome = iota
	OutcomeEmpty
	OutcomeStatusError
	OutcomeTransportError
	OutcomeBodyError
)

func (o Outcome) String() string {
	switch o {
	case OutcomePublished:
		return "published"
	case OutcomeEmpty:
		return "empty"
	case OutcomeStatusError:
		return "status_error"
	case OutcomeTransportError:
		return "transport_error"
	case OutcomeBodyError:
		return "body_error"
	}
	return "unknown"
}

// Options configures a Fetcher.
type Options struct {
	URL      string
	Timeout  time.Duration // per request
	Interval time.Duration // delay after each attempt completes

	MaxBodyBytes int64        // 0 means DefaultMaxBodyBytes
	Client       *http.Client // nil means a client with Timeout
}

// Fetcher polls the photo server and publishes every non-empty photo into
// the mailbox. Failures are logged and never stop the loop.
type Fetcher struct {
	opts   Options
	client *http.Client
	box    *mailbox.Mailbox
	logger *log.Logger

	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a Fetcher publishing into box.
func New(opts Options, box *mailbox.Mailbox, logger *log.Logger) *Fetcher {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &Fetcher{
		opts:   opts,
		client: client,
		box:    box,
		logger: logger.With("component", "fetcher"),
		sleep:  sleepContext,
	}
}

// Run fetches until ctx is cancelled, waiting Interval after every attempt
// regardless of its outcome. It only returns ctx's error.
func (f *Fetcher) Run(ctx context.Context) error {
	f.logger.Info("starting background photo fetch", "url", f.opts.URL, "interval", f.opts.Interval)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		f.FetchOnce(ctx)
		if err := f.sleep(ctx, f.opts.Interval); err != nil {
			return err
		}
	}
}

// FetchOnce performs one GET and updates the mailbox on success.
// The returned error is informational; it has already been logged.
func (f *Fetcher) FetchOnce(ctx context.Context) (Outcome, error) {
	start := time.Now()
	data, err := f.get(ctx)
	f.logger.Info("image request completed", "elapsed", logging.Since(start))

	var se *StatusError
	switch {
	case errors.As(err, &se):
		f.logger.Error("error fetching photo", "err", err)
		return OutcomeStatusError, err
	case errors.Is(err, ErrBodyTooLarge):
		f.logger.Error("error fetching photo", "err", err)
		return OutcomeBodyError, err
	case err != nil:
		f.logger.Error("error fetching photo", "err", err)
		return OutcomeTransportError, err
	case len(data) == 0:
		f.logger.Warn("received empty image data, keeping current display")
		return OutcomeEmpty, nil
	}

	f.box.Put(data)
	f.logger.Debug("photo published", "bytes", len(data))
	return OutcomePublished, nil
}

func (f *Fetcher) get(ctx context.Context) ([]byte, error) {
	if f.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.opts.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.opts.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Code: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.opts.MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > f.opts.MaxBodyBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, f.opts.MaxBodyBytes)
	}
	return data, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
