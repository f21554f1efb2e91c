package compose

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Defaults for health polling: thirty attempts two seconds apart, a minute
// in total.
const (
	defaultWaitAttempts  = 30
	defaultWaitInterval  = 2 * time.Second
	defaultProbeTimeout  = 2 * time.Second
	progressNoteInterval = 5
)

// WaitConfig controls health polling.
type WaitConfig struct {
	// URL is the health endpoint to probe.
	URL string
	// Attempts defaults to 30.
	Attempts int
	// Interval between attempts, defaults to 2s.
	Interval time.Duration
	// HTTPClient defaults to a client with a short per-probe timeout.
	HTTPClient *http.Client
	// Out receives periodic progress notes.
	Out io.Writer
}

// WaitHealthy polls the health endpoint until it answers 200 or the
// attempts run out. Running out is not an error: the service may still be
// initializing, and the caller surfaces that as a note.
func WaitHealthy(ctx context.Context, cfg WaitConfig) (bool, error) {
	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = defaultWaitAttempts
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultWaitInterval
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultProbeTimeout}
	}
	out := cfg.Out
	if out == nil {
		out = io.Discard
	}

	for i := 0; i < attempts; i++ {
		if probe(ctx, client, cfg.URL) {
			return true, nil
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(interval):
		}

		if (i+1)%progressNoteInterval == 0 {
			fmt.Fprintf(out, "Still waiting... (attempt %d/%d)\n", i+1, attempts)
		}
	}
	return false, nil
}

func probe(ctx context.Context, client *http.Client, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	res, err := client.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()
	return res.StatusCode == http.StatusOK
}
