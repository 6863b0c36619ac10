package transcript

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lukman83/youtube-mcp/internal/logger"
	"github.com/lukman83/youtube-mcp/internal/models"
)

// DefaultRaceTimeout bounds how long fast strategies may run before the
// slow ones are tried.
const DefaultRaceTimeout = 15 * time.Second

// Fetcher runs the strategy chain: fast strategies are raced and the first
// usable transcript wins; slow strategies are then tried one at a time.
type Fetcher struct {
	fast        []Strategy
	slow        []Strategy
	raceTimeout time.Duration
}

func NewFetcher(fast, slow []Strategy, raceTimeout time.Duration) *Fetcher {
	if raceTimeout <= 0 {
		raceTimeout = DefaultRaceTimeout
	}
	return &Fetcher{fast: fast, slow: slow, raceTimeout: raceTimeout}
}

// NewDefaultFetcher builds the standard chain over client. The headless
// browser fallback is only added when headless is set.
func NewDefaultFetcher(client *http.Client, headless bool) *Fetcher {
	var slow []Strategy
	if headless {
		slow = append(slow, NewHeadlessStrategy())
	}
	return NewFetcher(
		[]Strategy{NewWatchPageStrategy(client), NewInnertubeStrategy(client)},
		slow,
		DefaultRaceTimeout,
	)
}

// Fetch returns the transcript of videoID, preferring language.
func (f *Fetcher) Fetch(ctx context.Context, videoID, language string) (*models.Transcript, error) {
	if language == "" {
		language = "en"
	}
	req := Request{VideoID: videoID, Language: language}
	log := logger.With("transcript").WithField("video_id", videoID)

	var failures []string
	if len(f.fast) > 0 {
		t, errs, err := f.race(ctx, req)
		if err != nil {
			return nil, err
		}
		if t != nil {
			log.WithField("strategy", t.Source).Debug("transcript fetched")
			return t, nil
		}
		failures = append(failures, errs...)
	}

	for _, s := range f.slow {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ReportProgress(ctx, fmt.Sprintf("Trying %s strategy...", s.Name()))
		t, err := s.Fetch(ctx, req)
		if ok, reason := usable(t, err); ok {
			t.Source = s.Name()
			ReportProgress(ctx, fmt.Sprintf("Found %d segments via %s", len(t.Segments), s.Name()))
			log.WithField("strategy", s.Name()).Debug("transcript fetched")
			return t, nil
		} else {
			failures = append(failures, s.Name()+": "+reason)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.WithField("failures", failures).Warn("transcript strategies exhausted")
	if len(failures) == 0 {
		return nil, errors.New("no transcript strategies configured")
	}
	return nil, errors.New(strings.Join(failures, "; "))
}

// race runs the fast strategies concurrently. It returns the winner, or the
// per-strategy failure reasons when none succeeded in time.
func (f *Fetcher) race(ctx context.Context, req Request) (*models.Transcript, []string, error) {
	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		transcript *models.Transcript
		strategy   string
		err        error
	}
	resultCh := make(chan outcome, len(f.fast))
	for _, s := range f.fast {
		go func(s Strategy) {
			t, err := s.Fetch(raceCtx, req)
			resultCh <- outcome{transcript: t, strategy: s.Name(), err: err}
		}(s)
	}

	timer := time.NewTimer(f.raceTimeout)
	defer timer.Stop()

	var failures []string
	for pending := len(f.fast); pending > 0; pending-- {
		select {
		case o := <-resultCh:
			if ok, reason := usable(o.transcript, o.err); ok {
				cancel()
				o.transcript.Source = o.strategy
				ReportProgress(ctx, fmt.Sprintf("Found %d segments via %s", len(o.transcript.Segments), o.strategy))
				return o.transcript, nil, nil
			} else {
				failures = append(failures, o.strategy+": "+reason)
			}
		case <-timer.C:
			ReportProgress(ctx, "Fast strategies timed out")
			return nil, append(failures, fmt.Sprintf("fast strategies timed out after %s", f.raceTimeout)), nil
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}
	return nil, failures, nil
}

func usable(t *models.Transcript, err error) (bool, string) {
	switch {
	case err != nil:
		return false, err.Error()
	case t == nil || len(t.Segments) == 0:
		return false, "empty transcript"
	}
	return true, ""
}
