// Package session drives one interactive user: debounced URL input, at most
// one action in flight, and the latest result or error.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/sozercan/algowhisperer/apimodels"
	"github.com/sozercan/algowhisperer/internal/analyzer"
	"github.com/sozercan/algowhisperer/internal/llm"
	"github.com/sozercan/algowhisperer/internal/platform"
	"github.com/sozercan/algowhisperer/internal/prompt"
)

var (
	// ErrBusy is returned by Act while a previous action is still running.
	ErrBusy = errors.New("an analysis is already in progress")
	// ErrNotReady is returned by Act when the current input is not a
	// supported problem URL.
	ErrNotReady = errors.New("enter a supported problem URL first")
)

// Analyzer is the part of *analyzer.Analyzer a Session needs.
type Analyzer interface {
	Analyze(ctx context.Context, rawURL string, action prompt.Action, opts ...llm.Option) (*apimodels.AnalysisResponse, error)
}

// State is a snapshot of the session.
type State struct {
	Input    string
	Status   platform.Status
	Platform platform.Platform
	Loading  bool
	Result   *apimodels.AnalysisResponse
	Error    string
}

// Options configures a Session. All callbacks are optional and are invoked
// without the session lock held.
type Options struct {
	Debounce time.Duration

	// OnURLChange fires after each committed classification.
	OnURLChange func(url string, valid bool)
	// OnChange fires after any state change.
	OnChange func(State)
}

type Session struct {
	analyzer  Analyzer
	opts      Options
	debouncer *platform.Debouncer

	mu         sync.Mutex
	state      State
	generation uint64
}

func New(a Analyzer, opts Options) *Session {
	s := &Session{
		analyzer: a,
		opts:     opts,
		state:    State{Status: platform.StatusIdle, Platform: platform.Unknown},
	}
	s.debouncer = platform.NewDebouncer(opts.Debounce, s.commit)
	return s
}

// SetInput records new input text. Classification happens once the input has
// been stable for the debounce interval.
func (s *Session) SetInput(text string) {
	s.debouncer.Push(text)
}

// Flush commits pending input immediately.
func (s *Session) Flush() {
	s.debouncer.Flush()
}

// Close discards pending input.
func (s *Session) Close() {
	s.debouncer.Stop()
}

func (s *Session) commit(text string) {
	c := platform.Evaluate(text)

	s.mu.Lock()
	if c.Input != s.state.Input {
		// Anything still in flight belongs to the old URL.
		s.generation++
	}
	s.state.Input = c.Input
	s.state.Status = c.Status
	s.state.Platform = c.Platform
	if c.Status == platform.StatusInvalid {
		s.state.Result = nil
	}
	snap := s.state
	s.mu.Unlock()

	slog.Debug("input classified", "url", c.Input, "status", c.Status, "platform", c.Platform)
	if s.opts.OnURLChange != nil {
		s.opts.OnURLChange(c.Input, c.Valid())
	}
	s.notify(snap)
}

// Act runs action against the current URL and blocks until it completes. The
// result is stored unless the URL changed while the call was running; a
// dropped result is reported as (nil, nil).
func (s *Session) Act(ctx context.Context, action prompt.Action, opts ...llm.Option) (*apimodels.AnalysisResponse, error) {
	s.mu.Lock()
	if s.state.Status != platform.StatusValid {
		s.mu.Unlock()
		return nil, ErrNotReady
	}
	if s.state.Loading {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.state.Loading = true
	s.state.Result = nil
	s.state.Error = ""
	url := s.state.Input
	gen := s.generation
	snap := s.state
	s.mu.Unlock()
	s.notify(snap)

	resp, err := s.analyzer.Analyze(ctx, url, action, opts...)

	s.mu.Lock()
	s.state.Loading = false
	stale := gen != s.generation
	switch {
	case stale:
		slog.Info("discarding stale analysis result", "url", url)
	case err != nil:
		s.state.Error = userMessage(err)
	default:
		s.state.Result = resp
	}
	snap = s.state
	s.mu.Unlock()
	s.notify(snap)

	if err != nil {
		return nil, err
	}
	if stale {
		return nil, nil
	}
	return resp, nil
}

// Snapshot returns the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) notify(st State) {
	if s.opts.OnChange != nil {
		s.opts.OnChange(st)
	}
}

// userMessage is what the user sees for err. Provider failures never leak
// their cause.
func userMessage(err error) string {
	var ve *analyzer.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return analyzer.GenericFailureMessage
}
