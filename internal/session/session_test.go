package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sozercan/algowhisperer/apimodels"
	"github.com/sozercan/algowhisperer/internal/analyzer"
	"github.com/sozercan/algowhisperer/internal/llm"
	"github.com/sozercan/algowhisperer/internal/platform"
	"github.com/sozercan/algowhisperer/internal/prompt"
)

const twoSum = "https://leetcode.com/problems/two-sum/"

type stubAnalyzer struct {
	started chan struct{}
	release chan struct{}
	err     error
	calls   int
	mu      sync.Mutex
}

func (s *stubAnalyzer) Analyze(_ context.Context, rawURL string, action prompt.Action, _ ...llm.Option) (*apimodels.AnalysisResponse, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	if s.err != nil {
		return nil, s.err
	}
	return &apimodels.AnalysisResponse{URL: rawURL, Action: string(action.Kind()), Content: "done"}, nil
}

func newSession(a Analyzer) *Session {
	return New(a, Options{Debounce: time.Hour})
}

func TestSetInputCommitsClassification(t *testing.T) {
	var changes []bool
	s := New(&stubAnalyzer{}, Options{
		Debounce:    time.Hour,
		OnURLChange: func(_ string, valid bool) { changes = append(changes, valid) },
	})
	defer s.Close()

	s.SetInput("https://example.com/problem/1")
	s.Flush()
	assert.Equal(t, platform.StatusInvalid, s.Snapshot().Status)

	s.SetInput(twoSum)
	s.Flush()
	st := s.Snapshot()
	assert.Equal(t, platform.StatusValid, st.Status)
	assert.Equal(t, platform.LeetCode, st.Platform)

	s.SetInput("")
	s.Flush()
	assert.Equal(t, platform.StatusIdle, s.Snapshot().Status)

	assert.Equal(t, []bool{false, true, false}, changes)
}

func TestActRequiresValidURL(t *testing.T) {
	a := &stubAnalyzer{}
	s := newSession(a)
	defer s.Close()

	_, err := s.Act(context.Background(), prompt.Explain{})
	assert.ErrorIs(t, err, ErrNotReady)

	s.SetInput("not a url")
	s.Flush()
	_, err = s.Act(context.Background(), prompt.Explain{})
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Equal(t, 0, a.calls)
}

func TestActStoresResult(t *testing.T) {
	s := newSession(&stubAnalyzer{})
	defer s.Close()
	s.SetInput(twoSum)
	s.Flush()

	resp, err := s.Act(context.Background(), prompt.AdversarialCases{})
	require.NoError(t, err)
	require.NotNil(t, resp)

	st := s.Snapshot()
	assert.False(t, st.Loading)
	assert.Equal(t, resp, st.Result)
	assert.Empty(t, st.Error)
}

func TestActRefusesOverlap(t *testing.T) {
	a := &stubAnalyzer{started: make(chan struct{}), release: make(chan struct{})}
	s := newSession(a)
	defer s.Close()
	s.SetInput(twoSum)
	s.Flush()

	done := make(chan error, 1)
	go func() {
		_, err := s.Act(context.Background(), prompt.Explain{})
		done <- err
	}()
	<-a.started

	assert.True(t, s.Snapshot().Loading)
	_, err := s.Act(context.Background(), prompt.Solve{Language: prompt.Go})
	assert.ErrorIs(t, err, ErrBusy)

	close(a.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, a.calls)
}

func TestActDropsStaleResult(t *testing.T) {
	a := &stubAnalyzer{started: make(chan struct{}), release: make(chan struct{})}
	s := newSession(a)
	defer s.Close()
	s.SetInput(twoSum)
	s.Flush()

	type outcome struct {
		resp *apimodels.AnalysisResponse
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		resp, err := s.Act(context.Background(), prompt.Explain{})
		done <- outcome{resp, err}
	}()
	<-a.started

	s.SetInput("https://codeforces.com/problemset/problem/1896/A")
	s.Flush()
	close(a.release)

	out := <-done
	assert.NoError(t, out.err)
	assert.Nil(t, out.resp)

	st := s.Snapshot()
	assert.Nil(t, st.Result)
	assert.Equal(t, platform.Codeforces, st.Platform)
}

func TestActHidesProviderCause(t *testing.T) {
	cause := &analyzer.ProviderError{Provider: "fake"}
	s := newSession(&stubAnalyzer{err: cause})
	defer s.Close()
	s.SetInput(twoSum)
	s.Flush()

	_, err := s.Act(context.Background(), prompt.Explain{})
	assert.Error(t, err)
	assert.Equal(t, analyzer.GenericFailureMessage, s.Snapshot().Error)
}

func TestActUnknownErrorUsesGenericMessage(t *testing.T) {
	s := newSession(&stubAnalyzer{err: errors.New("socket closed")})
	defer s.Close()
	s.SetInput(twoSum)
	s.Flush()

	_, _ = s.Act(context.Background(), prompt.Explain{})
	assert.Equal(t, analyzer.GenericFailureMessage, s.Snapshot().Error)
}

func TestInvalidInputClearsResult(t *testing.T) {
	s := newSession(&stubAnalyzer{})
	defer s.Close()
	s.SetInput(twoSum)
	s.Flush()
	_, err := s.Act(context.Background(), prompt.Explain{})
	require.NoError(t, err)
	require.NotNil(t, s.Snapshot().Result)

	s.SetInput("https://example.com")
	s.Flush()
	assert.Nil(t, s.Snapshot().Result)
}

func TestCycleMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var mu sync.Mutex
	var seen []string

	done := make(chan struct{})
	go func() {
		defer close(done)
		CycleMessages(ctx, 5*time.Millisecond, func(m string) {
			mu.Lock()
			seen = append(seen, m)
			n := len(seen)
			mu.Unlock()
			if n == 3 {
				cancel()
			}
		})
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("CycleMessages did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(seen), 3)
	assert.Equal(t, LoadingMessages[:3], seen[:3])
}
