package session

import (
	"context"
	"time"
)

// LoadingInterval is how long each loading message stays up.
const LoadingInterval = 2500 * time.Millisecond

// LoadingMessages cycle while an analysis is running. They carry no
// information about the request.
var LoadingMessages = []string{
	"Infiltrating Problem Domain...",
	"Analyzing Time Constraints...",
	"Synthesizing Logic Gates...",
	"Optimizing Memory Map...",
	"Detecting Edge Case Volatility...",
	"Calibrating Algorithmic Pathways...",
	"Finalizing Solution Matrix...",
	"Rendering Insights...",
}

// CycleMessages calls fn with the first loading message immediately and with
// the next one every interval until ctx is done.
func CycleMessages(ctx context.Context, interval time.Duration, fn func(string)) {
	if interval <= 0 {
		interval = LoadingInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	i := 0
	fn(LoadingMessages[i])
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			i = (i + 1) % len(LoadingMessages)
			fn(LoadingMessages[i])
		}
	}
}
