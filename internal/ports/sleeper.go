package ports

import (
	"context"
	"math/rand"
	"time"
)

// Sleeper suspends the calling flow for a uniformly random duration in
// [min, max). The courtesy delays are the only suspension points in a run.
type Sleeper interface {
	Sleep(ctx context.Context, min, max time.Duration)
}

type RandomSleeper struct{}

func (RandomSleeper) Sleep(ctx context.Context, min, max time.Duration) {
	d := min
	if max > min {
		d += time.Duration(rand.Int63n(int64(max - min)))
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
