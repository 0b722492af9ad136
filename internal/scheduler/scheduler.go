package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

type Task func(ctx context.Context)

// NextFire returns the earliest upcoming occurrence of any of the given
// wall-clock times ("HH:MM"), strictly after now.
func NextFire(now time.Time, times []string) (time.Time, error) {
	if len(times) == 0 {
		return time.Time{}, errors.New("no schedule times configured")
	}
	var next time.Time
	for _, s := range times {
		at, err := time.Parse("15:04", s)
		if err != nil {
			return time.Time{}, fmt.Errorf("bad schedule time %q: %w", s, err)
		}
		candidate := time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, now.Location())
		if !candidate.After(now) {
			candidate = candidate.AddDate(0, 0, 1)
		}
		if next.IsZero() || candidate.Before(next) {
			next = candidate
		}
	}
	return next, nil
}

// Daily runs task at each configured wall-clock time, every day, until
// ctx is cancelled. Runs happen one at a time; a task that overruns its
// slot simply delays the next timer computation.
func Daily(ctx context.Context, times []string, name string, task Task) error {
	for {
		next, err := NextFire(time.Now(), times)
		if err != nil {
			return err
		}
		log.Printf("[%s] next run at %s", name, next.Format("2006-01-02 15:04"))

		t := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
			task(ctx)
		}
	}
}
