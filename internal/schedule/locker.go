package schedule

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// LocalLocker coalesces concurrent callers for the same date inside one
// process: while fn runs for a date, later callers wait for it and share
// its result instead of running their own.
type LocalLocker struct {
	group singleflight.Group
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{}
}

func (l *LocalLocker) WithDateLock(ctx context.Context, date string, fn func(ctx context.Context) error) error {
	ch := l.group.DoChan(date, func() (any, error) {
		return nil, fn(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}
