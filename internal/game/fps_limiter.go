package game

import (
	"time"

	"github.com/profan/dear-xenko/internal/config"
)

// FPSLimiter provides high-precision frame rate limiting
type FPSLimiter struct {
	next time.Time
}

func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{}
}

// Wait blocks until the next frame is due under config.GetFPSLimit. Idle
// frames, with nothing left to mesh, are capped at idleLimit when that is
// lower. A limit of zero disables waiting.
func (f *FPSLimiter) Wait(idle bool) {
	limit := config.GetFPSLimit()
	if idle && (limit <= 0 || limit > idleLimit) {
		limit = idleLimit
	}
	if limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(limit)
	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			time.Sleep(remaining - spinWindow)
		}
		// busy-wait for the final stretch
		if time.Until(f.next) <= 0 {
			break
		}
	}

	// resync after a hitch instead of racing to catch up
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}

const (
	idleLimit  = 120
	spinWindow = 200 * time.Microsecond
)
