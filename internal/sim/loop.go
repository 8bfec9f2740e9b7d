package sim

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/magnify-ai/fluidmesh/internal/logging"
	"github.com/magnify-ai/fluidmesh/internal/mesh"
)

const DefaultFPS = 60

var ErrLoopRunning = errors.New("sim: loop already running")

// Loop paces a Simulator in real time. One goroutine owns the ticker and
// calls onFrame inline, so frames never overlap. Stop cancels the pending
// tick and returns only after the goroutine has exited.
type Loop struct {
	sim     *Simulator
	fps     int
	onFrame func(*mesh.DrawList)

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	mounted bool
}

func NewLoop(s *Simulator, fps int, onFrame func(*mesh.DrawList)) *Loop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Loop{sim: s, fps: fps, onFrame: onFrame}
}

// Start mounts and begins ticking. A loop that was stopped re-mounts a fresh
// animator, so no animation phase survives across mounts.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		if !closed(l.done) {
			return ErrLoopRunning
		}
		// The parent context ended the previous run.
		l.cancel()
	}
	if l.mounted {
		l.sim.Remount()
	}
	l.mounted = true

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})

	logging.Logger.Debug("frame loop started", "fps", l.fps)
	go l.run(ctx, l.done)
	return nil
}

// Stop unmounts. It is safe to call on a loop that is not running.
func (l *Loop) Stop() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.cancel, l.done = nil, nil
	l.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	logging.Logger.Debug("frame loop stopped", "frame", l.sim.Animator().Frame())
}

// Running reports whether the goroutine is still ticking. A run ended by its
// parent context counts as stopped.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cancel != nil && !closed(l.done)
}

func closed(ch chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

// Done is closed when the current run exits, including when its parent
// context is cancelled. It is nil if the loop was never started.
func (l *Loop) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

func (l *Loop) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(time.Second / time.Duration(l.fps))
	defer ticker.Stop()

	buf := l.sim.pool.Get()
	defer func() { l.sim.pool.Put(buf) }()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			list := l.sim.Advance(buf)
			buf = list.Triangles
			if l.onFrame != nil {
				l.onFrame(&list)
			}
		}
	}
}
