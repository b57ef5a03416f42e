package lifecycle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/survey/pkg/lifecycle"
)

type flag struct{ ready atomic.Bool }

func (f *flag) Ready() bool { return f.ready.Load() }

func TestCoordinatorReady(t *testing.T) {
	lc := lifecycle.New()

	var ran atomic.Bool
	lc.OnStartup(func() { ran.Store(true) })

	if lc.Ready() {
		t.Error("ready before startup completed")
	}

	lc.WaitForStartup()
	if !ran.Load() {
		t.Error("startup hook did not run")
	}
	if !lc.Ready() {
		t.Error("not ready after startup")
	}

	checker := &flag{}
	lc.Track(checker)
	if lc.Ready() {
		t.Error("ready while a tracked checker is not")
	}

	checker.ready.Store(true)
	if !lc.Ready() {
		t.Error("not ready after checker became ready")
	}
}

func TestCoordinatorShutdown(t *testing.T) {
	t.Run("runs hooks after cancel", func(t *testing.T) {
		lc := lifecycle.New()

		var closed atomic.Bool
		lc.OnShutdown(func() {
			<-lc.Context().Done()
			closed.Store(true)
		})

		if err := lc.Shutdown(time.Second); err != nil {
			t.Fatalf("Shutdown error: %v", err)
		}
		if !closed.Load() {
			t.Error("shutdown hook did not run")
		}
	})

	t.Run("times out", func(t *testing.T) {
		lc := lifecycle.New()
		release := make(chan struct{})
		t.Cleanup(func() { close(release) })

		lc.OnShutdown(func() { <-release })

		if err := lc.Shutdown(10 * time.Millisecond); err == nil {
			t.Error("expected timeout error")
		}
	})
}
