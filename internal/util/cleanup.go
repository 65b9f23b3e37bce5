package util

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// ExitInterrupted is the status used when a signal stops the process.
const ExitInterrupted = 130

var (
	mu    sync.Mutex
	hooks []func()
)

// SetupCleanup sets up signal handlers for cleanup on exit. A stage blocked
// on a pipe read is interrupted this way.
func SetupCleanup(fns ...func()) {
	mu.Lock()
	hooks = append(hooks, fns...)
	mu.Unlock()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		Cleanup()
		os.Exit(ExitInterrupted)
	}()
}

// Cleanup runs the registered hooks once, most recent first
func Cleanup() {
	mu.Lock()
	pending := hooks
	hooks = nil
	mu.Unlock()

	for i := len(pending) - 1; i >= 0; i-- {
		pending[i]()
	}
}
