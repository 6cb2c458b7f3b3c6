// Package lifecycle coordinates startup and shutdown hooks across subsystems.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ReadinessChecker reports whether a subsystem is ready to serve traffic.
type ReadinessChecker interface {
	Ready() bool
}

// Coordinator manages startup and shutdown hooks for the application lifecycle.
type Coordinator struct {
	ctx          context.Context
	cancel       context.CancelFunc
	startupWg    sync.WaitGroup
	shutdownWg   sync.WaitGroup
	ready        bool
	readyMu      sync.RWMutex
	shutdownOnce sync.Once
	shutdownErr  error
}

// New creates a Coordinator with a cancellable context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Context returns the coordinator's context, cancelled on shutdown.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup registers a function to run concurrently during startup.
func (c *Coordinator) OnStartup(fn func()) {
	c.startupWg.Go(fn)
}

// OnShutdown registers a function to run concurrently during shutdown.
// Shutdown hooks should block on <-c.Context().Done() before executing cleanup.
func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdownWg.Go(fn)
}

// Ready returns true after all startup hooks have completed and before shutdown begins.
func (c *Coordinator) Ready() bool {
	c.readyMu.RLock()
	defer c.readyMu.RUnlock()
	return c.ready
}

// WaitForStartup blocks until all startup hooks have completed and sets the ready flag.
func (c *Coordinator) WaitForStartup() {
	c.startupWg.Wait()
	c.setReady(c.ctx.Err() == nil)
}

// Shutdown cancels the context and waits for shutdown hooks to complete
// within the given timeout. Subsequent calls return the first result.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.shutdownOnce.Do(func() {
		c.setReady(false)
		c.cancel()

		done := make(chan struct{})
		go func() {
			c.shutdownWg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(timeout):
			c.shutdownErr = fmt.Errorf("shutdown timeout after %v", timeout)
		}
	})
	return c.shutdownErr
}

func (c *Coordinator) setReady(ready bool) {
	c.readyMu.Lock()
	c.ready = ready
	c.readyMu.Unlock()
}
