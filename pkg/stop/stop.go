// Package stop implements a pattern for shutting down a group of
// long-running processes.
package stop

import (
	"sync"
)

// Channel is used to return zero or more errors asynchronously. Call Done()
// exactly once to pass errors to the Channel.
type Channel chan []error

// Result is a receive-only version of Channel. Call Wait() once to receive
// any returned errors.
type Result <-chan []error

// Done adds zero or more errors to the Channel and closes it, indicating
// the caller has finished stopping.
func (ch Channel) Done(errs ...error) {
	if len(errs) > 0 && errs[0] != nil {
		ch <- errs
	}
	close(ch)
}

// Result converts a Channel to a Result.
func (ch Channel) Result() Result {
	return Result((chan []error)(ch))
}

// Wait blocks until Done() is called on the underlying Channel and returns
// any errors.
func (r Result) Wait() []error {
	return <-r
}

// Stopper is an interface that allows a clean shutdown.
type Stopper interface {
	// Stop returns a channel that reports whether the stop succeeded.
	//
	// Stop should return immediately and perform the actual shutdown in
	// a separate goroutine; closing the channel without an error signals
	// a clean shutdown.
	Stop() Result
}

// Func is a function that can be used to provide a clean shutdown.
type Func func() Result

// Group is a collection of Stoppers that can be stopped all at once.
type Group struct {
	stoppables []Func
	sync.Mutex
}

// NewGroup allocates a new Group.
func NewGroup() *Group {
	return &Group{}
}

// Add appends a Stopper to the Group.
func (g *Group) Add(toAdd Stopper) {
	g.Lock()
	defer g.Unlock()

	g.stoppables = append(g.stoppables, toAdd.Stop)
}

// AddFunc appends a Func to the Group.
func (g *Group) AddFunc(toAdd Func) {
	g.Lock()
	defer g.Unlock()

	g.stoppables = append(g.stoppables, toAdd)
}

// Stop stops all members of the Group concurrently and collects their
// errors into one Result.
func (g *Group) Stop() Result {
	g.Lock()
	defer g.Unlock()

	whenDone := make(Channel)

	waitChannels := make([]Result, 0, len(g.stoppables))
	for _, toStop := range g.stoppables {
		waitFor := toStop()
		if waitFor == nil {
			panic("stop: received a nil chan from Stop")
		}
		waitChannels = append(waitChannels, waitFor)
	}

	go func() {
		var errs []error
		for _, waitForMe := range waitChannels {
			errs = append(errs, waitForMe.Wait()...)
		}
		whenDone.Done(errs...)
	}()

	return whenDone.Result()
}
