package wait

import (
	"sync"
	"time"
)

// Wait is a sync.WaitGroup that can give up waiting.
type Wait struct {
	waitGroup sync.WaitGroup
}

func (w *Wait) Add(d int) {
	w.waitGroup.Add(d)
}

func (w *Wait) Done() {
	w.waitGroup.Done()
}

func (w *Wait) Wait() {
	w.waitGroup.Wait()
}

// WaitTimeOut blocks until the counter reaches zero or timeout elapses.
// It returns true on timeout. A non-positive timeout waits forever.
func (w *Wait) WaitTimeOut(timeout time.Duration) bool {
	if timeout <= 0 {
		w.Wait()
		return false
	}
	c := make(chan struct{})
	go func() {
		defer close(c)
		w.Wait()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-c:
		return false
	case <-timer.C:
		return true
	}
}
