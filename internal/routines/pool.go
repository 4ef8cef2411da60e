// Package routines runs queued functions on a fixed number of worker
// goroutines.
package routines

import (
	"sync"
)

// WorkFn is a unit of work executed by a pool worker.
type WorkFn func()

// Pool executes queued functions on a fixed number of goroutines.
type Pool struct {
	mu      sync.Mutex // protects queue and closing
	queue   []WorkFn
	closing bool

	workChan chan WorkFn
	wakeChan chan struct{}

	done sync.WaitGroup
}

// NewPool starts a pool with the given number of worker goroutines.
func NewPool(routines uint) *Pool {
	p := Pool{
		workChan: make(chan WorkFn, routines),
		wakeChan: make(chan struct{}, 1),
	}

	p.done.Add(1)
	go p.dispatch()

	for i := uint(0); i < routines; i++ {
		p.done.Add(1)
		go p.worker()
	}

	return &p
}

func (p *Pool) dispatch() {
	defer p.done.Done()

	for {
		<-p.wakeChan

		work := p.pop()
		if work == nil {
			p.mu.Lock()
			closing := p.closing
			p.mu.Unlock()

			if closing {
				close(p.workChan)

				return
			}

			continue
		}

		p.workChan <- work
	}
}

func (p *Pool) pop() WorkFn {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.queue) == 0 {
		return nil
	}

	work := p.queue[len(p.queue)-1]
	p.queue = p.queue[:len(p.queue)-1]

	return work
}

func (p *Pool) worker() {
	defer p.done.Done()

	for {
		work, open := <-p.workChan
		if !open {
			return
		}

		p.wake()

		work()
	}
}

// wake signals the dispatcher without blocking, one pending signal is
// sufficient.
func (p *Pool) wake() {
	select {
	case p.wakeChan <- struct{}{}:

	default:
	}
}

// Queue adds work to the pool without blocking.
// It panics when it is called after Wait().
func (p *Pool) Queue(work WorkFn) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closing {
		panic("work was queued on a closed pool")
	}

	p.queue = append(p.queue, work)
	p.wake()
}

// Wait blocks until all queued work finished and stops the workers.
// Queueing further work afterwards is not allowed.
func (p *Pool) Wait() {
	p.mu.Lock()
	p.closing = true
	p.mu.Unlock()

	p.wake()

	p.done.Wait()
	close(p.wakeChan)
}
