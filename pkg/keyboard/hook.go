package keyboard

import (
	"sync"

	log "github.com/echocat/slf4g"
)

// Handler receives every intercepted key-down, one at a time.
type Handler func(Key)

// QueueSize bounds how many intercepted keys can wait for the Handler.
const QueueSize = 32

// dispatcher decouples the platform callback, which must return quickly,
// from the Handler. Keys are delivered serially in order of arrival.
type dispatcher struct {
	handler Handler
	queue   chan Key
	done    sync.WaitGroup

	closed bool
	mutex  sync.Mutex
}

func newDispatcher(handler Handler) *dispatcher {
	result := &dispatcher{
		handler: handler,
		queue:   make(chan Key, QueueSize),
	}
	result.done.Add(1)
	go result.run()
	return result
}

func (this *dispatcher) run() {
	defer this.done.Done()
	for key := range this.queue {
		this.deliver(key)
	}
}

func (this *dispatcher) deliver(key Key) {
	defer func() {
		if r := recover(); r != nil {
			log.With("key", key).
				With("panic", r).
				Error("Handler of key panicked.")
		}
	}()
	this.handler(key)
}

// offer never blocks. It reports false if the queue is full or already
// closed and key was dropped.
func (this *dispatcher) offer(key Key) bool {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.closed {
		return false
	}
	select {
	case this.queue <- key:
		return true
	default:
		log.With("key", key).
			Warn("Handler is too slow; key dropped.")
		return false
	}
}

// close waits until every queued key was delivered. Keys offered afterward
// are dropped.
func (this *dispatcher) close() {
	this.mutex.Lock()
	if !this.closed {
		this.closed = true
		close(this.queue)
	}
	this.mutex.Unlock()

	this.done.Wait()
}
