package mailer

import (
	"context"
	"log"
	"sync"
	"time"
)

const sendTimeout = 30 * time.Second

// Queue decouples email delivery from the request path. Enqueue hands the
// message to a background worker and returns immediately; delivery failures
// are logged and never propagate to the request that triggered them.
type Queue struct {
	sender Sender
	jobs   chan Message
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewQueue starts a queue with a single delivery worker and the given buffer.
func NewQueue(sender Sender, buffer int) *Queue {
	q := &Queue{
		sender: sender,
		jobs:   make(chan Message, buffer),
	}
	q.wg.Add(1)
	go q.worker()
	return q
}

// Enqueue schedules a message for delivery without blocking. When the buffer
// is full, or the queue has already been closed, the message is dropped with
// a log line; delivery is best-effort.
func (q *Queue) Enqueue(msg Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		log.Printf("mail queue closed, dropping message to %s", msg.To)
		return
	}
	select {
	case q.jobs <- msg:
	default:
		log.Printf("mail queue full, dropping message to %s", msg.To)
	}
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for msg := range q.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := q.sender.Send(ctx, msg); err != nil {
			log.Printf("mail delivery failed: %v", err)
		}
		cancel()
	}
}

// Close stops accepting messages and waits for the worker to drain the buffer.
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()
	q.wg.Wait()
}
