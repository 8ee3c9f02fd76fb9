// /home/krylon/go/src/github.com/blicero/lethe/queue/memory.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-20 18:44:36 krylon>

package queue

import (
	"log"
	"sync"
	"time"

	"github.com/blicero/lethe/common"
	"github.com/blicero/lethe/logdomain"
	"github.com/blicero/lethe/objects"
)

// MemoryQueue implements Queue without talking to the outside world.
// Delivery does not happen on its own, tests drive it by hand via
// Deliver and PushAction.
type MemoryQueue struct {
	log       *log.Logger
	lock      sync.Mutex
	pending   []objects.Request
	delivered []objects.Request
	badge     int
	status    AuthStatus
	denied    bool
	actions   chan Action
}

// NewMemoryQueue creates a fresh MemoryQueue.
func NewMemoryQueue() (*MemoryQueue, error) {
	var (
		err error
		q   = &MemoryQueue{
			pending: make([]objects.Request, 0, objects.MaxPending),
			actions: make(chan Action, 8),
		}
	)

	if q.log, err = common.GetLogger(logdomain.Queue); err != nil {
		return nil, err
	}

	return q, nil
} // func NewMemoryQueue() (*MemoryQueue, error)

// Submit adds a Request to the pending set.
// If authorization was denied, or the queue is full, the Request is
// quietly discarded.
func (q *MemoryQueue) Submit(req *objects.Request) error {
	q.lock.Lock()
	defer q.lock.Unlock()

	if q.status == AuthDenied {
		q.log.Printf("[DEBUG] Authorization denied, discarding Request %s\n",
			req.Identifier)
		return nil
	} else if len(q.pending) >= objects.MaxPending {
		q.log.Printf("[DEBUG] Queue is full, discarding Request %s\n",
			req.Identifier)
		return nil
	}

	q.pending = append(q.pending, *req)
	return nil
} // func (q *MemoryQueue) Submit(req *objects.Request) error

// CancelPending removes the Requests with the given identifiers from
// the pending set.
func (q *MemoryQueue) CancelPending(ids []string) error {
	q.lock.Lock()
	defer q.lock.Unlock()

	var doomed = make(map[string]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}

	var keep = q.pending[:0]

	for _, req := range q.pending {
		if !doomed[req.Identifier] {
			keep = append(keep, req)
		}
	}

	q.pending = keep
	return nil
} // func (q *MemoryQueue) CancelPending(ids []string) error

// CancelAllPending empties the pending set.
func (q *MemoryQueue) CancelAllPending() error {
	q.lock.Lock()
	q.pending = q.pending[:0]
	q.lock.Unlock()
	return nil
} // func (q *MemoryQueue) CancelAllPending() error

// CancelDelivered removes all delivered notifications.
func (q *MemoryQueue) CancelDelivered() error {
	q.lock.Lock()
	q.delivered = q.delivered[:0]
	q.lock.Unlock()
	return nil
} // func (q *MemoryQueue) CancelDelivered() error

// ListPending returns a copy of the pending set, in submission order.
func (q *MemoryQueue) ListPending() ([]objects.Request, error) {
	q.lock.Lock()
	defer q.lock.Unlock()

	var list = make([]objects.Request, len(q.pending))
	copy(list, q.pending)

	return list, nil
} // func (q *MemoryQueue) ListPending() ([]objects.Request, error)

// PendingCount returns the number of pending Requests.
func (q *MemoryQueue) PendingCount() (int, error) {
	q.lock.Lock()
	defer q.lock.Unlock()
	return len(q.pending), nil
} // func (q *MemoryQueue) PendingCount() (int, error)

// SetBadge sets the unread counter.
func (q *MemoryQueue) SetBadge(n int) error {
	q.lock.Lock()
	q.badge = n
	q.lock.Unlock()
	return nil
} // func (q *MemoryQueue) SetBadge(n int) error

// BadgeCount returns the unread counter.
func (q *MemoryQueue) BadgeCount() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return q.badge
} // func (q *MemoryQueue) BadgeCount() int

// Authorize asks for permission to post notifications.
// The MemoryQueue grants it unless SetDenied was called.
func (q *MemoryQueue) Authorize() (bool, error) {
	q.lock.Lock()
	defer q.lock.Unlock()

	if q.denied {
		q.status = AuthDenied
		return false, nil
	}

	q.status = AuthAuthorized
	return true, nil
} // func (q *MemoryQueue) Authorize() (bool, error)

// AuthStatus returns the current authorization status.
func (q *MemoryQueue) AuthStatus() AuthStatus {
	q.lock.Lock()
	defer q.lock.Unlock()
	return q.status
} // func (q *MemoryQueue) AuthStatus() AuthStatus

// SetDenied makes subsequent Authorize calls fail. Test hook.
func (q *MemoryQueue) SetDenied(denied bool) {
	q.lock.Lock()
	q.denied = denied
	if denied {
		q.status = AuthDenied
	}
	q.lock.Unlock()
} // func (q *MemoryQueue) SetDenied(denied bool)

// Actions returns the channel notification actions arrive on.
func (q *MemoryQueue) Actions() <-chan Action {
	return q.actions
} // func (q *MemoryQueue) Actions() <-chan Action

// Deliver moves the pending Request with the given identifier to the
// delivered set and bumps the badge. Test hook, the real queue does
// this on its own when a Request is due.
func (q *MemoryQueue) Deliver(id string) bool {
	q.lock.Lock()
	defer q.lock.Unlock()

	for idx, req := range q.pending {
		if req.Identifier == id {
			q.delivered = append(q.delivered, req)
			q.pending = append(q.pending[:idx], q.pending[idx+1:]...)
			q.badge++
			return true
		}
	}

	return false
} // func (q *MemoryQueue) Deliver(id string) bool

// DeliveredCount returns the number of delivered notifications.
func (q *MemoryQueue) DeliveredCount() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return len(q.delivered)
} // func (q *MemoryQueue) DeliveredCount() int

// PushAction injects an Action as if the user had clicked a
// notification button. Test hook.
func (q *MemoryQueue) PushAction(id, key string) {
	q.actions <- Action{
		Identifier: id,
		ActionKey:  key,
		Timestamp:  time.Now(),
	}
} // func (q *MemoryQueue) PushAction(id, key string)

// Close shuts the queue down.
func (q *MemoryQueue) Close() error {
	close(q.actions)
	return nil
} // func (q *MemoryQueue) Close() error
