// /home/krylon/go/src/github.com/blicero/lethe/scheduler/scheduler.go
// -*- mode: go; coding: utf-8; -*-
// Created on 11. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-22 17:33:19 krylon>

// Package scheduler owns the set of pending reminder Requests.
// Activating a Mode cancels whatever was pending before, then
// pre-schedules a full Batch of Requests so reminders keep firing
// even while the process is suspended.
package scheduler

import (
	"log"
	"sync"

	"github.com/blicero/lethe/common"
	"github.com/blicero/lethe/database"
	"github.com/blicero/lethe/logdomain"
	"github.com/blicero/lethe/objects"
	"github.com/blicero/lethe/objects/mode"
	"github.com/blicero/lethe/queue"
)

// LowWaterMark is the pending count below which SelfHeal tops the
// active Batch up again. Long sessions burn through their Batch
// before the user toggles again, the queue's capacity makes that
// unavoidable.
const LowWaterMark = 5

// KeyActiveMode and KeyActiveBatch are the state store keys the
// Scheduler persists its bookkeeping under.
const (
	KeyActiveMode  = "scheduler.mode"
	KeyActiveBatch = "scheduler.batch"
)

// Scheduler computes and submits reminder Batches and guarantees that
// at most one Batch is active at any time.
type Scheduler struct {
	log   *log.Logger
	q     queue.Queue
	pool  *database.Pool
	lock  sync.Mutex
	batch *objects.Batch
}

// New creates a Scheduler that submits to the given Queue and keeps
// its bookkeeping in the given database Pool.
func New(q queue.Queue, pool *database.Pool) (*Scheduler, error) {
	var (
		err error
		s   = &Scheduler{
			q:    q,
			pool: pool,
		}
	)

	if s.log, err = common.GetLogger(logdomain.Scheduler); err != nil {
		return nil, err
	}

	return s, nil
} // func New(q queue.Queue, pool *database.Pool) (*Scheduler, error)

// Activate makes the given Mode the active one: everything previously
// pending or delivered is cancelled, the badge is reset, and a fresh
// Batch is synthesized and submitted. Individual submission failures
// are logged and skipped, they never abort the rest of the Batch.
func (s *Scheduler) Activate(m mode.Mode, p objects.Profile) (*objects.Batch, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.activate(m, p)
} // func (s *Scheduler) Activate(m mode.Mode, p objects.Profile) (*objects.Batch, error)

// Caller must hold s.lock.
func (s *Scheduler) activate(m mode.Mode, p objects.Profile) (*objects.Batch, error) {
	var err error

	// The old Batch has to be fully gone before anything new is
	// submitted, no interleaving.
	if err = s.q.CancelAllPending(); err != nil {
		s.log.Printf("[ERROR] Cannot cancel pending requests: %s\n",
			err.Error())
		return nil, err
	}

	if err = s.q.CancelDelivered(); err != nil {
		s.log.Printf("[ERROR] Cannot clear delivered notifications: %s\n",
			err.Error())
	}

	if err = s.q.SetBadge(0); err != nil {
		s.log.Printf("[ERROR] Cannot reset badge: %s\n",
			err.Error())
	}

	if p.BatchSize > objects.MaxPending {
		s.log.Printf("[WARN] Batch size %d exceeds queue capacity %d, clamping\n",
			p.BatchSize,
			objects.MaxPending)
	}

	var b = objects.NewBatch(m, p)

	for idx := range b.Requests {
		if err = s.q.Submit(&b.Requests[idx]); err != nil {
			s.log.Printf("[ERROR] Failed to submit Request %s (#%d): %s\n",
				b.Requests[idx].Identifier,
				b.Requests[idx].Sequence,
				err.Error())
			b.Failed++
			continue
		}

		b.Submitted++
	}

	s.batch = b
	s.persist(b)

	s.log.Printf("[INFO] Activated Mode %s: %d Requests submitted, %d failed\n",
		m,
		b.Submitted,
		b.Failed)

	return b, nil
} // func (s *Scheduler) activate(m mode.Mode, p objects.Profile) (*objects.Batch, error)

// Deactivate cancels everything, pending and delivered, and resets
// the badge. It is idempotent, calling it without an active Batch
// still performs the clearing calls.
func (s *Scheduler) Deactivate() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	var err error

	if err = s.q.CancelAllPending(); err != nil {
		s.log.Printf("[ERROR] Cannot cancel pending requests: %s\n",
			err.Error())
		return err
	}

	if err = s.q.CancelDelivered(); err != nil {
		s.log.Printf("[ERROR] Cannot clear delivered notifications: %s\n",
			err.Error())
	}

	if err = s.q.SetBadge(0); err != nil {
		s.log.Printf("[ERROR] Cannot reset badge: %s\n",
			err.Error())
	}

	s.batch = nil

	var db = s.pool.Get()
	defer s.pool.Put(db)

	if err = db.StateDelete(KeyActiveMode); err != nil {
		s.log.Printf("[ERROR] Cannot clear persisted mode: %s\n",
			err.Error())
	} else if err = db.StateDelete(KeyActiveBatch); err != nil {
		s.log.Printf("[ERROR] Cannot clear persisted batch: %s\n",
			err.Error())
	}

	return nil
} // func (s *Scheduler) Deactivate() error

// CheckPending queries the queue and partitions the pending count by
// Mode tag.
func (s *Scheduler) CheckPending() (int, map[mode.Mode]int, error) {
	var (
		err  error
		list []objects.Request
	)

	if list, err = s.q.ListPending(); err != nil {
		s.log.Printf("[ERROR] Cannot list pending requests: %s\n",
			err.Error())
		return 0, nil, err
	}

	var byMode = make(map[mode.Mode]int, len(mode.All()))

	for idx := range list {
		byMode[list[idx].Mode]++
	}

	return len(list), byMode, nil
} // func (s *Scheduler) CheckPending() (int, map[mode.Mode]int, error)

// ActiveMode returns the Mode of the active Batch, if there is one.
func (s *Scheduler) ActiveMode() (mode.Mode, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.batch == nil {
		return mode.Caring, false
	}

	return s.batch.Mode, true
} // func (s *Scheduler) ActiveMode() (mode.Mode, bool)

// SelfHeal re-activates the current Mode if the pending count for it
// has dropped below the low-water mark. It returns true if a top-up
// happened.
func (s *Scheduler) SelfHeal() (bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.batch == nil {
		return false, nil
	}

	var (
		err  error
		list []objects.Request
		cnt  int
	)

	if list, err = s.q.ListPending(); err != nil {
		s.log.Printf("[ERROR] Cannot list pending requests: %s\n",
			err.Error())
		return false, err
	}

	for idx := range list {
		if list[idx].Mode == s.batch.Mode {
			cnt++
		}
	}

	if cnt >= LowWaterMark {
		return false, nil
	}

	s.log.Printf("[INFO] Only %d Requests left for Mode %s, topping up\n",
		cnt,
		s.batch.Mode)

	if _, err = s.activate(s.batch.Mode, s.batch.Profile); err != nil {
		return false, err
	}

	return true, nil
} // func (s *Scheduler) SelfHeal() (bool, error)

func (s *Scheduler) persist(b *objects.Batch) {
	var (
		err error
		db  = s.pool.Get()
	)
	defer s.pool.Put(db)

	if err = db.StateSet(KeyActiveMode, b.Mode.String()); err != nil {
		s.log.Printf("[ERROR] Cannot persist active mode: %s\n",
			err.Error())
	} else if err = db.StateSet(KeyActiveBatch, b.UUID); err != nil {
		s.log.Printf("[ERROR] Cannot persist active batch: %s\n",
			err.Error())
	}
} // func (s *Scheduler) persist(b *objects.Batch)
