// /home/krylon/go/src/github.com/blicero/lethe/timer/timer.go
// -*- mode: go; coding: utf-8; -*-
// Created on 14. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-22 18:10:52 krylon>

// Package timer keeps account of how long the active Mode has been
// running, or how much time it has left. It works from a wall clock
// start stamp, not from counting ticks, so elapsed time survives a
// suspend/resume cycle of arbitrary length.
package timer

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/blicero/lethe/common"
	"github.com/blicero/lethe/database"
	"github.com/blicero/lethe/logdomain"
	"github.com/blicero/lethe/objects"
	"github.com/blicero/lethe/objects/mode"
)

// State store keys for the persisted timer fields.
const (
	KeyMode     = "timer.mode"
	KeyStart    = "timer.start"
	KeyDuration = "timer.duration"
)

// Timer is the time accounting for the active Mode.
// Every Mode transition discards the previous Mode's value, caring
// time always resets to zero on a toggle. That is intentional.
type Timer struct {
	log     *log.Logger
	pool    *database.Pool
	lock    sync.Mutex
	running bool
	state   objects.TimerState
	display time.Duration
}

// New creates a Timer that persists its state in the given Pool.
func New(pool *database.Pool) (*Timer, error) {
	var (
		err error
		t   = &Timer{
			pool: pool,
		}
	)

	if t.log, err = common.GetLogger(logdomain.Timer); err != nil {
		return nil, err
	}

	return t, nil
} // func New(pool *database.Pool) (*Timer, error)

// SetMode starts accounting for the given Mode from now.
// Whatever the previous Mode had accumulated is thrown away.
func (t *Timer) SetMode(m mode.Mode, p objects.Profile, now time.Time) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.state = objects.TimerState{
		Mode:     m,
		Start:    now,
		Duration: p.Duration,
	}
	t.running = true
	t.display = t.state.Display(now)

	if err := t.persist(); err != nil {
		t.log.Printf("[ERROR] Cannot persist timer state: %s\n",
			err.Error())
	}
} // func (t *Timer) SetMode(m mode.Mode, p objects.Profile, now time.Time)

// Tick recomputes the displayed value from the wall clock.
// It is meant to be called about once per second while the process is
// in the foreground.
func (t *Timer) Tick(now time.Time) time.Duration {
	t.lock.Lock()
	defer t.lock.Unlock()

	if !t.running {
		return 0
	}

	t.display = t.state.Display(now)
	return t.display
} // func (t *Timer) Tick(now time.Time) time.Duration

// Value returns the most recently computed display value.
func (t *Timer) Value() time.Duration {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.display
} // func (t *Timer) Value() time.Duration

// Mode returns the Mode the Timer is accounting for, if any.
func (t *Timer) Mode() (mode.Mode, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.state.Mode, t.running
} // func (t *Timer) Mode() (mode.Mode, bool)

// IsExpired returns true once a countdown Mode has run out of time.
// It never auto-transitions, reacting to expiry is the orchestrator's
// business.
func (t *Timer) IsExpired() bool {
	t.lock.Lock()
	defer t.lock.Unlock()

	if !t.running {
		return false
	}

	return t.state.Expired(time.Now())
} // func (t *Timer) IsExpired() bool

// OnSuspend persists the start stamp, Mode and duration so the
// account can be reconstructed after the process was suspended or
// killed.
func (t *Timer) OnSuspend(now time.Time) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if !t.running {
		return nil
	}

	t.log.Printf("[DEBUG] Suspending at %s, %s since %s\n",
		now.Format(common.TimestampFormat),
		t.state.Mode,
		t.state.Start.Format(common.TimestampFormat))

	return t.persist()
} // func (t *Timer) OnSuspend(now time.Time) error

// OnResume restores the timer after a suspend/resume cycle and
// recomputes the display value immediately so it is correct without
// waiting for the next Tick.
//
// On a cold start (no Mode in memory) the persisted state is trusted
// wholly; on a warm resume the in-memory Mode is kept and only the
// start stamp is reloaded.
func (t *Timer) OnResume(now time.Time) (time.Duration, error) {
	t.lock.Lock()
	defer t.lock.Unlock()

	var (
		err error
		db  = t.pool.Get()
	)
	defer t.pool.Put(db)

	if !t.running {
		// Cold start
		var (
			mstr, sstr, dstr string
			ok               bool
			m                mode.Mode
			stamp            int64
		)

		if mstr, ok, err = db.StateGet(KeyMode); err != nil {
			t.log.Printf("[ERROR] Cannot load persisted mode: %s\n",
				err.Error())
			return 0, err
		} else if !ok {
			return 0, fmt.Errorf("No timer state was persisted")
		} else if m, err = mode.Parse(mstr); err != nil {
			t.log.Printf("[ERROR] Persisted mode %q is invalid: %s\n",
				mstr,
				err.Error())
			return 0, err
		} else if sstr, _, err = db.StateGet(KeyStart); err != nil {
			return 0, err
		} else if stamp, err = strconv.ParseInt(sstr, 10, 64); err != nil {
			t.log.Printf("[ERROR] Persisted start stamp %q is invalid: %s\n",
				sstr,
				err.Error())
			return 0, err
		}

		var dur int64
		if dstr, ok, err = db.StateGet(KeyDuration); err != nil {
			return 0, err
		} else if ok {
			if dur, err = strconv.ParseInt(dstr, 10, 64); err != nil {
				t.log.Printf("[ERROR] Persisted duration %q is invalid: %s\n",
					dstr,
					err.Error())
				return 0, err
			}
		}

		t.state = objects.TimerState{
			Mode:     m,
			Start:    time.Unix(stamp, 0),
			Duration: time.Second * time.Duration(dur),
		}
		t.running = true
	} else {
		// Warm resume: keep the in-memory Mode, reload the
		// start stamp.
		var (
			sstr  string
			ok    bool
			stamp int64
		)

		if sstr, ok, err = db.StateGet(KeyStart); err != nil {
			t.log.Printf("[ERROR] Cannot load persisted start stamp: %s\n",
				err.Error())
			return 0, err
		} else if ok {
			if stamp, err = strconv.ParseInt(sstr, 10, 64); err == nil {
				t.state.Start = time.Unix(stamp, 0)
			}
		}
	}

	t.display = t.state.Display(now)

	t.log.Printf("[DEBUG] Resumed at %s: %s, display value %s\n",
		now.Format(common.TimestampFormat),
		t.state.Mode,
		t.display)

	return t.display, nil
} // func (t *Timer) OnResume(now time.Time) (time.Duration, error)

// Caller must hold t.lock.
func (t *Timer) persist() error {
	var (
		err error
		db  = t.pool.Get()
	)
	defer t.pool.Put(db)

	if err = db.StateSet(KeyMode, t.state.Mode.String()); err != nil {
		return err
	} else if err = db.StateSet(KeyStart, strconv.FormatInt(t.state.Start.Unix(), 10)); err != nil {
		return err
	} else if err = db.StateSet(KeyDuration, strconv.FormatInt(int64(t.state.Duration/time.Second), 10)); err != nil {
		return err
	}

	return nil
} // func (t *Timer) persist() error
