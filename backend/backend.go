// /home/krylon/go/src/github.com/blicero/lethe/backend/backend.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-23 17:21:36 krylon>

// Package backend implements the Daemon that ties the pieces
// together: it owns the active Mode, routes toggle requests from the
// frontend through the Scheduler and the Timer, reacts to
// notification actions, and serves the HTTP API the frontend talks
// to.
package backend

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/blicero/lethe/common"
	"github.com/blicero/lethe/database"
	"github.com/blicero/lethe/logdomain"
	"github.com/blicero/lethe/objects"
	"github.com/blicero/lethe/objects/mode"
	"github.com/blicero/lethe/queue"
	"github.com/blicero/lethe/scheduler"
	"github.com/blicero/lethe/timer"
	"github.com/gorilla/mux"
)

const (
	tickInterval = time.Second
	healInterval = time.Second * 30
)

// Daemon is the centerpiece of the backend, coordinating between the
// Scheduler, the Timer, the notification queue and the frontend.
type Daemon struct {
	log        *log.Logger
	pool       *database.Pool
	q          queue.Queue
	sched      *scheduler.Scheduler
	clock      *timer.Timer
	profiles   map[mode.Mode]objects.Profile
	lock       sync.RWMutex
	active     bool
	suspended  bool
	web        http.Server
	router     *mux.Router
	listenAddr string
	idLock     sync.Mutex
	idCnt      int64
}

// Summon summons a Daemon and returns it. No sacrifice or idolatry is
// required.
func Summon(addr string, q queue.Queue) (*Daemon, error) {
	var (
		err error
		d   = &Daemon{
			listenAddr: addr,
			active:     true,
			q:          q,
			profiles:   objects.DefaultProfiles(),
			router:     mux.NewRouter(),
		}
	)

	if d.log, err = common.GetLogger(logdomain.Backend); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	} else if d.pool, err = database.NewPool(4); err != nil {
		d.log.Printf("[ERROR] Cannot initialize database pool: %s\n",
			err.Error())
		return nil, err
	} else if d.sched, err = scheduler.New(q, d.pool); err != nil {
		d.log.Printf("[ERROR] Cannot create Scheduler: %s\n",
			err.Error())
		return nil, err
	} else if d.clock, err = timer.New(d.pool); err != nil {
		d.log.Printf("[ERROR] Cannot create Timer: %s\n",
			err.Error())
		return nil, err
	}

	var granted bool

	if granted, err = q.Authorize(); err != nil {
		d.log.Printf("[ERROR] Cannot determine notification authorization: %s\n",
			err.Error())
	} else if !granted {
		// One-time prompt; we keep submitting anyway, the queue
		// quietly discards.
		d.log.Printf("[WARN] Notification permission was denied. Enable notifications for %s in the system settings to get reminders.\n",
			common.AppName)
	}

	d.web.Addr = addr
	d.web.ErrorLog = d.log
	d.web.Handler = d.router

	if err = d.initWebHandlers(); err != nil {
		d.log.Printf("[ERROR] Failed to initialize web server: %s\n",
			err.Error())
		return nil, err
	}

	if err = d.restore(); err != nil {
		d.log.Printf("[WARN] Could not restore persisted state: %s\n",
			err.Error())
	}

	go d.tickLoop()
	go d.healLoop()
	go d.actionLoop()
	go d.serveHTTP()

	return d, nil
} // func Summon(addr string, q queue.Queue) (*Daemon, error)

// IsAlive returns true if the Daemon's active flag is set.
func (d *Daemon) IsAlive() bool {
	d.lock.RLock()
	var alive = d.active
	d.lock.RUnlock()

	return alive
} // func (d *Daemon) IsAlive() bool

// Banish clears the Daemon's active flag, telling components to shut down.
func (d *Daemon) Banish() error {
	var (
		err         error
		ctx, cancel = context.WithTimeout(context.Background(), time.Second*3)
	)
	defer cancel()

	if err = d.web.Shutdown(ctx); err != nil {
		d.log.Printf("[ERROR] Failed to shutdown web server: %s\n",
			err.Error())
	}

	if ctx.Err() != nil {
		err = ctx.Err()
		d.log.Printf("[ERROR] Failed to gracefully shut down web server: %s\n",
			ctx.Err().Error())
		d.web.Close() // nolint: errcheck
	}

	d.lock.Lock()
	d.active = false
	d.lock.Unlock()

	if e := d.q.Close(); e != nil {
		d.log.Printf("[ERROR] Failed to close notification queue: %s\n",
			e.Error())
	}

	return err
} // func (d *Daemon) Banish() error

// SetMode is the one place Mode transitions happen: the Scheduler
// swaps the reminder Batch, the Timer starts over, persistence is a
// side effect of passing through here.
func (d *Daemon) SetMode(m mode.Mode) error {
	var (
		err error
		p   = d.profiles[m]
	)

	if _, err = d.sched.Activate(m, p); err != nil {
		d.log.Printf("[ERROR] Cannot activate Mode %s: %s\n",
			m,
			err.Error())
		return err
	}

	d.clock.SetMode(m, p, time.Now())

	d.log.Printf("[INFO] Mode is now %s\n", m)
	return nil
} // func (d *Daemon) SetMode(m mode.Mode) error

// ActiveMode returns the currently active Mode.
func (d *Daemon) ActiveMode() (mode.Mode, bool) {
	return d.sched.ActiveMode()
} // func (d *Daemon) ActiveMode() (mode.Mode, bool)

// Suspend is the "going to background" lifecycle hook; the frontend
// calls it when the user looks away. The timer state is persisted,
// the display tick pauses.
func (d *Daemon) Suspend() error {
	d.lock.Lock()
	d.suspended = true
	d.lock.Unlock()

	return d.clock.OnSuspend(time.Now())
} // func (d *Daemon) Suspend() error

// Resume is the "coming to foreground" counterpart: reload the timer
// and recompute the display value right away.
func (d *Daemon) Resume() error {
	d.lock.Lock()
	d.suspended = false
	d.lock.Unlock()

	var _, err = d.clock.OnResume(time.Now())
	return err
} // func (d *Daemon) Resume() error

func (d *Daemon) isSuspended() bool {
	d.lock.RLock()
	var s = d.suspended
	d.lock.RUnlock()
	return s
} // func (d *Daemon) isSuspended() bool

// restore brings back the persisted Mode after a restart. The
// in-process notification queue starts out empty, so the Batch is
// scheduled afresh, but the Timer picks up the persisted start stamp,
// so the displayed time keeps running across the restart.
func (d *Daemon) restore() error {
	var (
		err  error
		mstr string
		ok   bool
		m    = mode.Caring
		db   = d.pool.Get()
	)

	if mstr, ok, err = db.StateGet(scheduler.KeyActiveMode); err != nil {
		d.pool.Put(db)
		return err
	}
	d.pool.Put(db)

	if ok {
		if m, err = mode.Parse(mstr); err != nil {
			d.log.Printf("[WARN] Persisted mode %q is invalid, falling back to %s\n",
				mstr,
				mode.Caring)
			m = mode.Caring
		}
	}

	if _, err = d.sched.Activate(m, d.profiles[m]); err != nil {
		return err
	}

	if _, err = d.clock.OnResume(time.Now()); err != nil {
		// No persisted timer state, start fresh.
		d.clock.SetMode(m, d.profiles[m], time.Now())
	}

	return nil
} // func (d *Daemon) restore() error

// tickLoop drives the 1-second display update. There is exactly one
// of these, invocations never overlap.
func (d *Daemon) tickLoop() {
	defer d.log.Println("[TRACE] Quitting tickLoop")

	var tick = time.NewTicker(tickInterval)
	defer tick.Stop()

	for d.IsAlive() {
		<-tick.C

		if d.isSuspended() {
			continue
		}

		var now = time.Now()
		d.clock.Tick(now)

		if d.clock.IsExpired() {
			if m, running := d.clock.Mode(); running && m != mode.Caring {
				d.log.Printf("[INFO] Countdown for %s has expired, switching to %s\n",
					m,
					mode.Caring)
				if err := d.SetMode(mode.Caring); err != nil {
					d.log.Printf("[ERROR] Cannot switch to %s: %s\n",
						mode.Caring,
						err.Error())
				}
			}
		}
	}
} // func (d *Daemon) tickLoop()

// healLoop periodically checks whether the active Batch has run low
// and tops it up. While an expired countdown is waiting for the
// tickLoop to handle it, healing would only re-schedule a Mode that
// is about to end, so it is skipped.
func (d *Daemon) healLoop() {
	defer d.log.Println("[TRACE] Quitting healLoop")

	var tick = time.NewTicker(healInterval)
	defer tick.Stop()

	for d.IsAlive() {
		<-tick.C

		if d.clock.IsExpired() {
			continue
		}

		var (
			err    error
			healed bool
		)

		if healed, err = d.sched.SelfHeal(); err != nil {
			d.log.Printf("[ERROR] Self-healing failed: %s\n",
				err.Error())
		} else if healed {
			d.log.Println("[INFO] Topped up the active reminder batch")
		}
	}
} // func (d *Daemon) healLoop()

// actionLoop consumes notification actions from the queue and feeds
// them to handleNotificationAction.
func (d *Daemon) actionLoop() {
	defer d.log.Println("[TRACE] Quitting actionLoop")

	for act := range d.q.Actions() {
		if !d.IsAlive() {
			return
		}

		d.handleNotificationAction(act)
	}
} // func (d *Daemon) actionLoop()

// handleNotificationAction is the single entry point for user
// reactions to delivered notifications.
func (d *Daemon) handleNotificationAction(act queue.Action) {
	d.log.Printf("[DEBUG] Notification action %q on %s\n",
		act.ActionKey,
		act.Identifier)

	switch act.ActionKey {
	case queue.ActionCare:
		if err := d.SetMode(mode.Caring); err != nil {
			d.log.Printf("[ERROR] Cannot switch to %s: %s\n",
				mode.Caring,
				err.Error())
		}
	default:
		d.log.Printf("[DEBUG] Ignoring unknown action %q\n",
			act.ActionKey)
	}
} // func (d *Daemon) handleNotificationAction(act queue.Action)
