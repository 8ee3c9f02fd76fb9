// /home/krylon/go/src/github.com/blicero/lethe/queue/dbus.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-21 18:56:33 krylon>

package queue

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/blicero/lethe/common"
	"github.com/blicero/lethe/logdomain"
	"github.com/blicero/lethe/objects"
	"github.com/godbus/dbus/v5"
)

const (
	notifyObj    = "org.freedesktop.Notifications"
	notifyIntf   = "org.freedesktop.Notifications"
	notifyPath   = "/org/freedesktop/Notifications"
	notifyMethod = "org.freedesktop.Notifications.Notify"
	closeMethod  = "org.freedesktop.Notifications.CloseNotification"
	fireInterval = time.Second
	sigDepth     = 16
)

type dbusEntry struct {
	req objects.Request
	due time.Time
}

// DBusQueue implements Queue on top of the desktop's notification
// service. Pending Requests are held in-process and fired via
// org.freedesktop.Notifications when their offset has passed;
// delivered notifications keep their server-assigned IDs around so
// they can be closed again.
type DBusQueue struct {
	log        *log.Logger
	bus        *dbus.Conn
	lock       sync.RWMutex
	active     bool
	pending    []dbusEntry
	delivered  map[string]uint32
	byServerID map[uint32]string
	badge      int
	status     AuthStatus
	actions    chan Action
	sigq       chan *dbus.Signal
}

// NewDBusQueue connects to the session bus and starts the delivery
// and signal loops.
func NewDBusQueue() (*DBusQueue, error) {
	var (
		err error
		q   = &DBusQueue{
			active:     true,
			pending:    make([]dbusEntry, 0, objects.MaxPending),
			delivered:  make(map[string]uint32),
			byServerID: make(map[uint32]string),
			actions:    make(chan Action, sigDepth),
			sigq:       make(chan *dbus.Signal, sigDepth),
		}
	)

	if q.log, err = common.GetLogger(logdomain.Queue); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	} else if q.bus, err = dbus.SessionBus(); err != nil {
		q.log.Printf("[ERROR] Failed to connect to DBus Session bus: %s\n",
			err.Error())
		return nil, err
	}

	if err = q.bus.AddMatchSignal(dbus.WithMatchInterface(notifyIntf)); err != nil {
		q.log.Printf("[ERROR] Cannot subscribe to %s signals: %s\n",
			notifyIntf,
			err.Error())
		return nil, err
	}

	q.bus.Signal(q.sigq)

	go q.fireLoop()
	go q.signalLoop()

	return q, nil
} // func NewDBusQueue() (*DBusQueue, error)

func (q *DBusQueue) isAlive() bool {
	q.lock.RLock()
	var alive = q.active
	q.lock.RUnlock()
	return alive
} // func (q *DBusQueue) isAlive() bool

// Submit adds a Request to the pending set. Beyond the capacity
// limit, Requests are quietly discarded.
func (q *DBusQueue) Submit(req *objects.Request) error {
	q.lock.Lock()
	defer q.lock.Unlock()

	if len(q.pending) >= objects.MaxPending {
		q.log.Printf("[DEBUG] Queue is full, discarding Request %s\n",
			req.Identifier)
		return nil
	}

	q.pending = append(q.pending, dbusEntry{
		req: *req,
		due: req.Due(time.Now()),
	})

	return nil
} // func (q *DBusQueue) Submit(req *objects.Request) error

// CancelPending removes the Requests with the given identifiers.
func (q *DBusQueue) CancelPending(ids []string) error {
	q.lock.Lock()
	defer q.lock.Unlock()

	var doomed = make(map[string]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}

	var keep = q.pending[:0]

	for _, ent := range q.pending {
		if !doomed[ent.req.Identifier] {
			keep = append(keep, ent)
		}
	}

	q.pending = keep
	return nil
} // func (q *DBusQueue) CancelPending(ids []string) error

// CancelAllPending empties the pending set.
func (q *DBusQueue) CancelAllPending() error {
	q.lock.Lock()
	q.pending = q.pending[:0]
	q.lock.Unlock()
	return nil
} // func (q *DBusQueue) CancelAllPending() error

// CancelDelivered closes all notifications we have posted that the
// user has not dismissed yet.
func (q *DBusQueue) CancelDelivered() error {
	q.lock.Lock()
	defer q.lock.Unlock()

	var obj = q.bus.Object(notifyObj, notifyPath)

	for id, serverID := range q.delivered {
		if res := obj.Call(closeMethod, 0, serverID); res.Err != nil {
			q.log.Printf("[ERROR] Cannot close notification %s (#%d): %s\n",
				id,
				serverID,
				res.Err.Error())
		}

		delete(q.byServerID, serverID)
		delete(q.delivered, id)
	}

	return nil
} // func (q *DBusQueue) CancelDelivered() error

// ListPending returns a copy of the pending set.
func (q *DBusQueue) ListPending() ([]objects.Request, error) {
	q.lock.RLock()
	defer q.lock.RUnlock()

	var list = make([]objects.Request, len(q.pending))

	for idx, ent := range q.pending {
		list[idx] = ent.req
	}

	return list, nil
} // func (q *DBusQueue) ListPending() ([]objects.Request, error)

// PendingCount returns the number of pending Requests.
func (q *DBusQueue) PendingCount() (int, error) {
	q.lock.RLock()
	defer q.lock.RUnlock()
	return len(q.pending), nil
} // func (q *DBusQueue) PendingCount() (int, error)

// SetBadge sets the unread counter.
// The desktop has no badge, so we merely keep count ourselves.
func (q *DBusQueue) SetBadge(n int) error {
	q.lock.Lock()
	q.badge = n
	q.lock.Unlock()
	return nil
} // func (q *DBusQueue) SetBadge(n int) error

// BadgeCount returns the unread counter.
func (q *DBusQueue) BadgeCount() int {
	q.lock.RLock()
	defer q.lock.RUnlock()
	return q.badge
} // func (q *DBusQueue) BadgeCount() int

// Authorize reports whether we may post notifications. The session
// bus does not do permission dialogs, a live connection means yes.
func (q *DBusQueue) Authorize() (bool, error) {
	q.lock.Lock()
	defer q.lock.Unlock()

	if q.bus != nil {
		q.status = AuthAuthorized
		return true, nil
	}

	q.status = AuthDenied
	return false, nil
} // func (q *DBusQueue) Authorize() (bool, error)

// AuthStatus returns the current authorization status.
func (q *DBusQueue) AuthStatus() AuthStatus {
	q.lock.RLock()
	defer q.lock.RUnlock()
	return q.status
} // func (q *DBusQueue) AuthStatus() AuthStatus

// Actions returns the channel notification actions arrive on.
func (q *DBusQueue) Actions() <-chan Action {
	return q.actions
} // func (q *DBusQueue) Actions() <-chan Action

// Close shuts down the delivery and signal loops.
func (q *DBusQueue) Close() error {
	q.lock.Lock()
	q.active = false
	q.lock.Unlock()

	q.bus.RemoveSignal(q.sigq)
	close(q.sigq)

	return nil
} // func (q *DBusQueue) Close() error

func (q *DBusQueue) fireLoop() {
	defer q.log.Println("[TRACE] Quitting fireLoop")

	var tick = time.NewTicker(fireInterval)
	defer tick.Stop()

	for q.isAlive() {
		<-tick.C

		var (
			now = time.Now()
			due []dbusEntry
		)

		q.lock.Lock()
		var keep = q.pending[:0]
		for _, ent := range q.pending {
			if !ent.due.After(now) {
				due = append(due, ent)
			} else {
				keep = append(keep, ent)
			}
		}
		q.pending = keep
		q.lock.Unlock()

		for _, ent := range due {
			if err := q.deliver(&ent); err != nil {
				q.log.Printf("[ERROR] Failed to deliver Request %s: %s\n",
					ent.req.Identifier,
					err.Error())
			}

			if ent.req.Repeats {
				// Fixed-cadence Requests re-enqueue themselves.
				q.lock.Lock()
				if len(q.pending) < objects.MaxPending {
					q.pending = append(q.pending, dbusEntry{
						req: ent.req,
						due: ent.req.Due(now),
					})
				}
				q.lock.Unlock()
			}
		}
	}
} // func (q *DBusQueue) fireLoop()

func (q *DBusQueue) deliver(ent *dbusEntry) error {
	var (
		obj        = q.bus.Object(notifyObj, notifyPath)
		head, body = ent.req.Payload()
		serverID   uint32
	)

	if obj == nil {
		var err = fmt.Errorf("Did not find object %s (%s) on session bus",
			notifyObj,
			notifyPath)
		q.log.Printf("[ERROR] %s\n", err.Error())
		return err
	}

	var res = obj.Call(
		notifyMethod,
		0,
		common.AppName,
		uint32(0),
		"",
		head,
		body,
		[]string{ActionCare, "I care now"},
		map[string]dbus.Variant{},
		int32(-1),
	)

	if res.Err != nil {
		q.log.Printf("[ERROR] Cannot send notification %q: %s\n",
			head,
			res.Err.Error())
		return res.Err
	} else if err := res.Store(&serverID); err != nil {
		q.log.Printf("[ERROR] Cannot get notification ID for %q: %s\n",
			head,
			err.Error())
		return err
	}

	q.lock.Lock()
	q.delivered[ent.req.Identifier] = serverID
	q.byServerID[serverID] = ent.req.Identifier
	q.badge++
	q.lock.Unlock()

	q.log.Printf("[DEBUG] Delivered Request %s (#%d in its batch) as notification %d\n",
		ent.req.Identifier,
		ent.req.Sequence,
		serverID)

	return nil
} // func (q *DBusQueue) deliver(ent *dbusEntry) error

func (q *DBusQueue) signalLoop() {
	defer q.log.Println("[TRACE] Quitting signalLoop")
	defer close(q.actions)

	for sig := range q.sigq {
		switch sig.Name {
		case notifyIntf + ".ActionInvoked":
			var (
				serverID  uint32
				actionKey string
				ok        bool
			)

			if len(sig.Body) < 2 {
				q.log.Printf("[CANTHAPPEN] ActionInvoked signal with %d members\n",
					len(sig.Body))
				continue
			} else if serverID, ok = sig.Body[0].(uint32); !ok {
				continue
			} else if actionKey, ok = sig.Body[1].(string); !ok {
				continue
			}

			q.lock.Lock()
			var id = q.byServerID[serverID]
			q.lock.Unlock()

			if id == "" {
				// Some other application's notification.
				continue
			}

			q.actions <- Action{
				Identifier: id,
				ActionKey:  actionKey,
				Timestamp:  time.Now(),
			}
		case notifyIntf + ".NotificationClosed":
			var (
				serverID uint32
				ok       bool
			)

			if len(sig.Body) < 1 {
				continue
			} else if serverID, ok = sig.Body[0].(uint32); !ok {
				continue
			}

			q.lock.Lock()
			if id, known := q.byServerID[serverID]; known {
				delete(q.delivered, id)
				delete(q.byServerID, serverID)
			}
			q.lock.Unlock()
		}
	}
} // func (q *DBusQueue) signalLoop()
