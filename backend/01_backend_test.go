// /home/krylon/go/src/github.com/blicero/lethe/backend/01_backend_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 25. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-23 19:04:15 krylon>

package backend

import (
	"testing"
	"time"

	"github.com/blicero/lethe/objects/mode"
	"github.com/blicero/lethe/queue"
)

var (
	back *Daemon
	mq   *queue.MemoryQueue
)

func TestSummon(t *testing.T) {
	var err error

	if mq, err = queue.NewMemoryQueue(); err != nil {
		t.Fatalf("Cannot create MemoryQueue: %s",
			err.Error())
	} else if back, err = Summon("localhost:0", mq); err != nil {
		back = nil
		t.Fatalf("Cannot create Daemon: %s",
			err.Error())
	}

	// With nothing persisted, the Daemon comes up in Caring mode
	// with a fresh Batch scheduled.
	var (
		m       mode.Mode
		running bool
	)

	if m, running = back.ActiveMode(); !running {
		t.Error("No Mode is active after Summon")
	} else if m != mode.Caring {
		t.Errorf("Unexpected Mode after Summon: %s (expected %s)",
			m,
			mode.Caring)
	}
} // func TestSummon(t *testing.T)

func TestSetMode(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var (
		err    error
		cnt    int
		byMode map[mode.Mode]int
	)

	if err = back.SetMode(mode.DoNotCare); err != nil {
		t.Fatalf("Cannot set Mode to %s: %s",
			mode.DoNotCare,
			err.Error())
	} else if cnt, byMode, err = back.sched.CheckPending(); err != nil {
		t.Fatalf("Cannot check pending Requests: %s",
			err.Error())
	} else if byMode[mode.Caring] != 0 {
		t.Errorf("%d Requests of the previous Mode are still pending",
			byMode[mode.Caring])
	} else if cnt != back.profiles[mode.DoNotCare].BatchSize {
		t.Errorf("Unexpected pending count: %d (expected %d)",
			cnt,
			back.profiles[mode.DoNotCare].BatchSize)
	}

	if m, _ := back.ActiveMode(); m != mode.DoNotCare {
		t.Errorf("Unexpected active Mode: %s (expected %s)",
			m,
			mode.DoNotCare)
	}
} // func TestSetMode(t *testing.T)

func TestSuspendResume(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var err error

	if err = back.Suspend(); err != nil {
		t.Fatalf("Suspend failed: %s", err.Error())
	} else if !back.isSuspended() {
		t.Error("Daemon should be suspended")
	}

	if err = back.Resume(); err != nil {
		t.Fatalf("Resume failed: %s", err.Error())
	} else if back.isSuspended() {
		t.Error("Daemon should not be suspended anymore")
	}
} // func TestSuspendResume(t *testing.T)

// Clicking "I care now" on a notification must force a transition to
// Caring.
func TestNotificationAction(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	mq.PushAction("some-request-042", queue.ActionCare)

	// The action loop runs in its own goroutine, give it a moment.
	var deadline = time.Now().Add(time.Second * 2)

	for time.Now().Before(deadline) {
		if m, _ := back.ActiveMode(); m == mode.Caring {
			return
		}
		time.Sleep(time.Millisecond * 10)
	}

	var m, _ = back.ActiveMode()
	t.Errorf("Active Mode is still %s, expected %s",
		m,
		mode.Caring)
} // func TestNotificationAction(t *testing.T)
