// /home/krylon/go/src/github.com/blicero/lethe/timer/01_timer_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-22 18:58:44 krylon>

package timer

import (
	"testing"
	"time"

	"github.com/blicero/lethe/database"
	"github.com/blicero/lethe/objects"
	"github.com/blicero/lethe/objects/mode"
)

var (
	pool *database.Pool
	tmr  *Timer
)

// All test stamps are second-aligned because the persisted start
// stamp has second resolution.
var epoch = time.Unix(1680000000, 0)

func TestCreateTimer(t *testing.T) {
	var err error

	if pool, err = database.NewPool(2); err != nil {
		t.Fatalf("Cannot create database pool: %s",
			err.Error())
	} else if tmr, err = New(pool); err != nil {
		tmr = nil
		t.Fatalf("Cannot create Timer: %s",
			err.Error())
	}
} // func TestCreateTimer(t *testing.T)

func TestElapsed(t *testing.T) {
	if tmr == nil {
		t.SkipNow()
	}

	tmr.SetMode(mode.Caring, objects.Profile{}, epoch)

	if got := tmr.Tick(epoch.Add(time.Second * 65)); got != time.Second*65 {
		t.Errorf("Unexpected elapsed value %s (expected %s)",
			got,
			time.Second*65)
	}

	if tmr.IsExpired() {
		t.Errorf("%s must never expire", mode.Caring)
	}
} // func TestElapsed(t *testing.T)

// Toggling discards the previous Mode's accumulated time, the new
// Mode starts fresh.
func TestToggleResets(t *testing.T) {
	if tmr == nil {
		t.SkipNow()
	}

	var (
		p = objects.Profile{Duration: time.Hour}
		// 65 seconds into a Caring session...
		t1 = epoch.Add(time.Second * 65)
	)

	tmr.SetMode(mode.DoNotCare, p, t1)

	if got := tmr.Tick(t1); got != time.Hour {
		t.Errorf("Countdown should start at %s, got %s",
			time.Hour,
			got)
	}

	if got := tmr.Tick(t1.Add(time.Minute * 10)); got != time.Minute*50 {
		t.Errorf("Unexpected remaining value %s (expected %s)",
			got,
			time.Minute*50)
	}

	// Toggle back. The 65 Caring seconds from before must not
	// carry over.
	var t2 = t1.Add(time.Minute * 15)

	tmr.SetMode(mode.Caring, objects.Profile{}, t2)

	if got := tmr.Tick(t2); got != 0 {
		t.Errorf("Elapsed time should restart at zero, got %s",
			got)
	}
} // func TestToggleResets(t *testing.T)

func TestCountdownBoundary(t *testing.T) {
	if tmr == nil {
		t.SkipNow()
	}

	var p = objects.Profile{Duration: time.Minute * 25}

	tmr.SetMode(mode.Focus, p, epoch)

	if got := tmr.Tick(epoch.Add(time.Minute * 25)); got != 0 {
		t.Errorf("Remaining value at the boundary should be 0, got %s",
			got)
	}

	if got := tmr.Tick(epoch.Add(time.Hour)); got != 0 {
		t.Errorf("Remaining value past the boundary should be 0, got %s",
			got)
	}

	// The Focus session above started far in the past, so by wall
	// clock time it is long expired.
	if !tmr.IsExpired() {
		t.Error("Countdown should report expiry once its time is up")
	}
} // func TestCountdownBoundary(t *testing.T)

// Suspend, then resume on a fresh Timer. The display value must come
// out as if the process had never been away.
func TestSuspendResume(t *testing.T) {
	if tmr == nil {
		t.SkipNow()
	}

	var (
		err error
		t0  = epoch.Add(time.Hour * 24)
		t1  = t0.Add(time.Minute * 47)
	)

	tmr.SetMode(mode.Caring, objects.Profile{}, t0)

	if err = tmr.OnSuspend(t0.Add(time.Second * 30)); err != nil {
		t.Fatalf("OnSuspend failed: %s", err.Error())
	}

	// A fresh Timer simulates the process being killed and
	// relaunched; it has to reconstruct everything from the
	// persisted state.
	var (
		cold    *Timer
		display time.Duration
	)

	if cold, err = New(pool); err != nil {
		t.Fatalf("Cannot create second Timer: %s", err.Error())
	} else if display, err = cold.OnResume(t1); err != nil {
		t.Fatalf("OnResume failed: %s", err.Error())
	} else if display != t1.Sub(t0) {
		t.Errorf("Unexpected display value after resume: %s (expected %s)",
			display,
			t1.Sub(t0))
	}

	if m, running := cold.Mode(); !running {
		t.Error("Timer should be running after a resume")
	} else if m != mode.Caring {
		t.Errorf("Unexpected Mode after resume: %s (expected %s)",
			m,
			mode.Caring)
	}

	// A warm resume on the original Timer must agree.
	if display, err = tmr.OnResume(t1); err != nil {
		t.Fatalf("Warm OnResume failed: %s", err.Error())
	} else if display != t1.Sub(t0) {
		t.Errorf("Unexpected display value after warm resume: %s (expected %s)",
			display,
			t1.Sub(t0))
	}
} // func TestSuspendResume(t *testing.T)

func TestResumeCountdown(t *testing.T) {
	if tmr == nil {
		t.SkipNow()
	}

	var (
		err error
		p   = objects.Profile{Duration: time.Hour}
		t0  = epoch.Add(time.Hour * 48)
		t1  = t0.Add(time.Minute * 20)
	)

	tmr.SetMode(mode.DoNotCare, p, t0)

	if err = tmr.OnSuspend(t0.Add(time.Minute)); err != nil {
		t.Fatalf("OnSuspend failed: %s", err.Error())
	}

	var (
		cold    *Timer
		display time.Duration
	)

	if cold, err = New(pool); err != nil {
		t.Fatalf("Cannot create second Timer: %s", err.Error())
	} else if display, err = cold.OnResume(t1); err != nil {
		t.Fatalf("OnResume failed: %s", err.Error())
	} else if display != time.Minute*40 {
		t.Errorf("Unexpected remaining value after resume: %s (expected %s)",
			display,
			time.Minute*40)
	}
} // func TestResumeCountdown(t *testing.T)
