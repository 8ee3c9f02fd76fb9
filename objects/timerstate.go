// /home/krylon/go/src/github.com/blicero/lethe/objects/timerstate.go
// -*- mode: go; coding: utf-8; -*-
// Created on 25. 02. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-16 17:48:09 krylon>

package objects

import (
	"fmt"
	"time"

	"github.com/blicero/lethe/common"
	"github.com/blicero/lethe/objects/mode"
)

//go:generate ffjson timerstate.go

// TimerState is the time accounting for the active Mode: a wall clock
// start stamp, and for countdown Modes, the total duration.
// The previous Mode's state is discarded on every transition, elapsed
// time deliberately does not carry over.
type TimerState struct {
	Mode     mode.Mode
	Start    time.Time
	Duration time.Duration
}

// Countdown returns true if the state counts down from a fixed
// duration rather than accumulating elapsed time.
func (s *TimerState) Countdown() bool {
	return s.Duration > 0
} // func (s *TimerState) Countdown() bool

// Elapsed returns the wall clock time that has passed since the state
// began.
func (s *TimerState) Elapsed(now time.Time) time.Duration {
	return now.Sub(s.Start)
} // func (s *TimerState) Elapsed(now time.Time) time.Duration

// Remaining returns the time left on a countdown, clamped at zero.
// For non-countdown states it returns zero.
func (s *TimerState) Remaining(now time.Time) time.Duration {
	if !s.Countdown() {
		return 0
	}

	var rem = s.Duration - s.Elapsed(now)

	if rem < 0 {
		return 0
	}

	return rem
} // func (s *TimerState) Remaining(now time.Time) time.Duration

// Display returns the value shown to the user: elapsed time for
// open-ended states, remaining time for countdowns.
func (s *TimerState) Display(now time.Time) time.Duration {
	if s.Countdown() {
		return s.Remaining(now)
	}

	return s.Elapsed(now)
} // func (s *TimerState) Display(now time.Time) time.Duration

// Expired returns true once a countdown state has run out.
// Open-ended states never expire.
func (s *TimerState) Expired(now time.Time) bool {
	return s.Countdown() && s.Remaining(now) == 0
} // func (s *TimerState) Expired(now time.Time) bool

func (s *TimerState) String() string {
	return fmt.Sprintf("TimerState{ Mode: %s, Start: %s, Duration: %s }",
		s.Mode,
		s.Start.Format(common.TimestampFormat),
		s.Duration)
} // func (s *TimerState) String() string
