// /home/krylon/go/src/github.com/blicero/lethe/objects/01_batch_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 23. 02. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-18 21:55:30 krylon>

package objects

import (
	"testing"
	"time"

	"github.com/blicero/lethe/objects/mode"
)

func TestBatchOffsets(t *testing.T) {
	var p = Profile{
		BatchSize:       5,
		IntervalSeconds: 40,
		LeadSeconds:     1,
		Title:           "Test",
		Messages:        []string{"one", "two"},
	}

	var (
		b          = NewBatch(mode.DoNotCare, p)
		wantOffset = []int64{1, 41, 81, 121, 161}
	)

	if len(b.Requests) != p.BatchSize {
		t.Fatalf("Unexpected number of Requests: %d (expected %d)",
			len(b.Requests),
			p.BatchSize)
	}

	for idx, req := range b.Requests {
		if req.OffsetSeconds != wantOffset[idx] {
			t.Errorf("Unexpected offset on Request #%d: %d (expected %d)",
				idx+1,
				req.OffsetSeconds,
				wantOffset[idx])
		}

		if req.Sequence != idx+1 {
			t.Errorf("Unexpected sequence on Request #%d: %d",
				idx+1,
				req.Sequence)
		}

		if req.Mode != mode.DoNotCare {
			t.Errorf("Request #%d is tagged with Mode %s (expected %s)",
				idx+1,
				req.Mode,
				mode.DoNotCare)
		}

		if idx > 0 && req.OffsetSeconds <= b.Requests[idx-1].OffsetSeconds {
			t.Errorf("Offsets are not strictly increasing at #%d: %d after %d",
				idx+1,
				req.OffsetSeconds,
				b.Requests[idx-1].OffsetSeconds)
		}
	}
} // func TestBatchOffsets(t *testing.T)

func TestBatchIdentifiersUnique(t *testing.T) {
	var (
		p = Profile{
			BatchSize:       10,
			IntervalSeconds: 60,
			LeadSeconds:     1,
			Title:           "Test",
		}
		seen = make(map[string]bool)
	)

	for i := 0; i < 4; i++ {
		var b = NewBatch(mode.Focus, p)

		for _, req := range b.Requests {
			if seen[req.Identifier] {
				t.Fatalf("Identifier %q occurs more than once",
					req.Identifier)
			}
			seen[req.Identifier] = true
		}
	}
} // func TestBatchIdentifiersUnique(t *testing.T)

func TestBatchClamp(t *testing.T) {
	var p = Profile{
		BatchSize:       MaxPending * 2,
		IntervalSeconds: 10,
		LeadSeconds:     1,
		Title:           "Test",
	}

	var b = NewBatch(mode.DoNotCare, p)

	if len(b.Requests) != MaxPending {
		t.Errorf("Batch was not clamped to %d Requests: %d",
			MaxPending,
			len(b.Requests))
	}
} // func TestBatchClamp(t *testing.T)

func TestProfileMessages(t *testing.T) {
	var p = Profile{
		Title:    "Fallback",
		Messages: []string{"a", "b", "c"},
	}

	var expect = []string{"a", "b", "c", "a", "b", "c"}

	for idx, want := range expect {
		if got := p.Message(idx); got != want {
			t.Errorf("Unexpected message #%d: %q (expected %q)",
				idx,
				got,
				want)
		}
	}

	var empty = Profile{Title: "Fallback"}

	if got := empty.Message(3); got != "Fallback" {
		t.Errorf("Empty message pool should fall back to the title, got %q",
			got)
	}
} // func TestProfileMessages(t *testing.T)

func TestTimerStateCountdown(t *testing.T) {
	var (
		start = time.Unix(1650000000, 0)
		state = TimerState{
			Mode:     mode.DoNotCare,
			Start:    start,
			Duration: time.Minute * 30,
		}
	)

	type testCase struct {
		now         time.Time
		wantDisplay time.Duration
		wantExpired bool
	}

	var cases = []testCase{
		testCase{start, time.Minute * 30, false},
		testCase{start.Add(time.Minute * 10), time.Minute * 20, false},
		testCase{start.Add(time.Minute * 30), 0, true},
		testCase{start.Add(time.Hour), 0, true},
	}

	for idx, c := range cases {
		if got := state.Display(c.now); got != c.wantDisplay {
			t.Errorf("Case %d: unexpected display value %s (expected %s)",
				idx,
				got,
				c.wantDisplay)
		}

		if got := state.Expired(c.now); got != c.wantExpired {
			t.Errorf("Case %d: unexpected expiry %t (expected %t)",
				idx,
				got,
				c.wantExpired)
		}

		if rem := state.Remaining(c.now); rem < 0 {
			t.Errorf("Case %d: remaining value is negative: %s",
				idx,
				rem)
		}
	}
} // func TestTimerStateCountdown(t *testing.T)

func TestTimerStateElapsed(t *testing.T) {
	var (
		start = time.Unix(1650000000, 0)
		state = TimerState{
			Mode:  mode.Caring,
			Start: start,
		}
	)

	if state.Countdown() {
		t.Error("A state without a duration should not be a countdown")
	}

	if got := state.Display(start.Add(time.Second * 65)); got != time.Second*65 {
		t.Errorf("Unexpected elapsed value %s (expected %s)",
			got,
			time.Second*65)
	}

	if state.Expired(start.Add(time.Hour * 1000)) {
		t.Error("An open-ended state must never expire")
	}
} // func TestTimerStateElapsed(t *testing.T)
