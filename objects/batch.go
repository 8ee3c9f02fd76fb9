// /home/krylon/go/src/github.com/blicero/lethe/objects/batch.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 02. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-18 21:40:17 krylon>

package objects

import (
	"fmt"
	"strings"
	"time"

	"github.com/blicero/lethe/common"
	"github.com/blicero/lethe/objects/mode"
)

//go:generate ffjson batch.go

// MaxPending is the maximum number of Requests the notification queue
// will hold at any one time. Requests submitted beyond that limit are
// silently dropped, so a Batch must never exceed it.
const MaxPending = 64

// Profile describes how a Mode nags the user: how many Requests to
// pre-schedule, how far apart, how soon the first one fires, and for
// countdown Modes, how long the Mode lasts.
type Profile struct {
	BatchSize       int
	IntervalSeconds int64
	LeadSeconds     int64
	Duration        time.Duration
	Title           string
	Messages        []string
}

// Clamped returns the Profile's batch size, limited to the queue's
// capacity.
func (p *Profile) Clamped() int {
	if p.BatchSize > MaxPending {
		return MaxPending
	} else if p.BatchSize < 0 {
		return 0
	}

	return p.BatchSize
} // func (p *Profile) Clamped() int

// Message picks a body text from the Profile's message pool.
// The pool is cycled through, so consecutive Requests get varying
// text. The content is cosmetic.
func (p *Profile) Message(idx int) string {
	if len(p.Messages) == 0 {
		return p.Title
	}

	return p.Messages[idx%len(p.Messages)]
} // func (p *Profile) Message(idx int) string

// Batch is an ordered run of Requests submitted together when a Mode
// is activated. At most one Batch is logically active at any time.
type Batch struct {
	UUID      string
	Mode      mode.Mode
	Profile   Profile
	CreatedAt time.Time
	Requests  []Request
	Submitted int
	Failed    int
}

// NewBatch synthesizes a Batch of Requests for the given Mode.
// Offsets start at the Profile's lead and increase strictly by its
// interval; identifiers are unique across activations.
func NewBatch(m mode.Mode, p Profile) *Batch {
	var (
		size = p.Clamped()
		b    = &Batch{
			UUID:      common.GetUUID(),
			Mode:      m,
			Profile:   p,
			CreatedAt: time.Now(),
			Requests:  make([]Request, size),
		}
	)

	for i := 0; i < size; i++ {
		b.Requests[i] = Request{
			Identifier: fmt.Sprintf("%s-%s-%03d",
				strings.ToLower(m.String()),
				b.UUID,
				i+1),
			Title:         p.Title,
			Body:          p.Message(i),
			OffsetSeconds: p.LeadSeconds + int64(i)*p.IntervalSeconds,
			Sequence:      i + 1,
			Mode:          m,
		}
	}

	return b
} // func NewBatch(m mode.Mode, p Profile) *Batch

func (b *Batch) String() string {
	return fmt.Sprintf("Batch{ UUID: %q, Mode: %s, Requests: %d, Submitted: %d, Failed: %d }",
		b.UUID,
		b.Mode,
		len(b.Requests),
		b.Submitted,
		b.Failed)
} // func (b *Batch) String() string
