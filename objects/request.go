// /home/krylon/go/src/github.com/blicero/lethe/objects/request.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 02. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-14 18:22:31 krylon>

// Package objects provides the data types used by the application.
package objects

import (
	"fmt"
	"time"

	"github.com/blicero/lethe/objects/mode"
)

//go:generate ffjson request.go

// Request is a single pre-scheduled reminder, waiting in the
// notification queue until its offset has passed.
type Request struct {
	Identifier    string
	Title         string
	Body          string
	OffsetSeconds int64
	Sequence      int
	Mode          mode.Mode
	Repeats       bool
}

// Due returns the point in time the Request is supposed to fire,
// relative to the moment it was submitted to the queue.
func (r *Request) Due(submitted time.Time) time.Time {
	return submitted.Add(time.Second * time.Duration(r.OffsetSeconds))
} // func (r *Request) Due(submitted time.Time) time.Time

// Payload returns the Request's Title and Body.
func (r *Request) Payload() (string, string) {
	return r.Title, r.Body
} // func (r *Request) Payload() (string, string)

func (r *Request) String() string {
	return fmt.Sprintf("Request{ Identifier: %q, Mode: %s, Sequence: %d, Offset: %d }",
		r.Identifier,
		r.Mode,
		r.Sequence,
		r.OffsetSeconds)
} // func (r *Request) String() string
