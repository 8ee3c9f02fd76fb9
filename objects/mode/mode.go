// /home/krylon/go/src/github.com/blicero/lethe/objects/mode/mode.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 02. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-12 20:05:44 krylon>

//go:generate stringer -type=Mode

// Package mode contains symbolic constants for the operating modes
// of the application.
package mode

import (
	"fmt"
	"strings"
)

// Mode is the mutually exclusive operating state of the application.
// Exactly one Mode is active at any time.
type Mode uint8

// Caring is the default state, time spent caring counts up from zero.
// DoNotCare and Focus run a countdown and nag the user at regular
// intervals while they are active.
const (
	Caring Mode = iota
	DoNotCare
	Focus
)

// All returns a slice of all valid Modes.
func All() []Mode {
	return []Mode{
		Caring,
		DoNotCare,
		Focus,
	}
} // func All() []Mode

// Countdown returns true if the Mode runs on a countdown rather than
// counting elapsed time.
func (m Mode) Countdown() bool {
	return m == DoNotCare || m == Focus
} // func (m Mode) Countdown() bool

// Parse attempts to parse the given string into a Mode.
// It is forgiving about case and accepts a few common aliases.
func Parse(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "caring", "care":
		return Caring, nil
	case "donotcare", "dontcare", "dnd":
		return DoNotCare, nil
	case "focus":
		return Focus, nil
	default:
		return Caring, fmt.Errorf("Invalid Mode %q", s)
	}
} // func Parse(s string) (Mode, error)
