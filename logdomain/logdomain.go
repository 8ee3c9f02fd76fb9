// /home/krylon/go/src/github.com/blicero/lethe/logdomain/logdomain.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 02. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-03-04 17:28:51 krylon>

//go:generate stringer -type=ID

// Package logdomain provides symbolic constants to identify the various
// subsystems of the application that do logging.
package logdomain

// ID identifies a log source.
type ID uint8

// These constants identify the various log sources.
const (
	Common ID = iota
	Backend
	Database
	Queue
	Scheduler
	Timer
	Web
)

// AllDomains returns a slice of all the known log sources.
func AllDomains() []ID {
	return []ID{
		Common,
		Backend,
		Database,
		Queue,
		Scheduler,
		Timer,
		Web,
	}
} // func AllDomains() []ID
