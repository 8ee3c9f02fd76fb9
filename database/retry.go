// /home/krylon/go/src/github.com/blicero/lethe/database/retry.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 02. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-03-19 17:02:26 krylon>

package database

import (
	"time"

	"github.com/mattn/go-sqlite3"
)

// When a query returns SQLITE_BUSY or SQLITE_LOCKED, we retry it after
// a short delay instead of failing outright.
const retryDelay = 25 * time.Millisecond

func worthARetry(e error) bool {
	if serr, ok := e.(sqlite3.Error); ok {
		switch serr.Code {
		case sqlite3.ErrBusy:
			fallthrough
		case sqlite3.ErrLocked:
			return true
		}
	}

	return false
} // func worthARetry(e error) bool

func waitForRetry() {
	time.Sleep(retryDelay)
} // func waitForRetry()
