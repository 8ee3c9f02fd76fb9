// /home/krylon/go/src/github.com/blicero/lethe/backend/helpers.go
// -*- mode: go; coding: utf-8; -*-
// Created on 22. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-15 16:48:22 krylon>

package backend

import (
	"fmt"
	"time"
)

// fmtDuration renders a Duration as HH:MM:SS for display.
func fmtDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}

	var (
		h = d / time.Hour
		m = (d % time.Hour) / time.Minute
		s = (d % time.Minute) / time.Second
	)

	return fmt.Sprintf("%02d:%02d:%02d",
		h, m, s)
} // func fmtDuration(d time.Duration) string
