// /home/krylon/go/src/github.com/blicero/lethe/backend/99_backend_shutdown_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 25. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-23 19:06:40 krylon>

package backend

import "testing"

func TestBanish(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var err error

	if err = back.Banish(); err != nil {
		t.Errorf("Error banishing Daemon: %s",
			err.Error())
	} else if back.IsAlive() {
		t.Error("Daemon claims to be alive after being banished")
	}
} // func TestBanish(t *testing.T)
