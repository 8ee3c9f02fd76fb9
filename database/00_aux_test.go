// /home/krylon/go/src/github.com/blicero/lethe/database/00_aux_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 21. 02. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-03-19 17:21:45 krylon>

package database

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blicero/lethe/common"
)

var baseDir = filepath.Join(
	os.TempDir(),
	fmt.Sprintf("lethe_database_test_%d", time.Now().Unix()))

func TestMain(m *testing.M) {
	var result int

	if err := common.SetBaseDir(baseDir); err != nil {
		fmt.Printf("Cannot set base directory to %s: %s\n",
			baseDir,
			err.Error())
		os.Exit(1)
	} else if result = m.Run(); result == 0 {
		os.RemoveAll(baseDir) // nolint: errcheck
	}

	os.Exit(result)
} // func TestMain(m *testing.M)
