// /home/krylon/go/src/github.com/blicero/lethe/backend/00_aux_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 25. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-03-26 16:15:02 krylon>

package backend

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
	fmt.Sprintf("lethe_backend_test_%d", time.Now().Unix()))

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
