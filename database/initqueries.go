// /home/krylon/go/src/github.com/blicero/lethe/database/initqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 02. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-03-19 16:51:37 krylon>

package database

var initQueries = []string{
	`
CREATE TABLE state (
    key     TEXT PRIMARY KEY,
    value   TEXT NOT NULL DEFAULT '',
    changed INTEGER NOT NULL DEFAULT 0
)
`,
	"CREATE INDEX state_changed_idx ON state (changed)",
}
