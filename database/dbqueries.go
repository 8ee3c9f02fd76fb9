// /home/krylon/go/src/github.com/blicero/lethe/database/dbqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 02. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-02 18:19:44 krylon>

package database

import "github.com/blicero/lethe/database/query"

var dbQueries = map[query.ID]string{
	query.StateGet: "SELECT value, changed FROM state WHERE key = ?",
	query.StateSet: `
INSERT INTO state (key, value, changed)
VALUES            (  ?,     ?,       ?)
ON CONFLICT (key) DO UPDATE SET
    value = excluded.value,
    changed = excluded.changed
`,
	query.StateDelete: "DELETE FROM state WHERE key = ?",
	query.StateGetAll: `
SELECT
    key,
    value,
    changed
FROM state
ORDER BY key
`,
}
