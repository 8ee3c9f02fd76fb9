// /home/krylon/go/src/github.com/blicero/lethe/database/database.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 02. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-20 19:57:12 krylon>

// Package database provides the persistence layer, a small key-value
// store backed by SQLite. It is used to keep the active mode and the
// timer's start stamp across restarts.
package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/blicero/krylib"
	"github.com/blicero/lethe/common"
	"github.com/blicero/lethe/database/query"
	"github.com/blicero/lethe/logdomain"
	_ "github.com/mattn/go-sqlite3" // Import the database driver
)

var openLock sync.Mutex

// Database is a wrapper around the database connection, including the
// log and a cache of prepared statements.
type Database struct {
	db        *sql.DB
	log       *log.Logger
	path      string
	tx        *sql.Tx
	stmtTable map[query.ID]*sql.Stmt
}

// Open opens the database at the given path, creating and initializing
// it if it does not exist yet.
func Open(path string) (*Database, error) {
	var (
		err      error
		dbExists bool
		db       = &Database{
			path:      path,
			stmtTable: make(map[query.ID]*sql.Stmt),
		}
	)

	openLock.Lock()
	defer openLock.Unlock()

	if db.log, err = common.GetLogger(logdomain.Database); err != nil {
		return nil, err
	}

	var connstring = fmt.Sprintf("%s?_locking_mode=NORMAL&_busy_timeout=100&_journal_mode=WAL&_fk=1",
		path)

	if dbExists, err = krylib.Fexists(path); err != nil {
		db.log.Printf("[ERROR] Cannot check if database file %s exists: %s\n",
			path,
			err.Error())
		return nil, err
	} else if db.db, err = sql.Open("sqlite3", connstring); err != nil {
		db.log.Printf("[ERROR] Cannot open database at %s: %s\n",
			path,
			err.Error())
		return nil, err
	}

	if !dbExists {
		if err = db.initialize(); err != nil {
			var e2 error
			if e2 = db.db.Close(); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to close database: %s\n",
					e2.Error())
			} else if e2 = os.Remove(path); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to remove database file %s: %s\n",
					path,
					e2.Error())
			}
			return nil, err
		}
	}

	return db, nil
} // func Open(path string) (*Database, error)

func (db *Database) initialize() error {
	var (
		err error
		tx  *sql.Tx
	)

	if tx, err = db.db.Begin(); err != nil {
		db.log.Printf("[ERROR] Cannot begin transaction: %s\n",
			err.Error())
		return err
	}

	for _, q := range initQueries {
		if _, err = tx.Exec(q); err != nil {
			db.log.Printf("[ERROR] Cannot execute init query:\n%s\n%s\n",
				q,
				err.Error())
			if rbErr := tx.Rollback(); rbErr != nil {
				db.log.Printf("[CANTHAPPEN] Cannot even roll back transaction: %s\n",
					rbErr.Error())
			}
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		db.log.Printf("[CANTHAPPEN] Failed to commit init transaction: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (db *Database) initialize() error

// Close closes the database connection.
func (db *Database) Close() error {
	if db.tx != nil {
		if err := db.tx.Rollback(); err != nil {
			db.log.Printf("[CRITICAL] Cannot roll back pending transaction: %s\n",
				err.Error())
			return err
		}
		db.tx = nil
	}

	for key, stmt := range db.stmtTable {
		if err := stmt.Close(); err != nil {
			db.log.Printf("[CRITICAL] Cannot close statement handle %s: %s\n",
				key,
				err.Error())
			return err
		}
		delete(db.stmtTable, key)
	}

	if err := db.db.Close(); err != nil {
		db.log.Printf("[CRITICAL] Cannot close database: %s\n",
			err.Error())
		return err
	}

	db.db = nil
	return nil
} // func (db *Database) Close() error

func (db *Database) getQuery(id query.ID) (*sql.Stmt, error) {
	var (
		stmt *sql.Stmt
		ok   bool
		err  error
	)

	if stmt, ok = db.stmtTable[id]; ok {
		return stmt, nil
	}

PREPARE_QUERY:
	if stmt, err = db.db.Prepare(dbQueries[id]); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto PREPARE_QUERY
		}

		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n%s\n",
			id,
			err.Error(),
			dbQueries[id])
		return nil, err
	}

	db.stmtTable[id] = stmt
	return stmt, nil
} // func (db *Database) getQuery(id query.ID) (*sql.Stmt, error)

// Begin begins an explicit database transaction.
// Only one transaction can be active at any given time!
func (db *Database) Begin() error {
	var (
		err error
		tx  *sql.Tx
	)

	if db.tx != nil {
		var msg = "Cannot begin transaction: a transaction is already in progress"
		db.log.Printf("[ERROR] %s\n", msg)
		return fmt.Errorf("%s", msg)
	}

BEGIN_TX:
	for {
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				continue BEGIN_TX
			}

			db.log.Printf("[ERROR] Cannot begin transaction: %s\n",
				err.Error())
			return err
		}
		break
	}

	db.tx = tx
	return nil
} // func (db *Database) Begin() error

// Rollback aborts the active transaction.
func (db *Database) Rollback() error {
	if db.tx == nil {
		var msg = "Cannot roll back transaction: no transaction is active"
		db.log.Printf("[ERROR] %s\n", msg)
		return fmt.Errorf("%s", msg)
	} else if err := db.tx.Rollback(); err != nil {
		var msg = fmt.Sprintf("Cannot roll back transaction: %s",
			err.Error())
		db.log.Printf("[ERROR] %s\n", msg)
		return fmt.Errorf("%s", msg)
	}

	db.tx = nil
	return nil
} // func (db *Database) Rollback() error

// Commit ends the active transaction.
func (db *Database) Commit() error {
	if db.tx == nil {
		var msg = "Cannot commit transaction: no transaction is active"
		db.log.Printf("[ERROR] %s\n", msg)
		return fmt.Errorf("%s", msg)
	} else if err := db.tx.Commit(); err != nil {
		var msg = fmt.Sprintf("Cannot commit transaction: %s",
			err.Error())
		db.log.Printf("[ERROR] %s\n", msg)
		return fmt.Errorf("%s", msg)
	}

	db.tx = nil
	return nil
} // func (db *Database) Commit() error

// StateSet stores the given value under the given key, overwriting any
// previous value.
func (db *Database) StateSet(key, value string) error {
	const qid query.ID = query.StateSet
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var now = time.Now().Unix()

EXEC_QUERY:
	if _, err = stmt.Exec(key, value, now); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot set state %q to %q: %s\n",
			key,
			value,
			err.Error())
		return err
	}

	return nil
} // func (db *Database) StateSet(key, value string) error

// StateGet looks up the value stored under the given key.
// The second return value tells whether the key was present at all.
func (db *Database) StateGet(key string) (string, bool, error) {
	const qid query.ID = query.StateGet
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return "", false, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(key); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query state %q: %s\n",
			key,
			err.Error())
		return "", false, err
	}

	defer rows.Close() // nolint: errcheck

	if rows.Next() {
		var (
			value   string
			changed int64
		)

		if err = rows.Scan(&value, &changed); err != nil {
			db.log.Printf("[ERROR] Cannot scan row for state %q: %s\n",
				key,
				err.Error())
			return "", false, err
		}

		return value, true, nil
	}

	return "", false, nil
} // func (db *Database) StateGet(key string) (string, bool, error)

// StateDelete removes the given key from the store. Deleting a key
// that does not exist is not an error.
func (db *Database) StateDelete(key string) error {
	const qid query.ID = query.StateDelete
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if _, err = stmt.Exec(key); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot delete state %q: %s\n",
			key,
			err.Error())
		return err
	}

	return nil
} // func (db *Database) StateDelete(key string) error

// StateGetAll returns all key-value pairs in the store.
func (db *Database) StateGetAll() (map[string]string, error) {
	const qid query.ID = query.StateGetAll
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query all state: %s\n",
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	var state = make(map[string]string)

	for rows.Next() {
		var (
			key, value string
			changed    int64
		)

		if err = rows.Scan(&key, &value, &changed); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		state[key] = value
	}

	return state, nil
} // func (db *Database) StateGetAll() (map[string]string, error)
