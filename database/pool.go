// /home/krylon/go/src/github.com/blicero/lethe/database/pool.go
// -*- mode: go; coding: utf-8; -*-
// Created on 21. 02. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-08 16:26:40 krylon>

package database

import (
	"sync"

	"github.com/blicero/lethe/common"
)

// Pool is a simple pool of database connections. Get never blocks, if
// the pool is empty, a fresh connection is opened.
type Pool struct {
	lock sync.Mutex
	pool []*Database
}

// NewPool opens the given number of database connections and returns
// the newly created Pool.
func NewPool(cnt int) (*Pool, error) {
	var pool = &Pool{
		pool: make([]*Database, 0, cnt),
	}

	for i := 0; i < cnt; i++ {
		var (
			err error
			db  *Database
		)

		if db, err = Open(common.DbPath); err != nil {
			pool.Close() // nolint: errcheck
			return nil, err
		}

		pool.pool = append(pool.pool, db)
	}

	return pool, nil
} // func NewPool(cnt int) (*Pool, error)

// Get returns a database connection from the Pool.
// If the Pool is empty, a fresh connection is opened.
func (p *Pool) Get() *Database {
	p.lock.Lock()
	defer p.lock.Unlock()

	if len(p.pool) == 0 {
		var (
			err error
			db  *Database
		)

		if db, err = Open(common.DbPath); err != nil {
			return nil
		}

		return db
	}

	var db = p.pool[len(p.pool)-1]
	p.pool = p.pool[:len(p.pool)-1]

	return db
} // func (p *Pool) Get() *Database

// Put returns a database connection to the Pool.
func (p *Pool) Put(db *Database) {
	p.lock.Lock()
	p.pool = append(p.pool, db)
	p.lock.Unlock()
} // func (p *Pool) Put(db *Database)

// Close closes all connections currently in the Pool.
func (p *Pool) Close() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	var err error

	for _, db := range p.pool {
		if e := db.Close(); e != nil {
			err = e
		}
	}

	p.pool = p.pool[:0]
	return err
} // func (p *Pool) Close() error
