// /home/krylon/go/src/github.com/blicero/lethe/database/query/query.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 02. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-03-19 16:44:10 krylon>

//go:generate stringer -type=ID

// Package query provides symbolic constants for identifying SQL queries.
package query

type ID uint8

const (
	StateGet ID = iota
	StateSet
	StateDelete
	StateGetAll
)
