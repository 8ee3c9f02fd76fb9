// /home/krylon/go/src/github.com/blicero/lethe/objects/response.go
// -*- mode: go; coding: utf-8; -*-
// Created on 27. 02. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-11 19:36:02 krylon>

package objects

//go:generate ffjson response.go

// Response is what the backend sends to the frontend after processing
// a request. Payload carries endpoint-specific values (mode name,
// timer display value, pending counts, ...).
type Response struct {
	ID      int64
	Status  bool
	Message string
	Payload map[string]string
}
