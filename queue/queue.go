// /home/krylon/go/src/github.com/blicero/lethe/queue/queue.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-19 20:31:58 krylon>

// Package queue abstracts the facility that holds pending reminder
// Requests and delivers them when they are due. The real thing talks
// to the desktop's notification service, the in-memory variant exists
// for testing.
//
// The queue holds at most objects.MaxPending Requests; beyond that,
// submissions are silently discarded, that is part of the contract.
package queue

import (
	"time"

	"github.com/blicero/lethe/objects"
)

// ActionCare is the action key attached to every delivered
// notification; invoking it means "I care now".
const ActionCare = "care-now"

// Action is an event coming back from a delivered notification,
// e.g. the user clicked the "I care now" button.
type Action struct {
	Identifier string
	ActionKey  string
	Timestamp  time.Time
}

// AuthStatus describes whether we are allowed to post notifications.
type AuthStatus uint8

const (
	AuthNotDetermined AuthStatus = iota
	AuthDenied
	AuthAuthorized
)

func (s AuthStatus) String() string {
	switch s {
	case AuthNotDetermined:
		return "NotDetermined"
	case AuthDenied:
		return "Denied"
	case AuthAuthorized:
		return "Authorized"
	default:
		return "Invalid"
	}
} // func (s AuthStatus) String() string

// Queue is the interface to the notification facility.
//
// Submissions are best-effort: once the pending limit is reached, or
// if authorization was denied, Submit quietly does nothing.
type Queue interface {
	Submit(req *objects.Request) error
	CancelPending(ids []string) error
	CancelAllPending() error
	CancelDelivered() error
	ListPending() ([]objects.Request, error)
	PendingCount() (int, error)
	SetBadge(n int) error
	BadgeCount() int
	Authorize() (bool, error)
	AuthStatus() AuthStatus
	Actions() <-chan Action
	Close() error
}
