// /home/krylon/go/src/github.com/blicero/lethe/objects/profiles.go
// -*- mode: go; coding: utf-8; -*-
// Created on 22. 02. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-19 18:03:25 krylon>

package objects

import (
	"time"

	"github.com/blicero/lethe/objects/mode"
)

// DefaultProfiles returns the stock activation Profiles, one per Mode.
// The message pools are cosmetic, the cadences are what matter.
func DefaultProfiles() map[mode.Mode]Profile {
	return map[mode.Mode]Profile{
		mode.Caring: Profile{
			BatchSize:       12,
			IntervalSeconds: 1800,
			LeadSeconds:     5,
			Duration:        0,
			Title:           "Still caring",
			Messages: []string{
				"You have been caring for a while now. Keep it up!",
				"Caring suits you.",
				"The world is a little better for your caring.",
			},
		},
		mode.DoNotCare: Profile{
			BatchSize:       30,
			IntervalSeconds: 120,
			LeadSeconds:     1,
			Duration:        time.Hour,
			Title:           "Not caring",
			Messages: []string{
				"You are currently not caring. Carry on.",
				"Still not caring. How does it feel?",
				"Reminder: you do not care.",
				"Whatever it is, it can wait.",
			},
		},
		mode.Focus: Profile{
			BatchSize:       5,
			IntervalSeconds: 300,
			LeadSeconds:     1,
			Duration:        time.Minute * 25,
			Title:           "Focus",
			Messages: []string{
				"Eyes on the prize.",
				"Still focused? Good.",
				"Distractions are for later.",
			},
		},
	}
} // func DefaultProfiles() map[mode.Mode]Profile
