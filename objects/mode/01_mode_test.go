// /home/krylon/go/src/github.com/blicero/lethe/objects/mode/01_mode_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 23. 02. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-12 20:11:28 krylon>

package mode

import "testing"

func TestParse(t *testing.T) {
	type testCase struct {
		input     string
		expect    Mode
		expectErr bool
	}

	var cases = []testCase{
		testCase{input: "Caring", expect: Caring},
		testCase{input: "caring", expect: Caring},
		testCase{input: "DoNotCare", expect: DoNotCare},
		testCase{input: "dnd", expect: DoNotCare},
		testCase{input: "Focus", expect: Focus},
		testCase{input: "wurstbrot", expectErr: true},
		testCase{input: "", expectErr: true},
	}

	for _, c := range cases {
		var (
			err error
			m   Mode
		)

		if m, err = Parse(c.input); err != nil {
			if !c.expectErr {
				t.Errorf("Cannot parse %q: %s",
					c.input,
					err.Error())
			}
		} else if c.expectErr {
			t.Errorf("Parsing %q should have failed, but yielded %s",
				c.input,
				m)
		} else if m != c.expect {
			t.Errorf("Parsing %q yielded %s (expected %s)",
				c.input,
				m,
				c.expect)
		}
	}
} // func TestParse(t *testing.T)

func TestCountdown(t *testing.T) {
	if Caring.Countdown() {
		t.Errorf("%s should not be a countdown Mode", Caring)
	}

	for _, m := range []Mode{DoNotCare, Focus} {
		if !m.Countdown() {
			t.Errorf("%s should be a countdown Mode", m)
		}
	}
} // func TestCountdown(t *testing.T)
