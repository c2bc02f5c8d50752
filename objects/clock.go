// /home/wahid/go/src/github.com/wahid/muezzin/objects/clock.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-22 17:48:09 wahid>

package objects

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the number of minutes in one day. Duh.
const MinutesPerDay = 1440

// ErrMalformedTime indicates that a clock string could not be parsed.
var ErrMalformedTime = errors.New("malformed clock string")

// Clock is a time of day, expressed as minutes elapsed since midnight.
// It carries no date and no timezone; those are supplied by whoever
// turns a Clock into an absolute point in time.
type Clock int16

var clockPat = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})\s*([AP]M)$`)

// ParseClock parses a clock string in 12-hour notation ("7:05 AM",
// "12:30 PM"). The suffix is matched case-insensitively; 12 AM is
// midnight, 12 PM is noon.
func ParseClock(s string) (Clock, error) {
	var match []string

	if match = clockPat.FindStringSubmatch(strings.TrimSpace(s)); match == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}

	var (
		hour, minute int
		err          error
	)

	if hour, err = strconv.Atoi(match[1]); err != nil {
		return 0, fmt.Errorf("%w: %q (%s)", ErrMalformedTime, s, err.Error())
	} else if minute, err = strconv.Atoi(match[2]); err != nil {
		return 0, fmt.Errorf("%w: %q (%s)", ErrMalformedTime, s, err.Error())
	} else if hour < 1 || hour > 12 {
		return 0, fmt.Errorf("%w: %q (hour must be 1 - 12)", ErrMalformedTime, s)
	} else if minute > 59 {
		return 0, fmt.Errorf("%w: %q (minute must be 0 - 59)", ErrMalformedTime, s)
	}

	if hour == 12 {
		hour = 0
	}

	if strings.EqualFold(match[3], "PM") {
		hour += 12
	}

	return Clock(hour*60 + minute), nil
} // func ParseClock(s string) (Clock, error)

// ClockFromParts creates a Clock from an hour and a minute in 24-hour
// notation.
func ClockFromParts(hour, minute int) (Clock, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrMalformedTime, hour, minute)
	}

	return Clock(hour*60 + minute), nil
} // func ClockFromParts(hour, minute int) (Clock, error)

// ClockOf returns the Clock corresponding to the given point in time,
// in that point's location.
func ClockOf(t time.Time) Clock {
	return Clock(t.Hour()*60 + t.Minute())
} // func ClockOf(t time.Time) Clock

// Minutes returns the Clock's offset from midnight in minutes.
func (c Clock) Minutes() int {
	return int(c)
} // func (c Clock) Minutes() int

// Hour returns the Clock's hour in 24-hour notation.
func (c Clock) Hour() int {
	return int(c) / 60
} // func (c Clock) Hour() int

// Minute returns the minute within the Clock's hour.
func (c Clock) Minute() int {
	return int(c) % 60
} // func (c Clock) Minute() int

// String renders the Clock in its canonical form, 12-hour notation with
// a zero-padded minute and an upper-case suffix, e.g. "6:05 PM".
func (c Clock) String() string {
	var (
		hour   = c.Hour()
		suffix = "AM"
	)

	if hour >= 12 {
		suffix = "PM"
		hour -= 12
	}

	if hour == 0 {
		hour = 12
	}

	return fmt.Sprintf("%d:%02d %s",
		hour,
		c.Minute(),
		suffix)
} // func (c Clock) String() string
