// /home/wahid/go/src/github.com/wahid/muezzin/objects/prayer.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-24 18:22:46 wahid>

package objects

import (
	"errors"
	"fmt"
	"sort"
)

//go:generate ffjson prayer.go

// PrayerNames lists the five daily prayers in chronological order.
var PrayerNames = []string{
	"Fajr",
	"Dhuhr",
	"Asr",
	"Maghrib",
	"Isha",
}

// ErrEmptyDaytab indicates that an operation was attempted on a Daytab
// that contains no Prayers. That is a bug in the caller, not a condition
// to paper over.
var ErrEmptyDaytab = errors.New("prayer table is empty")

// Prayer is one named event in the daily timeline.
type Prayer struct {
	Name string
	Time Clock
}

// Daytab is one day's timeline of Prayers, ordered by time, ascending.
// A new day gets a new Daytab; an existing one is never modified.
type Daytab []Prayer

// NewDaytab creates a Daytab from the given Prayers, sorting them by
// time. Prayer names must be unique within one day.
func NewDaytab(prayers []Prayer) (Daytab, error) {
	if len(prayers) == 0 {
		return nil, ErrEmptyDaytab
	}

	var (
		day  = make(Daytab, len(prayers))
		seen = make(map[string]bool, len(prayers))
	)

	copy(day, prayers)

	for _, p := range day {
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate prayer %q", p.Name)
		}
		seen[p.Name] = true
	}

	sort.Slice(day, func(i, j int) bool { return day[i].Time < day[j].Time })

	return day, nil
} // func NewDaytab(prayers []Prayer) (Daytab, error)

// Next returns the first Prayer whose time is strictly after now, plus
// the number of minutes until it. A Prayer whose time equals now is
// considered past. If no Prayer is left today, the first Prayer of the
// table is next, on the following day.
//
// The returned minute count is always in [1, 1440].
func (d Daytab) Next(now Clock) (Prayer, int, error) {
	if len(d) == 0 {
		return Prayer{}, 0, ErrEmptyDaytab
	}

	for _, p := range d {
		if p.Time > now {
			return p, p.Time.Minutes() - now.Minutes(), nil
		}
	}

	// Wrap around midnight to the first Prayer of the (next) day.
	var first = d[0]

	return first, MinutesPerDay - now.Minutes() + first.Time.Minutes(), nil
} // func (d Daytab) Next(now Clock) (Prayer, int, error)

// Get looks up a Prayer by name.
func (d Daytab) Get(name string) (Prayer, bool) {
	for _, p := range d {
		if p.Name == name {
			return p, true
		}
	}

	return Prayer{}, false
} // func (d Daytab) Get(name string) (Prayer, bool)

// FireTime is the instant an alert for one Prayer goes off, expressed
// as a time of day plus a day offset. DayOffset is -1 when subtracting
// the lead time wrapped past midnight into the previous day.
type FireTime struct {
	Name      string
	At        Clock
	DayOffset int
}

// FireTimes derives the alert instants for one day from the Daytab and
// the user's Settings: each enabled Prayer's time, moved back by the
// lead time. Prayers that are not enabled yield no FireTime at all.
func (d Daytab) FireTimes(s *Settings) []FireTime {
	var list = make([]FireTime, 0, len(d))

	for _, p := range d {
		if !s.Prayers[p.Name] {
			continue
		}

		var (
			ft  = FireTime{Name: p.Name}
			off = p.Time.Minutes() - s.Lead.Minutes()
		)

		if off < 0 {
			ft.DayOffset = -1
			ft.At = Clock(MinutesPerDay + off)
		} else {
			ft.At = Clock(off)
		}

		list = append(list, ft)
	}

	return list
} // func (d Daytab) FireTimes(s *Settings) []FireTime

// FormatCountdown renders a number of minutes the way the countdown
// display wants it, e.g. "2h 45m".
func FormatCountdown(minutes int) string {
	return fmt.Sprintf("%dh %dm",
		minutes/60,
		minutes%60)
} // func FormatCountdown(minutes int) string
