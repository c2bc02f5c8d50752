// /home/wahid/go/src/github.com/wahid/muezzin/objects/02_daytab_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 13. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-24 21:17:29 wahid>

package objects

import (
	"testing"

	"github.com/wahid/muezzin/objects/lead"
)

func mkClock(t *testing.T, s string) Clock {
	t.Helper()

	var (
		err error
		cl  Clock
	)

	if cl, err = ParseClock(s); err != nil {
		t.Fatalf("Cannot parse clock string %q: %s",
			s,
			err.Error())
	}

	return cl
} // func mkClock(t *testing.T, s string) Clock

func mkDay(t *testing.T) Daytab {
	t.Helper()

	var (
		err error
		day Daytab
	)

	if day, err = NewDaytab([]Prayer{
		Prayer{Name: "Fajr", Time: mkClock(t, "5:30 AM")},
		Prayer{Name: "Dhuhr", Time: mkClock(t, "12:15 PM")},
		Prayer{Name: "Asr", Time: mkClock(t, "3:45 PM")},
		Prayer{Name: "Maghrib", Time: mkClock(t, "6:20 PM")},
		Prayer{Name: "Isha", Time: mkClock(t, "7:50 PM")},
	}); err != nil {
		t.Fatalf("Cannot create Daytab: %s", err.Error())
	}

	return day
} // func mkDay(t *testing.T) Daytab

func TestNewDaytab(t *testing.T) {
	var (
		err error
		day Daytab
	)

	// The constructor is expected to sort.
	if day, err = NewDaytab([]Prayer{
		Prayer{Name: "Isha", Time: mkClock(t, "7:50 PM")},
		Prayer{Name: "Fajr", Time: mkClock(t, "5:30 AM")},
	}); err != nil {
		t.Fatalf("Cannot create Daytab: %s", err.Error())
	} else if day[0].Name != "Fajr" {
		t.Errorf("First Prayer of the day should be Fajr, not %s",
			day[0].Name)
	}

	if _, err = NewDaytab(nil); err == nil {
		t.Error("Creating a Daytab from an empty list should fail")
	}

	if _, err = NewDaytab([]Prayer{
		Prayer{Name: "Fajr", Time: mkClock(t, "5:30 AM")},
		Prayer{Name: "Fajr", Time: mkClock(t, "5:45 AM")},
	}); err == nil {
		t.Error("Creating a Daytab with a duplicate name should fail")
	}
} // func TestNewDaytab(t *testing.T)

func TestNext(t *testing.T) {
	type testCase struct {
		now        string
		expectName string
		expectMin  int
	}

	var day = mkDay(t)

	var cases = []testCase{
		testCase{now: "1:00 PM", expectName: "Asr", expectMin: 165},
		testCase{now: "11:50 PM", expectName: "Fajr", expectMin: 340},
		testCase{now: "12:00 AM", expectName: "Fajr", expectMin: 330},
		// A Prayer whose time equals now is already past.
		testCase{now: "12:15 PM", expectName: "Asr", expectMin: 210},
		testCase{now: "7:50 PM", expectName: "Fajr", expectMin: 580},
		testCase{now: "5:29 AM", expectName: "Fajr", expectMin: 1},
	}

	for _, c := range cases {
		var (
			err error
			p   Prayer
			min int
			now = mkClock(t, c.now)
		)

		if p, min, err = day.Next(now); err != nil {
			t.Errorf("Next(%s) failed: %s",
				c.now,
				err.Error())
			continue
		}

		if p.Name != c.expectName {
			t.Errorf("Next(%s) returned %s (expected %s)",
				c.now,
				p.Name,
				c.expectName)
		}

		if min != c.expectMin {
			t.Errorf("Next(%s) returned %d minutes (expected %d)",
				c.now,
				min,
				c.expectMin)
		}

		if min < 1 || min > MinutesPerDay {
			t.Errorf("Next(%s) returned %d minutes, outside [1, %d]",
				c.now,
				min,
				MinutesPerDay)
		}
	}

	var empty Daytab

	if _, _, err := empty.Next(0); err == nil {
		t.Error("Next on an empty Daytab should fail")
	}
} // func TestNext(t *testing.T)

// Next must be referentially transparent, the countdown relies on that.
func TestNextIsPure(t *testing.T) {
	var (
		day = mkDay(t)
		now = mkClock(t, "1:00 PM")
	)

	p1, m1, e1 := day.Next(now)
	p2, m2, e2 := day.Next(now)

	if p1 != p2 || m1 != m2 || e1 != e2 {
		t.Errorf("Two identical calls to Next disagree: (%v, %d) vs (%v, %d)",
			p1, m1,
			p2, m2)
	}
} // func TestNextIsPure(t *testing.T)

func TestFireTimes(t *testing.T) {
	var (
		day = mkDay(t)
		s   = DefaultSettings()
	)

	// Lead of 15 minutes, only Maghrib enabled.
	s.Lead = lead.Min15
	for name := range s.Prayers {
		s.Prayers[name] = name == "Maghrib"
	}

	var fts = day.FireTimes(s)

	if len(fts) != 1 {
		t.Fatalf("Expected exactly 1 fire time, got %d", len(fts))
	} else if fts[0].Name != "Maghrib" {
		t.Fatalf("Expected fire time for Maghrib, got %s", fts[0].Name)
	} else if fts[0].At.Minutes() != 1085 {
		t.Errorf("Maghrib alert should fire at minute 1085 (6:05 PM), got %d (%s)",
			fts[0].At.Minutes(),
			fts[0].At)
	} else if fts[0].DayOffset != 0 {
		t.Errorf("Maghrib alert should fire on the same day, offset is %d",
			fts[0].DayOffset)
	}
} // func TestFireTimes(t *testing.T)

// A lead time that reaches past midnight must wrap into the previous day.
func TestFireTimesWrap(t *testing.T) {
	var (
		err error
		day Daytab
		s   = DefaultSettings()
	)

	if day, err = NewDaytab([]Prayer{
		Prayer{Name: "Fajr", Time: mkClock(t, "12:10 AM")},
	}); err != nil {
		t.Fatalf("Cannot create Daytab: %s", err.Error())
	}

	s.Lead = lead.Min30
	s.Prayers = map[string]bool{"Fajr": true}

	var fts = day.FireTimes(s)

	if len(fts) != 1 {
		t.Fatalf("Expected exactly 1 fire time, got %d", len(fts))
	} else if fts[0].DayOffset != -1 {
		t.Errorf("Fire time should wrap to the previous day, offset is %d",
			fts[0].DayOffset)
	} else if fts[0].At.Minutes() != 1420 {
		t.Errorf("Fire time should be minute 1420 of the previous day, got %d",
			fts[0].At.Minutes())
	}
} // func TestFireTimesWrap(t *testing.T)

// With a lead of zero the fire times are the prayer times themselves.
// Zero is not a user-selectable Lead, but the arithmetic must hold.
func TestFireTimesZeroLead(t *testing.T) {
	var (
		day = mkDay(t)
		s   = DefaultSettings()
	)

	s.Lead = 0

	var fts = day.FireTimes(s)

	if len(fts) != len(day) {
		t.Fatalf("Expected %d fire times, got %d",
			len(day),
			len(fts))
	}

	for i, ft := range fts {
		if ft.At != day[i].Time || ft.DayOffset != 0 {
			t.Errorf("Fire time for %s should equal its prayer time %s, got %s (offset %d)",
				ft.Name,
				day[i].Time,
				ft.At,
				ft.DayOffset)
		}
	}
} // func TestFireTimesZeroLead(t *testing.T)

func TestFormatCountdown(t *testing.T) {
	type testCase struct {
		minutes int
		expect  string
	}

	var cases = []testCase{
		testCase{minutes: 165, expect: "2h 45m"},
		testCase{minutes: 340, expect: "5h 40m"},
		testCase{minutes: 1, expect: "0h 1m"},
		testCase{minutes: 1440, expect: "24h 0m"},
	}

	for _, c := range cases {
		if res := FormatCountdown(c.minutes); res != c.expect {
			t.Errorf("FormatCountdown(%d) == %q (expected %q)",
				c.minutes,
				res,
				c.expect)
		}
	}
} // func TestFormatCountdown(t *testing.T)
