// /home/wahid/go/src/github.com/wahid/muezzin/objects/alert.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-24 19:41:27 wahid>

package objects

import (
	"fmt"
	"time"
)

//go:generate ffjson alert.go

// Alert is one pending notification for one Prayer. The UUID doubles as
// the cancellation handle: it identifies both the in-memory timer and
// the persisted row, so a disarm can find and kill either.
type Alert struct {
	ID     int64
	Prayer string
	Time   Clock
	FireAt time.Time
	UUID   string
	Silent bool
}

// Due returns the instant the Alert is supposed to fire.
func (a *Alert) Due() time.Time {
	return a.FireAt
} // func (a *Alert) Due() time.Time

// IsDue returns true once the Alert's fire instant has passed.
func (a *Alert) IsDue() bool {
	return !a.FireAt.After(time.Now())
} // func (a *Alert) IsDue() bool

// Payload returns the title and body to display to the user.
func (a *Alert) Payload() (string, string) {
	return a.Prayer,
		fmt.Sprintf("%s is at %s",
			a.Prayer,
			a.Time)
} // func (a *Alert) Payload() (string, string)

// Quiet returns true if the Alert should be delivered without sound.
func (a *Alert) Quiet() bool {
	return a.Silent
} // func (a *Alert) Quiet() bool
