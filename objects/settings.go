// /home/wahid/go/src/github.com/wahid/muezzin/objects/settings.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-21 19:55:12 wahid>

package objects

import (
	"fmt"

	"github.com/wahid/muezzin/objects/lead"
)

//go:generate ffjson settings.go

// Settings holds the user's notification preferences. They are owned by
// the backend Daemon and persisted in the database; every change to them
// forces a full disarm/re-arm cycle.
type Settings struct {
	Enabled bool
	Prayers map[string]bool
	Lead    lead.Lead
	Sound   bool
}

// DefaultSettings returns the Settings used when none have been
// persisted yet: notifications on for all five prayers, ten minutes
// ahead, with sound.
func DefaultSettings() *Settings {
	var s = &Settings{
		Enabled: true,
		Prayers: make(map[string]bool, len(PrayerNames)),
		Lead:    lead.Min10,
		Sound:   true,
	}

	for _, name := range PrayerNames {
		s.Prayers[name] = true
	}

	return s
} // func DefaultSettings() *Settings

// Validate checks the Settings for internal consistency.
func (s *Settings) Validate() error {
	if !s.Lead.IsValid() {
		return fmt.Errorf("invalid lead time %d", s.Lead)
	} else if s.Prayers == nil {
		return fmt.Errorf("prayer map is nil")
	}

	return nil
} // func (s *Settings) Validate() error

// Clone returns a deep copy of the Settings.
func (s *Settings) Clone() *Settings {
	var c = &Settings{
		Enabled: s.Enabled,
		Prayers: make(map[string]bool, len(s.Prayers)),
		Lead:    s.Lead,
		Sound:   s.Sound,
	}

	for name, on := range s.Prayers {
		c.Prayers[name] = on
	}

	return c
} // func (s *Settings) Clone() *Settings
