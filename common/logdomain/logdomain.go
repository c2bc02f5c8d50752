// /home/wahid/go/src/github.com/wahid/muezzin/common/logdomain/logdomain.go
// -*- mode: go; coding: utf-8; -*-
// Created on 11. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-19 21:14:32 wahid>

// Package logdomain provides symbolic constants to identify the various
// subsystems of the application that need to do logging.
package logdomain

// ID identifies a log source.
type ID uint8

// These constants identify the various logging domains.
const (
	Common ID = iota
	Backend
	Client
	Database
	GUI
	TimeSource
)

func (id ID) String() string {
	switch id {
	case Common:
		return "Common"
	case Backend:
		return "Backend"
	case Client:
		return "Client"
	case Database:
		return "Database"
	case GUI:
		return "GUI"
	case TimeSource:
		return "TimeSource"
	default:
		return "Unknown Log Source"
	}
} // func (id ID) String() string

// AllDomains returns a slice of all the known log sources.
func AllDomains() []ID {
	return []ID{
		Common,
		Backend,
		Client,
		Database,
		GUI,
		TimeSource,
	}
} // func AllDomains() []ID
