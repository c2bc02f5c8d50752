// /home/wahid/go/src/github.com/wahid/muezzin/objects/notification.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-13 22:07:40 wahid>

// Package objects provides the data types used by the application.
package objects

import "time"

// Notification is the common interface for items the user should be
// notified about.
type Notification interface {
	Due() time.Time
	IsDue() bool
	Payload() (string, string)
	Quiet() bool
}
