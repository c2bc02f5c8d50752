// /home/wahid/go/src/github.com/wahid/muezzin/objects/response.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-20 20:36:02 wahid>

package objects

//go:generate ffjson response.go

// Response is what the backend sends to a client after processing a request.
type Response struct {
	ID      int64
	Status  bool
	Message string
}

// NextInfo describes the upcoming Prayer for the countdown display.
type NextInfo struct {
	Name         string
	MinutesUntil int
	Display      string
}
