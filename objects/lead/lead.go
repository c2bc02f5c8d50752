// /home/wahid/go/src/github.com/wahid/muezzin/objects/lead/lead.go
// -*- mode: go; coding: utf-8; -*-
// Created on 14. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-14 20:31:55 wahid>

// Package lead contains symbolic constants to specify how far ahead
// of a prayer its alert should fire.
package lead

import "fmt"

// Lead is the number of minutes between an alert firing and the prayer
// it announces.
type Lead int

// The lead times the user can choose from.
const (
	Min5  Lead = 5
	Min10 Lead = 10
	Min15 Lead = 15
	Min30 Lead = 30
)

// All lists the valid lead times in ascending order.
var All = []Lead{Min5, Min10, Min15, Min30}

// Minutes returns the Lead as a plain number of minutes.
func (l Lead) Minutes() int {
	return int(l)
} // func (l Lead) Minutes() int

// IsValid returns true if l is one of the supported lead times.
func (l Lead) IsValid() bool {
	switch l {
	case Min5, Min10, Min15, Min30:
		return true
	default:
		return false
	}
} // func (l Lead) IsValid() bool

// FromMinutes turns a number of minutes into a Lead, rejecting values
// that are not supported.
func FromMinutes(m int) (Lead, error) {
	var l = Lead(m)

	if !l.IsValid() {
		return 0, fmt.Errorf("invalid lead time %d", m)
	}

	return l, nil
} // func FromMinutes(m int) (Lead, error)

func (l Lead) String() string {
	return fmt.Sprintf("%d min", int(l))
} // func (l Lead) String() string
