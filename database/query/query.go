// /home/wahid/go/src/github.com/wahid/muezzin/database/query/query.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-18 19:27:40 wahid>

// Package query provides symbolic constants for identifying SQL queries.
package query

// ID identifies one of the application's predefined SQL queries.
type ID uint8

const (
	SettingGet ID = iota
	SettingSet
	AlertAdd
	AlertGetAll
	AlertDelete
	AlertClear
)

func (id ID) String() string {
	switch id {
	case SettingGet:
		return "SettingGet"
	case SettingSet:
		return "SettingSet"
	case AlertAdd:
		return "AlertAdd"
	case AlertGetAll:
		return "AlertGetAll"
	case AlertDelete:
		return "AlertDelete"
	case AlertClear:
		return "AlertClear"
	default:
		return "Unknown Query"
	}
} // func (id ID) String() string
