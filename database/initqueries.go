// /home/wahid/go/src/github.com/wahid/muezzin/database/initqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-19 18:02:13 wahid>

package database

var initQueries = []string{
	`
CREATE TABLE setting (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)
`,
	`
CREATE TABLE alert (
    id      INTEGER PRIMARY KEY,
    prayer  TEXT NOT NULL,
    ptime   INTEGER NOT NULL,
    fire_at INTEGER NOT NULL,
    uuid    TEXT UNIQUE NOT NULL,
    silent  INTEGER NOT NULL DEFAULT 0,
    CHECK (ptime BETWEEN 0 AND 1439)
)
`,
	"CREATE INDEX alert_fire_idx ON alert (fire_at)",
	"CREATE INDEX alert_uuid_idx ON alert (uuid)",
}
