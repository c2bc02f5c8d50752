// /home/wahid/go/src/github.com/wahid/muezzin/database/dbqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-20 17:44:19 wahid>

package database

import "github.com/wahid/muezzin/database/query"

var dbQueries = map[query.ID]string{
	query.SettingGet: "SELECT value FROM setting WHERE key = ?",
	query.SettingSet: `
INSERT INTO setting (key, value)
VALUES              (  ?,     ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value
`,
	query.AlertAdd: `
INSERT INTO alert (prayer, ptime, fire_at, uuid, silent)
VALUES            (     ?,     ?,       ?,    ?,      ?)
`,
	query.AlertGetAll: `
SELECT
    id,
    prayer,
    ptime,
    fire_at,
    uuid,
    silent
FROM alert
ORDER BY fire_at, prayer
`,
	query.AlertDelete: "DELETE FROM alert WHERE uuid = ?",
	query.AlertClear:  "DELETE FROM alert",
}
