// /home/wahid/go/src/github.com/wahid/muezzin/database/database.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-25 21:11:36 wahid>

// Package database persists the user's notification settings and the
// set of currently armed alerts across restarts of the daemon.
package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/blicero/krylib"
	_ "github.com/mattn/go-sqlite3" // Import the database driver
	"github.com/pquerna/ffjson/ffjson"
	"github.com/wahid/muezzin/common"
	"github.com/wahid/muezzin/common/logdomain"
	"github.com/wahid/muezzin/database/query"
	"github.com/wahid/muezzin/objects"
)

// settingsKey is the key under which the Settings blob is stored.
const settingsKey = "notifications"

var (
	openLock sync.Mutex
	idCnt    int64
)

// ErrTxInProgress indicates that an attempt to initiate a transaction
// failed because there is already one in progress.
var ErrTxInProgress = fmt.Errorf("A Transaction is already in progress")

// ErrNoTxInProgress indicates that an attempt was made to finish a
// transaction when none was active.
var ErrNoTxInProgress = fmt.Errorf("There is no transaction in progress")

var retryPat = regexp.MustCompile("(?i)database is (?:locked|busy)")

// worthARetry returns true if an error returned from the database
// is likely to be temporary, i.e. if the operation is worth repeating.
func worthARetry(e error) bool {
	return retryPat.MatchString(e.Error())
} // func worthARetry(e error) bool

// retryDelay is the amount of time we wait before we repeat a database
// operation that failed due to a transient error.
const retryDelay = 25 * time.Millisecond

func waitForRetry() {
	time.Sleep(retryDelay)
} // func waitForRetry()

// Database is a wrapper around the connection to the SQLite database,
// including a cache of prepared statements.
type Database struct {
	id        int64
	db        *sql.DB
	tx        *sql.Tx
	log       *log.Logger
	path      string
	stmtTable map[query.ID]*sql.Stmt
}

// Open opens a connection to the database at the given location.
// If the database does not exist, yet, it is created and initialized.
func Open(path string) (*Database, error) {
	var (
		err      error
		dbExists bool
		db       = &Database{
			path:      path,
			stmtTable: make(map[query.ID]*sql.Stmt),
		}
	)

	openLock.Lock()
	defer openLock.Unlock()
	idCnt++
	db.id = idCnt

	if db.log, err = common.GetLogger(logdomain.Database); err != nil {
		return nil, err
	}

	var connstring = fmt.Sprintf("%s?_locking=NORMAL&_journal=WAL&_fk=1&recursive_triggers=0",
		path)

	if dbExists, err = krylib.Fexists(path); err != nil {
		db.log.Printf("[ERROR] Failed to check if database file %s exists: %s\n",
			path,
			err.Error())
		return nil, err
	} else if db.db, err = sql.Open("sqlite3", connstring); err != nil {
		db.log.Printf("[ERROR] Failed to open %s: %s\n",
			path,
			err.Error())
		return nil, err
	}

	if !dbExists {
		if err = db.initialize(); err != nil {
			var e2 error
			if e2 = db.db.Close(); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to close database: %s\n",
					e2.Error())
				return nil, e2
			} else if e2 = os.Remove(path); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to remove database file %s: %s\n",
					db.path,
					e2.Error())
			}
			return nil, err
		}
		db.log.Printf("[INFO] Database at %s has been initialized\n",
			path)
	}

	return db, nil
} // func Open(path string) (*Database, error)

func (db *Database) initialize() error {
	var err error
	var tx *sql.Tx

	if tx, err = db.db.Begin(); err != nil {
		db.log.Printf("[ERROR] Cannot begin transaction: %s\n",
			err.Error())
		return err
	}

	for _, q := range initQueries {
		db.log.Printf("[TRACE] Execute init query:\n%s\n",
			q)
		if _, err = tx.Exec(q); err != nil {
			db.log.Printf("[ERROR] Cannot execute init query: %s\n%s\n",
				err.Error(),
				q)
			if rbErr := tx.Rollback(); rbErr != nil {
				db.log.Printf("[CANTHAPPEN] Cannot rollback transaction: %s\n",
					rbErr.Error())
				return rbErr
			}
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		db.log.Printf("[CANTHAPPEN] Failed to commit init transaction: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (db *Database) initialize() error

// Close closes the database.
// If there is a pending transaction, it is rolled back.
func (db *Database) Close() error {
	// I wonder if would make more snese to panic() if something goes
	// wrong here.
	var err error

	if db.tx != nil {
		if err = db.tx.Rollback(); err != nil {
			db.log.Printf("[CRITICAL] Cannot roll back pending transaction: %s\n",
				err.Error())
			return err
		}
		db.tx = nil
	}

	for key, stmt := range db.stmtTable {
		if err = stmt.Close(); err != nil {
			db.log.Printf("[CRITICAL] Cannot close statement handle %s: %s\n",
				key,
				err.Error())
			return err
		}
		delete(db.stmtTable, key)
	}

	if err = db.db.Close(); err != nil {
		db.log.Printf("[CRITICAL] Cannot close database: %s\n",
			err.Error())
	}

	db.db = nil
	return nil
} // func (db *Database) Close() error

func (db *Database) getQuery(id query.ID) (*sql.Stmt, error) {
	var (
		stmt  *sql.Stmt
		found bool
		err   error
	)

	if stmt, found = db.stmtTable[id]; found {
		return stmt, nil
	}

PREPARE_QUERY:
	if stmt, err = db.db.Prepare(dbQueries[id]); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto PREPARE_QUERY
		}

		db.log.Printf("[ERROR] Cannot parse query %s: %s\n%s\n",
			id,
			err.Error(),
			dbQueries[id])
		return nil, err
	}

	db.stmtTable[id] = stmt

	return stmt, nil
} // func (db *Database) getQuery(query.ID) (*sql.Stmt, error)

// Begin begins an explicit transaction.
func (db *Database) Begin() error {
	var err error

	if db.tx != nil {
		db.log.Printf("[ERROR] Cannot begin transaction: %s\n",
			ErrTxInProgress.Error())
		return ErrTxInProgress
	}

BEGIN_TX:
	for db.tx == nil {
		if db.tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				continue BEGIN_TX
			} else {
				db.log.Printf("[ERROR] Failed to start transaction: %s\n",
					err.Error())
				return err
			}
		}
	}

	return nil
} // func (db *Database) Begin() error

// Rollback terminates a pending transaction, undoing any changes made
// as part of it.
func (db *Database) Rollback() error {
	var err error

	if db.tx == nil {
		return ErrNoTxInProgress
	} else if err = db.tx.Rollback(); err != nil {
		return fmt.Errorf("Cannot roll back database transaction: %s",
			err.Error())
	}

	db.tx = nil

	return nil
} // func (db *Database) Rollback() error

// Commit ends the active transaction, making any changes made as part
// of it permanent.
func (db *Database) Commit() error {
	var err error

	if db.tx == nil {
		return ErrNoTxInProgress
	} else if err = db.tx.Commit(); err != nil {
		return fmt.Errorf("Cannot commit transaction: %s",
			err.Error())
	}

	db.tx = nil

	return nil
} // func (db *Database) Commit() error

// SettingsGet loads the user's notification Settings. If none have been
// saved, yet, the defaults are returned; that is not an error.
func (db *Database) SettingsGet() (*objects.Settings, error) {
	const qid query.ID = query.SettingGet
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(settingsKey); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot load Settings: %s\n",
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	if !rows.Next() {
		db.log.Println("[INFO] No Settings found in database, using defaults")
		return objects.DefaultSettings(), nil
	}

	var (
		blob string
		s    objects.Settings
	)

	if err = rows.Scan(&blob); err != nil {
		db.log.Printf("[ERROR] Cannot scan Settings row: %s\n",
			err.Error())
		return nil, err
	} else if err = ffjson.Unmarshal([]byte(blob), &s); err != nil {
		db.log.Printf("[ERROR] Cannot de-serialize Settings: %s\n%s\n",
			err.Error(),
			blob)
		return nil, err
	}

	return &s, nil
} // func (db *Database) SettingsGet() (*objects.Settings, error)

// SettingsSet saves the user's notification Settings.
func (db *Database) SettingsSet(s *objects.Settings) error {
	const qid query.ID = query.SettingSet
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
		blob   []byte
	)

	if blob, err = ffjson.Marshal(s); err != nil {
		db.log.Printf("[ERROR] Cannot serialize Settings: %s\n",
			err.Error())
		return err
	}

	defer ffjson.Pool(blob)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	}

	if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Cannot start ad-hoc transaction: %s\n",
				err.Error())
			return err
		}

		defer func() {
			var e2 error
			if status {
				if e2 = tx.Commit(); e2 != nil {
					db.log.Printf("[ERROR] Cannot commit ad-hoc transaction: %s\n",
						e2.Error())
				}
			} else if e2 = tx.Rollback(); e2 != nil {
				db.log.Printf("[ERROR] Cannot roll back ad-hoc transaction: %s\n",
					e2.Error())
			}
		}()
	}

	stmt = tx.Stmt(stmt)

EXEC_QUERY:
	if _, err = stmt.Exec(settingsKey, string(blob)); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot save Settings: %s\n",
			err.Error())
		return err
	}

	status = true
	return nil
} // func (db *Database) SettingsSet(s *objects.Settings) error

// AlertAdd adds one armed Alert to the persisted set.
func (db *Database) AlertAdd(a *objects.Alert) error {
	const qid query.ID = query.AlertAdd
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	}

	if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Cannot start ad-hoc transaction: %s\n",
				err.Error())
			return err
		}

		defer func() {
			var e2 error
			if status {
				if e2 = tx.Commit(); e2 != nil {
					db.log.Printf("[ERROR] Cannot commit ad-hoc transaction: %s\n",
						e2.Error())
				}
			} else if e2 = tx.Rollback(); e2 != nil {
				db.log.Printf("[ERROR] Cannot roll back ad-hoc transaction: %s\n",
					e2.Error())
			}
		}()
	}

	stmt = tx.Stmt(stmt)

	var res sql.Result

EXEC_QUERY:
	if res, err = stmt.Exec(a.Prayer, a.Time.Minutes(), a.FireAt.Unix(), a.UUID, a.Silent); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot add Alert for %s: %s\n",
			a.Prayer,
			err.Error())
		return err
	}

	if a.ID, err = res.LastInsertId(); err != nil {
		db.log.Printf("[ERROR] Cannot get ID of new Alert: %s\n",
			err.Error())
		return err
	}

	status = true
	return nil
} // func (db *Database) AlertAdd(a *objects.Alert) error

// AlertGetAll loads the complete persisted set of armed Alerts.
func (db *Database) AlertGetAll() ([]objects.Alert, error) {
	const qid query.ID = query.AlertGetAll
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot load Alerts: %s\n",
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	var alerts = make([]objects.Alert, 0, 8)

	for rows.Next() {
		var (
			a            objects.Alert
			ptime, stamp int64
		)

		if err = rows.Scan(&a.ID, &a.Prayer, &ptime, &stamp, &a.UUID, &a.Silent); err != nil {
			db.log.Printf("[ERROR] Cannot scan Alert row: %s\n",
				err.Error())
			return nil, err
		}

		a.Time = objects.Clock(ptime)
		a.FireAt = time.Unix(stamp, 0)

		alerts = append(alerts, a)
	}

	return alerts, nil
} // func (db *Database) AlertGetAll() ([]objects.Alert, error)

// AlertDelete removes a single Alert, identified by its UUID handle.
// Deleting an Alert that is already gone is not an error.
func (db *Database) AlertDelete(uuid string) error {
	const qid query.ID = query.AlertDelete
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	}

	if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Cannot start ad-hoc transaction: %s\n",
				err.Error())
			return err
		}

		defer func() {
			var e2 error
			if status {
				if e2 = tx.Commit(); e2 != nil {
					db.log.Printf("[ERROR] Cannot commit ad-hoc transaction: %s\n",
						e2.Error())
				}
			} else if e2 = tx.Rollback(); e2 != nil {
				db.log.Printf("[ERROR] Cannot roll back ad-hoc transaction: %s\n",
					e2.Error())
			}
		}()
	}

	stmt = tx.Stmt(stmt)

EXEC_QUERY:
	if _, err = stmt.Exec(uuid); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot delete Alert %s: %s\n",
			uuid,
			err.Error())
		return err
	}

	status = true
	return nil
} // func (db *Database) AlertDelete(uuid string) error

// AlertClear removes the entire persisted set of armed Alerts.
// Clearing an empty set is not an error.
func (db *Database) AlertClear() error {
	const qid query.ID = query.AlertClear
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	}

	if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Cannot start ad-hoc transaction: %s\n",
				err.Error())
			return err
		}

		defer func() {
			var e2 error
			if status {
				if e2 = tx.Commit(); e2 != nil {
					db.log.Printf("[ERROR] Cannot commit ad-hoc transaction: %s\n",
						e2.Error())
				}
			} else if e2 = tx.Rollback(); e2 != nil {
				db.log.Printf("[ERROR] Cannot roll back ad-hoc transaction: %s\n",
					e2.Error())
			}
		}()
	}

	stmt = tx.Stmt(stmt)

EXEC_QUERY:
	if _, err = stmt.Exec(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot clear Alerts: %s\n",
			err.Error())
		return err
	}

	status = true
	return nil
} // func (db *Database) AlertClear() error
