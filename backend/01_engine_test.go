// /home/wahid/go/src/github.com/wahid/muezzin/backend/01_engine_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 25. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-26 21:48:33 wahid>

package backend

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/wahid/muezzin/common"
	"github.com/wahid/muezzin/common/logdomain"
	"github.com/wahid/muezzin/database"
	"github.com/wahid/muezzin/objects"
	"github.com/wahid/muezzin/objects/lead"
)

var eng *Daemon

func TestMain(m *testing.M) {
	var baseDir = filepath.Join(
		os.TempDir(),
		fmt.Sprintf("muezzin_backend_test_%d", time.Now().Unix()))

	if err := common.SetBaseDir(baseDir); err != nil {
		fmt.Printf("Cannot set base directory to %s: %s\n",
			baseDir,
			err.Error())
		os.Exit(1)
	}

	var result = m.Run()

	os.RemoveAll(baseDir) // nolint: errcheck
	os.Exit(result)
} // func TestMain(m *testing.M)

// mkTestDaemon builds a Daemon with just the parts the engine needs.
// No DBus, no web server, no time source; the engine must work all the
// same.
func mkTestDaemon(t *testing.T) *Daemon {
	t.Helper()

	var (
		err error
		d   = &Daemon{
			active:   true,
			Queue:    make(chan objects.Notification, queueDepth),
			armed:    make(map[string]*pendingAlert),
			settings: objects.DefaultSettings(),
		}
	)

	if d.log, err = common.GetLogger(logdomain.Backend); err != nil {
		t.Fatalf("Cannot create Logger: %s", err.Error())
	} else if d.pool, err = database.NewPool(2); err != nil {
		t.Fatalf("Cannot create database pool: %s", err.Error())
	}

	return d
} // func mkTestDaemon(t *testing.T) *Daemon

// mkTestDay builds a timeline of five prayers, all comfortably in the
// future relative to now, so no timer goes off while the tests run.
func mkTestDay(t *testing.T) objects.Daytab {
	t.Helper()

	var (
		err     error
		now     = objects.ClockOf(time.Now()).Minutes()
		prayers = make([]objects.Prayer, 0, len(objects.PrayerNames))
	)

	for idx, name := range objects.PrayerNames {
		prayers = append(prayers, objects.Prayer{
			Name: name,
			Time: objects.Clock((now + 120 + idx*60) % objects.MinutesPerDay),
		})
	}

	var day objects.Daytab

	if day, err = objects.NewDaytab(prayers); err != nil {
		t.Fatalf("Cannot create Daytab: %s", err.Error())
	}

	return day
} // func mkTestDay(t *testing.T) objects.Daytab

func persistedAlertCnt(t *testing.T, d *Daemon) int {
	t.Helper()

	var (
		err    error
		alerts []objects.Alert
		db     = d.pool.Get()
	)
	defer d.pool.Put(db)

	if alerts, err = db.AlertGetAll(); err != nil {
		t.Fatalf("Cannot load persisted alerts: %s", err.Error())
	}

	return len(alerts)
} // func persistedAlertCnt(t *testing.T, d *Daemon) int

func TestEngineCreate(t *testing.T) {
	eng = mkTestDaemon(t)
} // func TestEngineCreate(t *testing.T)

func TestArm(t *testing.T) {
	if eng == nil {
		t.SkipNow()
	}

	var (
		err error
		day = mkTestDay(t)
		s   = objects.DefaultSettings()
	)

	if err = eng.Arm(day, s); err != nil {
		t.Fatalf("Cannot arm: %s", err.Error())
	}

	if cnt := eng.ArmedCount(); cnt != len(day) {
		t.Errorf("Expected %d armed alerts, got %d",
			len(day),
			cnt)
	}

	if cnt := persistedAlertCnt(t, eng); cnt != len(day) {
		t.Errorf("Expected %d persisted alerts, got %d",
			len(day),
			cnt)
	}
} // func TestArm(t *testing.T)

// Arming twice in a row must not leave duplicates behind.
func TestArmTwice(t *testing.T) {
	if eng == nil {
		t.SkipNow()
	}

	var (
		err error
		day = mkTestDay(t)
		s   = objects.DefaultSettings()
	)

	if err = eng.Arm(day, s); err != nil {
		t.Fatalf("Cannot arm a second time: %s", err.Error())
	}

	if cnt := eng.ArmedCount(); cnt != len(day) {
		t.Errorf("After arming twice, expected %d armed alerts, got %d",
			len(day),
			cnt)
	}

	if cnt := persistedAlertCnt(t, eng); cnt != len(day) {
		t.Errorf("After arming twice, expected %d persisted alerts, got %d",
			len(day),
			cnt)
	}
} // func TestArmTwice(t *testing.T)

// The countdown and the armed set must agree on what comes next.
func TestCountdownAgreesWithEngine(t *testing.T) {
	if eng == nil || eng.ArmedCount() == 0 {
		t.SkipNow()
	}

	var (
		err  error
		info objects.NextInfo
	)

	if info, err = eng.NextEvent(objects.ClockOf(time.Now())); err != nil {
		t.Fatalf("Cannot compute next prayer: %s", err.Error())
	}

	// Find the earliest armed alert; its prayer must be the one the
	// countdown shows, since all alerts were armed just now with the
	// same lead.
	eng.sched.Lock()
	var earliest *pendingAlert
	for _, p := range eng.armed {
		if earliest == nil || p.alert.FireAt.Before(earliest.alert.FireAt) {
			earliest = p
		}
	}
	eng.sched.Unlock()

	if earliest == nil {
		t.Fatal("No armed alert found")
	} else if earliest.alert.Prayer != info.Name {
		t.Errorf("Countdown says %s is next, earliest alert is for %s",
			info.Name,
			earliest.alert.Prayer)
	}
} // func TestCountdownAgreesWithEngine(t *testing.T)

func TestDisarm(t *testing.T) {
	if eng == nil {
		t.SkipNow()
	}

	var err error

	if err = eng.Disarm(); err != nil {
		t.Fatalf("Cannot disarm: %s", err.Error())
	}

	if cnt := eng.ArmedCount(); cnt != 0 {
		t.Errorf("After disarming, %d alerts are still armed", cnt)
	}

	if cnt := persistedAlertCnt(t, eng); cnt != 0 {
		t.Errorf("After disarming, %d alerts are still persisted", cnt)
	}

	// Disarming again must be harmless.
	if err = eng.Disarm(); err != nil {
		t.Errorf("Disarming twice should not fail: %s", err.Error())
	}
} // func TestDisarm(t *testing.T)

// With the master switch off, arming is a no-op.
func TestArmDisabled(t *testing.T) {
	if eng == nil {
		t.SkipNow()
	}

	var (
		err error
		day = mkTestDay(t)
		s   = objects.DefaultSettings()
	)

	s.Enabled = false

	if err = eng.Arm(day, s); err != nil {
		t.Fatalf("Cannot arm with notifications disabled: %s", err.Error())
	}

	if cnt := eng.ArmedCount(); cnt != 0 {
		t.Errorf("With notifications disabled, %d alerts were armed", cnt)
	}

	if cnt := persistedAlertCnt(t, eng); cnt != 0 {
		t.Errorf("With notifications disabled, %d alerts were persisted", cnt)
	}
} // func TestArmDisabled(t *testing.T)

// Only the enabled prayers get an alert.
func TestArmSubset(t *testing.T) {
	if eng == nil {
		t.SkipNow()
	}

	var (
		err error
		day = mkTestDay(t)
		s   = objects.DefaultSettings()
	)

	for name := range s.Prayers {
		s.Prayers[name] = name == "Maghrib" || name == "Isha"
	}

	if err = eng.Arm(day, s); err != nil {
		t.Fatalf("Cannot arm: %s", err.Error())
	}

	if cnt := eng.ArmedCount(); cnt != 2 {
		t.Errorf("Expected 2 armed alerts, got %d", cnt)
	}

	if err = eng.Disarm(); err != nil {
		t.Fatalf("Cannot disarm: %s", err.Error())
	}
} // func TestArmSubset(t *testing.T)

// However rapid settings changes interleave, the persisted settings
// and the armed set must come from the same call in the end.
func TestUpdateSettingsConcurrent(t *testing.T) {
	if eng == nil || len(eng.Daytab()) == 0 {
		t.SkipNow()
	}

	var wg sync.WaitGroup

	for _, l := range lead.All {
		wg.Add(1)
		go func(l lead.Lead) {
			defer wg.Done()

			var s = objects.DefaultSettings()
			s.Lead = l

			if err := eng.UpdateSettings(s); err != nil {
				t.Errorf("Cannot update Settings with lead %s: %s",
					l,
					err.Error())
			}
		}(l)
	}

	wg.Wait()

	var (
		err error
		per *objects.Settings
		db  = eng.pool.Get()
	)

	if per, err = db.SettingsGet(); err != nil {
		eng.pool.Put(db)
		t.Fatalf("Cannot load persisted Settings: %s", err.Error())
	}
	eng.pool.Put(db)

	if per.Lead != eng.Settings().Lead {
		t.Errorf("Persisted lead %s does not match the lead the engine armed with (%s)",
			per.Lead,
			eng.Settings().Lead)
	}

	if cnt := eng.ArmedCount(); cnt != len(objects.PrayerNames) {
		t.Errorf("Expected %d armed alerts after the dust settled, got %d",
			len(objects.PrayerNames),
			cnt)
	}
} // func TestUpdateSettingsConcurrent(t *testing.T)

// Rows left behind by a previous process get discarded at startup.
func TestDiscardStale(t *testing.T) {
	if eng == nil {
		t.SkipNow()
	}

	var (
		err error
		db  = eng.pool.Get()
		a   = objects.Alert{
			Prayer: "Fajr",
			Time:   objects.Clock(320),
			FireAt: time.Now().Add(-time.Hour),
			UUID:   common.GetUUID(),
		}
	)

	if err = db.AlertAdd(&a); err != nil {
		eng.pool.Put(db)
		t.Fatalf("Cannot plant stale Alert: %s", err.Error())
	}

	err = eng.discardStale(db)
	eng.pool.Put(db)

	if err != nil {
		t.Fatalf("Cannot discard stale alerts: %s", err.Error())
	}

	if cnt := persistedAlertCnt(t, eng); cnt != 0 {
		t.Errorf("After discarding, %d stale alerts are left over", cnt)
	}
} // func TestDiscardStale(t *testing.T)

// A failed read of the persisted set must not keep the daemon from
// starting; the fresh re-arm rebuilds the set anyway.
func TestDiscardStaleReadFailure(t *testing.T) {
	if eng == nil {
		t.SkipNow()
	}

	var (
		err error
		db  *database.Database
	)

	// A directory is not a database; every query against it fails.
	if db, err = database.Open(common.BaseDir); err != nil {
		t.Fatalf("Cannot open bogus database: %s", err.Error())
	}

	defer db.Close() // nolint: errcheck

	if err = eng.discardStale(db); err != nil {
		t.Errorf("A failed read of the persisted alerts should not be fatal: %s",
			err.Error())
	}
} // func TestDiscardStaleReadFailure(t *testing.T)

// Without a timeline the countdown shows a placeholder, not an empty
// string.
func TestCountdownEmptyDay(t *testing.T) {
	var d = mkTestDaemon(t)

	d.refreshCountdown()

	var info = d.Countdown()

	if info.Name != "" {
		t.Errorf("Countdown without a timeline should not name a prayer, got %q",
			info.Name)
	} else if info.Display == "" {
		t.Error("Countdown without a timeline should still render a display string")
	}
} // func TestCountdownEmptyDay(t *testing.T)

func TestFireInstant(t *testing.T) {
	var (
		now      = time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC)
		midnight = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	)

	type testCase struct {
		ft     objects.FireTime
		expect time.Time
	}

	var cases = []testCase{
		// Later today.
		testCase{
			ft:     objects.FireTime{Name: "Asr", At: objects.Clock(935)},
			expect: midnight.Add(time.Minute * 935),
		},
		// Already past today, moves to tomorrow.
		testCase{
			ft:     objects.FireTime{Name: "Fajr", At: objects.Clock(320)},
			expect: midnight.AddDate(0, 0, 1).Add(time.Minute * 320),
		},
		// Wrapped into the previous day, lands later today.
		testCase{
			ft:     objects.FireTime{Name: "Fajr", At: objects.Clock(1420), DayOffset: -1},
			expect: midnight.Add(time.Minute * 1420),
		},
	}

	for _, c := range cases {
		if stamp := fireInstant(now, c.ft); !stamp.Equal(c.expect) {
			t.Errorf("fireInstant for %s (%s, offset %d) is %s (expected %s)",
				c.ft.Name,
				c.ft.At,
				c.ft.DayOffset,
				stamp.Format(common.TimestampFormat),
				c.expect.Format(common.TimestampFormat))
		}

		if stamp := fireInstant(now, c.ft); !stamp.After(now) {
			t.Errorf("fireInstant for %s is not in the future",
				c.ft.Name)
		}
	}
} // func TestFireInstant(t *testing.T)
