// /home/wahid/go/src/github.com/wahid/muezzin/backend/engine.go
// -*- mode: go; coding: utf-8; -*-
// Created on 23. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-26 19:37:15 wahid>

package backend

import (
	"time"

	"github.com/wahid/muezzin/common"
	"github.com/wahid/muezzin/objects"
)

// Arm replaces the armed set of alerts with one derived from the given
// timeline and settings: one single-shot timer per enabled prayer, each
// fire instant persisted alongside. Any previously armed alerts are
// cancelled first, so calling Arm on every settings change is safe and
// can never leave two alerts outstanding for the same prayer.
func (d *Daemon) Arm(day objects.Daytab, s *objects.Settings) error {
	d.sched.Lock()
	defer d.sched.Unlock()

	return d.armLocked(day, s)
} // func (d *Daemon) Arm(day objects.Daytab, s *objects.Settings) error

// Disarm cancels every armed alert and clears the persisted set.
// Disarming twice, or disarming alerts that have already fired, is
// harmless.
func (d *Daemon) Disarm() error {
	d.sched.Lock()
	defer d.sched.Unlock()

	return d.disarmLocked()
} // func (d *Daemon) Disarm() error

func (d *Daemon) armLocked(day objects.Daytab, s *objects.Settings) error {
	var err error

	if err = d.disarmLocked(); err != nil {
		return err
	}

	d.day = day
	d.settings = s

	if !s.Enabled {
		d.log.Println("[INFO] Notifications are disabled, nothing to arm")
		return nil
	}

	var (
		now   = time.Now()
		fts   = day.FireTimes(s)
		fresh = make(map[string]*pendingAlert, len(fts))
		db    = d.pool.Get()
	)
	defer d.pool.Put(db)

	// The armed set is one transaction: either every enabled prayer
	// gets its alert, or none of them do.
	if err = db.Begin(); err != nil {
		return err
	}

	for _, ft := range fts {
		var a = objects.Alert{
			Prayer: ft.Name,
			UUID:   common.GetUUID(),
			Silent: !s.Sound,
			FireAt: fireInstant(now, ft),
		}

		if p, ok := day.Get(ft.Name); ok {
			a.Time = p.Time
		}

		if err = db.AlertAdd(&a); err != nil {
			d.log.Printf("[ERROR] Cannot persist Alert for %s: %s\n",
				ft.Name,
				err.Error())
			db.Rollback() // nolint: errcheck
			for _, p := range fresh {
				p.timer.Stop()
			}
			return err
		}

		var p = &pendingAlert{alert: a}
		var id = a.UUID

		p.timer = time.AfterFunc(time.Until(a.FireAt), func() { d.fire(id) })
		fresh[id] = p

		d.log.Printf("[DEBUG] Alert for %s armed to fire at %s\n",
			a.Prayer,
			a.FireAt.Format(common.TimestampFormat))
	}

	if err = db.Commit(); err != nil {
		d.log.Printf("[ERROR] Cannot commit armed set: %s\n",
			err.Error())
		for _, p := range fresh {
			p.timer.Stop()
		}
		return err
	}

	d.armed = fresh

	d.log.Printf("[INFO] Armed %d alerts, lead time %s\n",
		len(fresh),
		s.Lead)

	return nil
} // func (d *Daemon) armLocked(day objects.Daytab, s *objects.Settings) error

func (d *Daemon) disarmLocked() error {
	for id, p := range d.armed {
		p.timer.Stop()
		delete(d.armed, id)
	}

	var (
		err error
		db  = d.pool.Get()
	)
	defer d.pool.Put(db)

	if err = db.AlertClear(); err != nil {
		d.log.Printf("[ERROR] Cannot clear persisted alerts: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (d *Daemon) disarmLocked() error

// fire is invoked by an alert's timer. Delivery itself happens on the
// notify loop, one alert at a time.
func (d *Daemon) fire(id string) {
	d.sched.Lock()

	var p, ok = d.armed[id]

	if !ok {
		// Disarmed between the timer going off and us getting the lock.
		d.sched.Unlock()
		return
	}

	delete(d.armed, id)

	var db = d.pool.Get()

	if err := db.AlertDelete(id); err != nil {
		// The persisted set is now out of step with the armed set,
		// which breaks crash recovery. Worth shouting about.
		d.log.Printf("[CRITICAL] Cannot remove fired Alert %s from database: %s\n",
			id,
			err.Error())
	}

	d.pool.Put(db)
	d.sched.Unlock()

	d.Queue <- &p.alert
} // func (d *Daemon) fire(id string)

// fireInstant turns a FireTime into an absolute point in time. A fire
// instant that already passed today is moved to the equivalent time
// tomorrow: someone enabling notifications mid-day gets tomorrow's
// occurrence instead of a missed or immediate one.
func fireInstant(now time.Time, ft objects.FireTime) time.Time {
	var midnight = time.Date(now.Year(), now.Month(), now.Day(),
		0, 0, 0, 0, now.Location())

	var stamp = midnight.
		AddDate(0, 0, ft.DayOffset).
		Add(time.Minute * time.Duration(ft.At.Minutes()))

	for !stamp.After(now) {
		stamp = stamp.AddDate(0, 0, 1)
	}

	return stamp
} // func fireInstant(now time.Time, ft objects.FireTime) time.Time

// rollToNextDay fetches the current day's prayer times from the time
// source and re-arms. It runs once at startup and once per day at
// midnight; it is also behind the /rearm endpoint.
func (d *Daemon) rollToNextDay() error {
	var (
		err error
		day objects.Daytab
	)

	if day, err = d.src.FetchDaily(); err != nil {
		d.log.Printf("[ERROR] Cannot fetch prayer times: %s\n",
			err.Error())
		// Stale times are worse than no times. Stand down.
		if e2 := d.Disarm(); e2 != nil {
			d.log.Printf("[ERROR] Cannot disarm: %s\n",
				e2.Error())
		}
		return err
	}

	return d.Arm(day, d.Settings())
} // func (d *Daemon) rollToNextDay() error

// UpdateSettings validates and persists new Settings, then re-arms.
// A failed persistence write is surfaced; it would break recovery
// after a restart.
func (d *Daemon) UpdateSettings(s *objects.Settings) error {
	var err error

	if err = s.Validate(); err != nil {
		return err
	}

	if s.Enabled && !d.HasPermission() {
		d.log.Println("[WARN] No notification service on the session bus; alerts will be armed but may not display")
	}

	// Persisting the blob and replacing the armed set happen under one
	// lock. Two racing updates must not leave one caller's settings on
	// disk and the other's alerts armed.
	d.sched.Lock()

	var db = d.pool.Get()
	err = db.SettingsSet(s)
	d.pool.Put(db)

	if err != nil {
		d.sched.Unlock()
		return err
	}

	if len(d.day) == 0 {
		// No timeline yet (e.g. the time source was down at startup),
		// try again now. rollToNextDay re-reads the settings when it
		// arms, so releasing the lock here is safe.
		d.settings = s.Clone()
		d.sched.Unlock()
		return d.rollToNextDay()
	}

	err = d.armLocked(d.day, s.Clone())
	d.sched.Unlock()

	return err
} // func (d *Daemon) UpdateSettings(s *objects.Settings) error

// Settings returns a copy of the current Settings.
func (d *Daemon) Settings() *objects.Settings {
	d.sched.Lock()
	var s = d.settings.Clone()
	d.sched.Unlock()

	return s
} // func (d *Daemon) Settings() *objects.Settings

// Daytab returns the timeline the engine is currently armed with.
func (d *Daemon) Daytab() objects.Daytab {
	d.sched.Lock()
	var day = d.day
	d.sched.Unlock()

	return day
} // func (d *Daemon) Daytab() objects.Daytab

// NextEvent computes the upcoming prayer relative to the given time of
// day, using the same timeline the engine armed with.
func (d *Daemon) NextEvent(now objects.Clock) (objects.NextInfo, error) {
	var (
		err  error
		p    objects.Prayer
		min  int
		info objects.NextInfo
	)

	if p, min, err = d.Daytab().Next(now); err != nil {
		return info, err
	}

	info = objects.NextInfo{
		Name:         p.Name,
		MinutesUntil: min,
		Display:      objects.FormatCountdown(min),
	}

	return info, nil
} // func (d *Daemon) NextEvent(now objects.Clock) (objects.NextInfo, error)

// ArmedCount returns the number of alerts currently outstanding.
func (d *Daemon) ArmedCount() int {
	d.sched.Lock()
	var cnt = len(d.armed)
	d.sched.Unlock()

	return cnt
} // func (d *Daemon) ArmedCount() int
