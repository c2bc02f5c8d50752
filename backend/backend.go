// /home/wahid/go/src/github.com/wahid/muezzin/backend/backend.go
// -*- mode: go; coding: utf-8; -*-
// Created on 22. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-26 18:53:10 wahid>

// Package backend implements the daemon that does the actual work:
// it fetches the day's prayer times, arms one alert per enabled prayer,
// delivers the alerts via DBus, and serves the HTTP API the frontend
// talks to.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/gorilla/mux"
	"github.com/grandcat/zeroconf"
	"github.com/robfig/cron/v3"
	"github.com/wahid/muezzin/common"
	"github.com/wahid/muezzin/common/logdomain"
	"github.com/wahid/muezzin/database"
	"github.com/wahid/muezzin/objects"
	"github.com/wahid/muezzin/timesource"
)

const (
	notifyObj    = "org.freedesktop.Notifications"
	notifyIntf   = "org.freedesktop.Notifications" // nolint: deadcode,unused,varcheck
	notifyPath   = "/org/freedesktop/Notifications"
	notifyMethod = "org.freedesktop.Notifications.Notify"
	queueDepth   = 5
	queueTimeout = time.Second * 2
	tickInterval = time.Second // countdown resolution
)

// rolloverSpec is when the daily re-arm runs.
const rolloverSpec = "@midnight"

// ErrDeliveryUnsupported indicates that the host environment offers no
// way to display notifications. It is reported at fire time and does
// not cancel the remaining alerts.
var ErrDeliveryUnsupported = errors.New("notification delivery is not supported on this host")

// pendingAlert couples one armed Alert with the timer that will fire it.
type pendingAlert struct {
	alert objects.Alert
	timer *time.Timer
}

// Daemon is the centerpiece of the backend, coordinating between the
// time source, the database, DBus, and the clients.
type Daemon struct {
	log        *log.Logger
	pool       *database.Pool
	bus        *dbus.Conn
	src        *timesource.Client
	lock       sync.RWMutex
	active     bool
	Queue      chan objects.Notification
	web        http.Server
	router     *mux.Router
	listenAddr string
	hostname   string
	dnssd      *zeroconf.Server
	cron       *cron.Cron
	idLock     sync.Mutex
	idCnt      int64

	// sched guards the day's timeline, the settings, and the armed set.
	// The persisted armed set is written under this lock, too, so it
	// never diverges from the in-memory one.
	sched    sync.Mutex
	day      objects.Daytab
	settings *objects.Settings
	armed    map[string]*pendingAlert

	cdLock    sync.RWMutex
	countdown objects.NextInfo
}

// Summon summons a Daemon and returns it. No sacrifice or idolatry is required.
func Summon(addr, city, country string) (*Daemon, error) {
	var (
		err error
		d   = &Daemon{
			listenAddr: addr,
			active:     true,
			Queue:      make(chan objects.Notification, queueDepth),
			router:     mux.NewRouter(),
			armed:      make(map[string]*pendingAlert),
			cron:       cron.New(),
		}
	)

	if d.log, err = common.GetLogger(logdomain.Backend); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	} else if d.pool, err = database.NewPool(4); err != nil {
		d.log.Printf("[ERROR] Cannot initialize database pool: %s\n",
			err.Error())
		return nil, err
	} else if d.src, err = timesource.NewClient(city, country); err != nil {
		d.log.Printf("[ERROR] Cannot create time source client: %s\n",
			err.Error())
		return nil, err
	}

	if d.hostname, err = os.Hostname(); err != nil {
		d.log.Printf("[ERROR] Cannot determine hostname: %s\n",
			err.Error())
		d.hostname = "localhost"
	}

	// A missing session bus is not fatal: alerts are armed all the
	// same, and delivery reports its failure at fire time.
	if d.bus, err = dbus.SessionBus(); err != nil {
		d.log.Printf("[ERROR] Failed to connect to DBus session bus: %s\n",
			err.Error())
		d.bus = nil
	}

	var db = d.pool.Get()

	if d.settings, err = db.SettingsGet(); err != nil {
		d.log.Printf("[ERROR] Cannot load Settings, falling back to defaults: %s\n",
			err.Error())
		d.settings = objects.DefaultSettings()
	}

	if err = d.discardStale(db); err != nil {
		d.pool.Put(db)
		return nil, err
	}

	d.pool.Put(db)

	d.web.Addr = addr
	d.web.ErrorLog = d.log
	d.web.Handler = d.router

	if err = d.initWebHandlers(); err != nil {
		d.log.Printf("[ERROR] Failed to initialize web server: %s\n",
			err.Error())
		return nil, err
	}

	if err = d.initDNSSd(); err != nil {
		// Not fatal, the frontend can still connect by address.
		d.log.Printf("[ERROR] Cannot announce service via DNS-SD: %s\n",
			err.Error())
	}

	if _, err = d.cron.AddFunc(rolloverSpec, func() {
		if e := d.rollToNextDay(); e != nil {
			d.log.Printf("[ERROR] Day rollover failed: %s\n",
				e.Error())
		}
	}); err != nil {
		d.log.Printf("[ERROR] Cannot schedule day rollover: %s\n",
			err.Error())
		return nil, err
	}

	go d.notifyLoop()
	go d.countdownLoop()
	go d.serveHTTP()
	d.cron.Start()

	// The initial fetch-and-arm happens off the startup path, so a slow
	// or unreachable time service does not stall the daemon.
	go func() {
		if e := d.rollToNextDay(); e != nil {
			d.log.Printf("[ERROR] Initial arming failed: %s\n",
				e.Error())
		}
	}()

	return d, nil
} // func Summon(addr, city, country string) (*Daemon, error)

// discardStale drops alert rows a previous process left behind. Their
// timers died with that process, so the rows describe nothing; the
// fresh re-arm rebuilds the set from scratch. A failed read only costs
// us that cleanup and is logged, but a failed delete is surfaced: it
// would leave the persisted set lying about what is armed.
func (d *Daemon) discardStale(db *database.Database) error {
	var (
		err   error
		stale []objects.Alert
	)

	if stale, err = db.AlertGetAll(); err != nil {
		d.log.Printf("[ERROR] Cannot load persisted alerts, starting from an empty set: %s\n",
			err.Error())
		return nil
	} else if len(stale) == 0 {
		return nil
	}

	d.log.Printf("[INFO] Discarding %d alerts left over from a previous run\n",
		len(stale))

	if err = db.AlertClear(); err != nil {
		d.log.Printf("[ERROR] Cannot clear stale alerts: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (d *Daemon) discardStale(db *database.Database) error

// IsAlive returns true if the Daemon's active flag is set.
func (d *Daemon) IsAlive() bool {
	d.lock.RLock()
	var alive = d.active
	d.lock.RUnlock()

	return alive
} // func (d *Daemon) IsAlive() bool

// Banish tells the Daemon's components to shut down.
// The persisted armed set is deliberately left in place; the next
// Summon reconciles it.
func (d *Daemon) Banish() error {
	var (
		err         error
		ctx, cancel = context.WithTimeout(context.Background(), time.Second*3)
	)
	defer cancel()

	if err = d.web.Shutdown(ctx); err != nil {
		d.log.Printf("[ERROR] Failed to shutdown web server: %s\n",
			err.Error())
	}

	if ctx.Err() != nil {
		err = ctx.Err()
		d.log.Printf("[ERROR] Failed to gracefully shut down web server: %s\n",
			ctx.Err().Error())
		d.web.Close() // nolint: errcheck
	}

	d.cron.Stop()
	d.shutdownDNSSd()

	d.sched.Lock()
	for _, p := range d.armed {
		p.timer.Stop()
	}
	d.sched.Unlock()

	d.lock.Lock()
	d.active = false
	d.lock.Unlock()
	return err
} // func (d *Daemon) Banish() error

// HasPermission returns true if the host environment can display
// notifications at all.
func (d *Daemon) HasPermission() bool {
	return d.bus != nil
} // func (d *Daemon) HasPermission() bool

func (d *Daemon) getID() int64 {
	d.idLock.Lock()
	d.idCnt++
	var id = d.idCnt
	d.idLock.Unlock()

	return id
} // func (d *Daemon) getID() int64

func (d *Daemon) notifyLoop() {
	defer d.log.Println("[TRACE] Quitting notifyLoop")

	var (
		err  error
		tick = time.NewTicker(queueTimeout)
	)
	defer tick.Stop()

	for d.IsAlive() {
		select {
		case <-tick.C:
			continue
		case m := <-d.Queue:
			var title, body = m.Payload()
			d.log.Printf("[DEBUG] Received Notification: %s\n%s\n",
				title,
				body)

			if err = d.notify(m); err != nil {
				// Not fatal, the remaining alerts stay armed.
				d.log.Printf("[ERROR] Failed to post Notification %q: %s\n",
					title,
					err.Error())
			}
		}
	}
} // func (d *Daemon) notifyLoop()

func (d *Daemon) notify(n objects.Notification) error {
	if d.bus == nil {
		return ErrDeliveryUnsupported
	}

	var (
		err        error
		obj        = d.bus.Object(notifyObj, notifyPath)
		head, body string
	)

	if obj == nil {
		err = fmt.Errorf("Did not find object %s (%s) on session bus",
			notifyObj,
			notifyPath)
		d.log.Printf("[ERROR] %s\n", err.Error())
		return err
	}

	head, body = n.Payload()

	var hints = make(map[string]dbus.Variant)

	if n.Quiet() {
		hints["suppress-sound"] = dbus.MakeVariant(true)
	}

	var res = obj.Call(
		notifyMethod,
		0,
		common.AppName,
		uint32(0),
		"",
		head,
		body,
		[]string{},
		hints,
		int32(-1),
	)

	if res.Err != nil {
		d.log.Printf("[ERROR] Cannot send Notification %q: %s\n",
			head,
			res.Err.Error())
		return res.Err
	}

	return nil
} // func (d *Daemon) notify(n objects.Notification) error

func (d *Daemon) countdownLoop() {
	defer d.log.Println("[TRACE] Quitting countdownLoop")

	var tick = time.NewTicker(tickInterval)
	defer tick.Stop()

	for d.IsAlive() {
		<-tick.C
		d.refreshCountdown()
	}
} // func (d *Daemon) countdownLoop()

// refreshCountdown recomputes the countdown from the same timeline the
// engine armed with. It is a pure recomputation; it never arms or
// disarms anything.
func (d *Daemon) refreshCountdown() {
	var day = d.Daytab()

	if len(day) == 0 {
		d.cdLock.Lock()
		d.countdown = objects.NextInfo{Display: "No prayer times yet"}
		d.cdLock.Unlock()
		return
	}

	var p, min, err = day.Next(objects.ClockOf(time.Now()))

	if err != nil {
		d.log.Printf("[CANTHAPPEN] Cannot compute next prayer: %s\n",
			err.Error())
		return
	}

	d.cdLock.Lock()
	d.countdown = objects.NextInfo{
		Name:         p.Name,
		MinutesUntil: min,
		Display:      objects.FormatCountdown(min),
	}
	d.cdLock.Unlock()
} // func (d *Daemon) refreshCountdown()

// Countdown returns the most recently computed countdown.
func (d *Daemon) Countdown() objects.NextInfo {
	d.cdLock.RLock()
	var info = d.countdown
	d.cdLock.RUnlock()

	return info
} // func (d *Daemon) Countdown() objects.NextInfo
