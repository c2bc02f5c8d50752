// /home/wahid/go/src/github.com/wahid/muezzin/backend/web.go
// -*- mode: go; coding: utf-8; -*-
// Created on 24. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-26 20:24:41 wahid>

package backend

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pquerna/ffjson/ffjson"
	"github.com/wahid/muezzin/objects"
)

func (d *Daemon) initWebHandlers() error {
	d.router.HandleFunc("/settings", d.handleSettingsGet)
	d.router.HandleFunc("/settings/update", d.handleSettingsUpdate)
	d.router.HandleFunc("/next", d.handleNextGet)
	d.router.HandleFunc("/prayers", d.handlePrayersGet)
	d.router.HandleFunc("/rearm", d.handleRearm)

	return nil
} // func (d *Daemon) initWebHandlers() error

func (d *Daemon) serveHTTP() {
	var err error

	defer d.log.Println("[INFO] Web server is shutting down")

	d.log.Printf("[INFO] Web interface is going online at %s\n", d.web.Addr)

	if err = d.web.ListenAndServe(); err != nil {
		if err != http.ErrServerClosed {
			d.log.Printf("[ERROR] ListenAndServe returned an error: %s\n",
				err.Error())
		} else {
			d.log.Println("[INFO] HTTP Server has shut down.")
		}
	}
} // func (d *Daemon) serveHTTP()

func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response) {
	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(res); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Response: %s\n",
			err.Error())
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response)

func (d *Daemon) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(d.Settings()); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Settings: %s\n",
			err.Error())
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleSettingsGet(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err       error
		blob, msg string
		s         objects.Settings
		response  = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	}

	blob = r.FormValue("settings")

	if err = ffjson.Unmarshal([]byte(blob), &s); err != nil {
		msg = fmt.Sprintf("Cannot de-serialize Settings %q: %s",
			blob,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	if err = d.UpdateSettings(&s); err != nil {
		msg = fmt.Sprintf("Cannot apply Settings: %s",
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	response.Status = true
	response.Message = "OK"

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleSettingsUpdate(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleNextGet(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err    error
		buf    []byte
		nowStr string
		info   objects.NextInfo
	)

	// An explicit "now" is mainly a debugging aid.
	if nowStr = r.FormValue("now"); nowStr != "" {
		var now objects.Clock

		if now, err = objects.ParseClock(nowStr); err != nil {
			d.log.Printf("[ERROR] Invalid clock string %q: %s\n",
				nowStr,
				err.Error())
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		} else if info, err = d.NextEvent(now); err != nil {
			d.log.Printf("[ERROR] Cannot compute next prayer: %s\n",
				err.Error())
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	} else {
		info = d.Countdown()
	}

	if buf, err = ffjson.Marshal(&info); err != nil {
		d.log.Printf("[ERROR] Cannot serialize countdown: %s\n",
			err.Error())
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleNextGet(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handlePrayersGet(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(d.Daytab()); err != nil {
		d.log.Printf("[ERROR] Cannot serialize prayer list: %s\n",
			err.Error())
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handlePrayersGet(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleRearm(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		start    = time.Now()
		response = objects.Response{ID: d.getID()}
	)

	if err = d.rollToNextDay(); err != nil {
		response.Message = err.Error()
		goto SEND_RESPONSE
	}

	response.Status = true
	response.Message = fmt.Sprintf("Re-armed %d alerts in %s",
		d.ArmedCount(),
		time.Since(start))

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleRearm(w http.ResponseWriter, r *http.Request)
