// /home/wahid/go/src/github.com/wahid/muezzin/timesource/01_timesource_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 21. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-25 20:41:02 wahid>

package timesource

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wahid/muezzin/common"
	"github.com/wahid/muezzin/objects"
)

func TestMain(m *testing.M) {
	var baseDir = filepath.Join(
		os.TempDir(),
		fmt.Sprintf("muezzin_timesource_test_%d", time.Now().Unix()))

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

func TestParseTiming(t *testing.T) {
	type testCase struct {
		input       string
		expectError bool
		minutes     int
	}

	var cases = []testCase{
		testCase{input: "05:30", minutes: 330},
		testCase{input: "18:20", minutes: 1100},
		testCase{input: "18:20 (CET)", minutes: 1100},
		testCase{input: " 00:10 ", minutes: 10},
		testCase{input: "23:59", minutes: 1439},
		testCase{input: "24:00", expectError: true},
		testCase{input: "12:60", expectError: true},
		testCase{input: "noon", expectError: true},
		testCase{input: "", expectError: true},
	}

	for _, c := range cases {
		var (
			err error
			cl  int
		)

		if clk, e := parseTiming(c.input); e != nil {
			err = e
		} else {
			cl = clk.Minutes()
		}

		if err != nil {
			if !c.expectError {
				t.Errorf("Cannot parse timing %q: %s",
					c.input,
					err.Error())
			}
		} else if c.expectError {
			t.Errorf("Timing %q should have been rejected, got %d",
				c.input,
				cl)
		} else if cl != c.minutes {
			t.Errorf("Timing %q parsed to %d (expected %d)",
				c.input,
				cl,
				c.minutes)
		}
	}
} // func TestParseTiming(t *testing.T)

// mkTestClient builds a Client pointed at the given test server, with
// its patience cut down so failing cases do not drag the test out.
func mkTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()

	var (
		err error
		c   *Client
	)

	if c, err = NewClient("Casablanca", "Morocco"); err != nil {
		t.Fatalf("Cannot create Client: %s", err.Error())
	}

	c.base = srv.URL
	c.patience = time.Millisecond * 50

	return c
} // func mkTestClient(t *testing.T, srv *httptest.Server) *Client

func TestFetchDaily(t *testing.T) {
	const payload = `{"code":200,"status":"OK","data":{"timings":{"Fajr":"05:30","Dhuhr":"12:15","Asr":"15:45 (CET)","Maghrib":"18:20","Isha":"19:40"}}}`

	var srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("city") != "Casablanca" {
			http.Error(w, "Unknown city", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload)) // nolint: errcheck
	}))
	defer srv.Close()

	var (
		err error
		day objects.Daytab
		c   = mkTestClient(t, srv)
	)

	if day, err = c.FetchDaily(); err != nil {
		t.Fatalf("Cannot fetch prayer times: %s", err.Error())
	} else if len(day) != len(objects.PrayerNames) {
		t.Fatalf("Expected %d prayers, got %d",
			len(objects.PrayerNames),
			len(day))
	}

	if p, ok := day.Get("Maghrib"); !ok {
		t.Error("No time for Maghrib in the fetched Daytab")
	} else if p.Time.Minutes() != 1100 {
		t.Errorf("Maghrib should be at minute 1100, got %d (%s)",
			p.Time.Minutes(),
			p.Time)
	}

	if p, ok := day.Get("Asr"); !ok {
		t.Error("No time for Asr in the fetched Daytab")
	} else if p.Time.Minutes() != 945 {
		t.Errorf("Asr should be at minute 945 despite the timezone suffix, got %d (%s)",
			p.Time.Minutes(),
			p.Time)
	}
} // func TestFetchDaily(t *testing.T)

// Whatever way the service fails, the caller gets ErrUnavailable and
// no Daytab to arm against.
func TestFetchDailyUnavailable(t *testing.T) {
	type testCase struct {
		name    string
		handler http.HandlerFunc
	}

	var cases = []testCase{
		testCase{
			name: "http error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "Something is on fire", http.StatusInternalServerError)
			},
		},
		testCase{
			name: "service error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"code":500,"status":"Internal Server Error"}`)) // nolint: errcheck
			},
		},
		testCase{
			name: "garbage body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("certainly not JSON")) // nolint: errcheck
			},
		},
		testCase{
			name: "malformed timing",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"code":200,"status":"OK","data":{"timings":{"Fajr":"dawn-ish","Dhuhr":"12:15","Asr":"15:45","Maghrib":"18:20","Isha":"19:40"}}}`)) // nolint: errcheck
			},
		},
	}

	for _, c := range cases {
		var (
			err error
			day objects.Daytab
			srv = httptest.NewServer(c.handler)
		)

		var client = mkTestClient(t, srv)

		if day, err = client.FetchDaily(); err == nil {
			t.Errorf("Case %q should have failed, got %d prayers",
				c.name,
				len(day))
		} else if !errors.Is(err, ErrUnavailable) {
			t.Errorf("Case %q should report the service as unavailable, got: %s",
				c.name,
				err.Error())
		}

		srv.Close()
	}
} // func TestFetchDailyUnavailable(t *testing.T)
