// /home/wahid/go/src/github.com/wahid/muezzin/timesource/timesource.go
// -*- mode: go; coding: utf-8; -*-
// Created on 21. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-25 20:27:51 wahid>

// Package timesource retrieves the day's prayer times from the Al Adhan
// web service. The daemon never computes prayer times itself; if the
// service cannot be reached, scheduling is refused for the day.
package timesource

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/pquerna/ffjson/ffjson"
	"github.com/wahid/muezzin/common"
	"github.com/wahid/muezzin/common/logdomain"
	"github.com/wahid/muezzin/objects"
)

const (
	baseURL        = "https://api.aladhan.com/v1/timingsByCity"
	reqTimeout     = time.Second * 10
	maxElapsedTime = time.Second * 45
)

// ErrUnavailable indicates that the prayer time service could not
// deliver today's times. The caller must not arm against stale data.
var ErrUnavailable = errors.New("prayer time service is unavailable")

// Client fetches the daily prayer times for one location.
type Client struct {
	log      *log.Logger
	web      http.Client
	city     string
	country  string
	base     string
	patience time.Duration
}

// NewClient creates a Client for the given location.
func NewClient(city, country string) (*Client, error) {
	var (
		err error
		c   = &Client{
			city:     city,
			country:  country,
			base:     baseURL,
			patience: maxElapsedTime,
			web: http.Client{
				Timeout: reqTimeout,
			},
		}
	)

	if c.log, err = common.GetLogger(logdomain.TimeSource); err != nil {
		return nil, err
	}

	return c, nil
} // func NewClient(city, country string) (*Client, error)

// apiResponse mirrors the subset of the Al Adhan response we care about.
type apiResponse struct {
	Code   int     `json:"code"`
	Status string  `json:"status"`
	Data   apiData `json:"data"`
}

type apiData struct {
	Timings apiTimings `json:"timings"`
}

// apiTimings holds the clock strings, keyed by prayer name. The service
// may append a timezone suffix like " (CET)" which we strip.
type apiTimings struct {
	Fajr    string `json:"Fajr"`
	Dhuhr   string `json:"Dhuhr"`
	Asr     string `json:"Asr"`
	Maghrib string `json:"Maghrib"`
	Isha    string `json:"Isha"`
}

// FetchDaily asks the service for the current day's prayer times and
// returns them as a Daytab. Transient failures are retried with
// exponential backoff; if the service stays unreachable, the returned
// error wraps ErrUnavailable.
func (c *Client) FetchDaily() (objects.Daytab, error) {
	var (
		err  error
		body []byte
		addr = c.requestURL()
	)

	var op = func() error {
		var (
			e   error
			res *http.Response
		)

		if res, e = c.web.Get(addr); e != nil {
			c.log.Printf("[DEBUG] Request to %s failed: %s\n",
				addr,
				e.Error())
			return e
		}

		defer res.Body.Close() // nolint: errcheck

		if res.StatusCode != http.StatusOK {
			e = fmt.Errorf("unexpected HTTP status %s", res.Status)
			c.log.Printf("[DEBUG] %s\n", e.Error())
			return e
		} else if body, e = io.ReadAll(res.Body); e != nil {
			c.log.Printf("[DEBUG] Cannot read response body: %s\n",
				e.Error())
			return e
		}

		return nil
	}

	var strategy = backoff.NewExponentialBackOff()
	strategy.MaxElapsedTime = c.patience

	if err = backoff.Retry(op, strategy); err != nil {
		c.log.Printf("[ERROR] Giving up on %s: %s\n",
			addr,
			err.Error())
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err.Error())
	}

	var response apiResponse

	if err = ffjson.Unmarshal(body, &response); err != nil {
		c.log.Printf("[ERROR] Cannot de-serialize response: %s\n%s\n",
			err.Error(),
			body)
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err.Error())
	} else if response.Code != 200 {
		c.log.Printf("[ERROR] Service returned code %d (%s)\n",
			response.Code,
			response.Status)
		return nil, fmt.Errorf("%w: service returned code %d",
			ErrUnavailable,
			response.Code)
	}

	var (
		t       = response.Data.Timings
		prayers = make([]objects.Prayer, 0, len(objects.PrayerNames))
		raw     = map[string]string{
			"Fajr":    t.Fajr,
			"Dhuhr":   t.Dhuhr,
			"Asr":     t.Asr,
			"Maghrib": t.Maghrib,
			"Isha":    t.Isha,
		}
	)

	for _, name := range objects.PrayerNames {
		var cl objects.Clock

		if cl, err = parseTiming(raw[name]); err != nil {
			c.log.Printf("[ERROR] Cannot parse time for %s: %s\n",
				name,
				err.Error())
			return nil, fmt.Errorf("%w: bad time for %s: %s",
				ErrUnavailable,
				name,
				err.Error())
		}

		prayers = append(prayers, objects.Prayer{Name: name, Time: cl})
	}

	var day objects.Daytab

	if day, err = objects.NewDaytab(prayers); err != nil {
		return nil, err
	}

	c.log.Printf("[DEBUG] Loaded %d prayer times for %s, %s\n",
		len(day),
		c.city,
		c.country)

	return day, nil
} // func (c *Client) FetchDaily() (objects.Daytab, error)

func (c *Client) requestURL() string {
	var values = make(url.Values)

	values.Set("city", c.city)
	values.Set("country", c.country)

	return fmt.Sprintf("%s?%s",
		c.base,
		values.Encode())
} // func (c *Client) requestURL() string

// parseTiming parses a clock string as the service renders it, 24-hour
// "HH:MM", possibly followed by a timezone in parentheses.
func parseTiming(raw string) (objects.Clock, error) {
	var s = strings.TrimSpace(raw)

	if idx := strings.Index(s, " "); idx != -1 {
		s = s[:idx]
	}

	var parts = strings.Split(s, ":")

	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", objects.ErrMalformedTime, raw)
	}

	var (
		err          error
		hour, minute int
	)

	if hour, err = strconv.Atoi(parts[0]); err != nil {
		return 0, fmt.Errorf("%w: %q (%s)", objects.ErrMalformedTime, raw, err.Error())
	} else if minute, err = strconv.Atoi(parts[1]); err != nil {
		return 0, fmt.Errorf("%w: %q (%s)", objects.ErrMalformedTime, raw, err.Error())
	}

	return objects.ClockFromParts(hour, minute)
} // func parseTiming(raw string) (objects.Clock, error)
