// /home/wahid/go/src/github.com/wahid/muezzin/clients/clientlib/lib.go
// -*- mode: go; coding: utf-8; -*-
// Created on 24. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-26 22:09:41 wahid>

// Package clientlib provides the basic framework for building clients
// that talk to the Muezzin backend.
package clientlib

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/pquerna/ffjson/ffjson"
	"github.com/wahid/muezzin/common"
	"github.com/wahid/muezzin/common/logdomain"
	"github.com/wahid/muezzin/objects"
)

const (
	settingsPath = "/settings"
	updatePath   = "/settings/update"
	nextPath     = "/next"
	prayersPath  = "/prayers"
	rearmPath    = "/rearm"
)

// Client is the basic implementation of a Muezzin client, it implements
// the fundamental communication with the backend.
type Client struct {
	Server *url.URL
	Client http.Client
	log    *log.Logger
}

// NewClient creates a new Client.
func NewClient(srv string) (*Client, error) {
	var (
		err error
		c   = &Client{
			Client: http.Client{
				Timeout: time.Second * 10,
			},
		}
	)

	if c.log, err = common.GetLogger(logdomain.Client); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot create Logger: %s\n",
			err.Error())
		return nil, err
	} else if c.Server, err = url.Parse(srv); err != nil {
		c.log.Printf("[ERROR] Cannot parse URL %q: %s\n",
			srv,
			err.Error())
		return nil, err
	}

	c.Server.Scheme = "http"

	return c, nil
} // func NewClient(srv string) (*Client, error)

func (c *Client) GetLogger() *log.Logger {
	return c.log
} // func (c *Client) GetLogger() *log.Logger

func (c *Client) mkURL(path string) string {
	var u = *c.Server
	u.Path = path
	return u.String()
} // func (c *Client) mkURL(path string) string

// fetchJSON GETs the given path and de-serializes the body into dst.
func (c *Client) fetchJSON(path string, dst interface{}) error {
	var (
		err  error
		buf  bytes.Buffer
		hres *http.Response
		addr = c.mkURL(path)
	)

	if hres, err = c.Client.Get(addr); err != nil {
		c.log.Printf("[ERROR] Failed to GET %s: %s\n",
			addr,
			err.Error())
		return err
	}

	defer hres.Body.Close() // nolint: errcheck

	if hres.StatusCode != http.StatusOK {
		var msg = fmt.Sprintf("Unexpected status from %s: %s",
			addr,
			hres.Status)
		c.log.Printf("[ERROR] %s\n", msg)
		return errors.New(msg)
	} else if _, err = io.Copy(&buf, hres.Body); err != nil {
		c.log.Printf("[ERROR] Failed to read Response body from %s: %s\n",
			addr,
			err.Error())
		return err
	} else if err = ffjson.Unmarshal(buf.Bytes(), dst); err != nil {
		c.log.Printf("[ERROR] Cannot de-serialize Response from %s: %s\n",
			addr,
			err.Error())
		return err
	}

	return nil
} // func (c *Client) fetchJSON(path string, dst interface{}) error

// GetSettings asks the backend for the current notification Settings.
func (c *Client) GetSettings() (*objects.Settings, error) {
	var (
		err error
		s   objects.Settings
	)

	if err = c.fetchJSON(settingsPath, &s); err != nil {
		return nil, err
	} else if err = s.Validate(); err != nil {
		c.log.Printf("[ERROR] Backend delivered invalid Settings: %s\n",
			err.Error())
		return nil, err
	}

	return &s, nil
} // func (c *Client) GetSettings() (*objects.Settings, error)

// GetNext asks the backend which prayer comes next and how long until
// then.
func (c *Client) GetNext() (*objects.NextInfo, error) {
	var (
		err  error
		info objects.NextInfo
	)

	if err = c.fetchJSON(nextPath, &info); err != nil {
		return nil, err
	}

	return &info, nil
} // func (c *Client) GetNext() (*objects.NextInfo, error)

// GetPrayers asks the backend for today's prayer times.
func (c *Client) GetPrayers() (objects.Daytab, error) {
	var (
		err error
		day objects.Daytab
	)

	if err = c.fetchJSON(prayersPath, &day); err != nil {
		return nil, err
	}

	return day, nil
} // func (c *Client) GetPrayers() (objects.Daytab, error)

// UpdateSettings submits new Settings to the backend.
func (c *Client) UpdateSettings(s *objects.Settings) error {
	var (
		err     error
		sendBuf []byte
		msg     string
		rcvBuf  bytes.Buffer
		hres    *http.Response
		ores    objects.Response
		addr    = c.mkURL(updatePath)
		values  = make(url.Values)
	)

	if err = s.Validate(); err != nil {
		c.log.Printf("[ERROR] Refusing to submit invalid Settings: %s\n",
			err.Error())
		return err
	} else if sendBuf, err = ffjson.Marshal(s); err != nil {
		c.log.Printf("[ERROR] Cannot serialize Settings: %s\n",
			err.Error())
		return err
	}

	defer ffjson.Pool(sendBuf)

	values["settings"] = []string{string(sendBuf)}

	if hres, err = c.Client.PostForm(addr, values); err != nil {
		c.log.Printf("[ERROR] Failed to POST Settings to %s: %s\n",
			addr,
			err.Error())
		return err
	} else if hres.StatusCode != http.StatusOK {
		msg = fmt.Sprintf("Unexpected status from %s: %s",
			addr,
			hres.Status)
		c.log.Printf("[ERROR] %s\n", msg)
		return errors.New(msg)
	} else if _, err = io.Copy(&rcvBuf, hres.Body); err != nil {
		c.log.Printf("[ERROR] Failed to read Response body from %s: %s\n",
			addr,
			err.Error())
		return err
	} else if err = ffjson.Unmarshal(rcvBuf.Bytes(), &ores); err != nil {
		c.log.Printf("[ERROR] Cannot de-serialize Response from %s: %s\n",
			addr,
			err.Error())
		return err
	} else if !ores.Status {
		err = fmt.Errorf("Request to %s failed: %s",
			addr,
			ores.Message)
		c.log.Printf("[ERROR] %s\n",
			err.Error())
		return err
	}

	c.log.Printf("[DEBUG] Request to %s was successful: %s\n",
		addr,
		ores.Message)

	return nil
} // func (c *Client) UpdateSettings(s *objects.Settings) error

// Rearm tells the backend to fetch fresh prayer times and re-arm its
// alerts.
func (c *Client) Rearm() error {
	var (
		err  error
		buf  bytes.Buffer
		hres *http.Response
		ores objects.Response
		addr = c.mkURL(rearmPath)
	)

	if hres, err = c.Client.Get(addr); err != nil {
		c.log.Printf("[ERROR] Failed to GET %s: %s\n",
			addr,
			err.Error())
		return err
	}

	defer hres.Body.Close() // nolint: errcheck

	if hres.StatusCode != http.StatusOK {
		var msg = fmt.Sprintf("Unexpected status from %s: %s",
			addr,
			hres.Status)
		c.log.Printf("[ERROR] %s\n", msg)
		return errors.New(msg)
	} else if _, err = io.Copy(&buf, hres.Body); err != nil {
		return err
	} else if err = ffjson.Unmarshal(buf.Bytes(), &ores); err != nil {
		return err
	} else if !ores.Status {
		return errors.New(ores.Message)
	}

	c.log.Printf("[DEBUG] %s\n", ores.Message)

	return nil
} // func (c *Client) Rearm() error
