// /home/wahid/go/src/github.com/wahid/muezzin/backend/dnssd.go
// -*- mode: go; coding: utf-8; -*-
// Created on 25. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-26 18:14:57 wahid>

package backend

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/grandcat/zeroconf"
	"github.com/wahid/muezzin/common"
)

// The backend announces its HTTP endpoint via DNS-SD so a frontend on
// the local network can find it without being told the address.
const (
	srvService = "_http._tcp"
	srvDomain  = "local."
)

var addrPat = regexp.MustCompile(`:(\d+)$`)

func (d *Daemon) initDNSSd() error {
	var (
		err   error
		match []string
		port  int64
		srv   *zeroconf.Server
	)

	if match = addrPat.FindStringSubmatch(d.web.Addr); match == nil {
		err = fmt.Errorf("Cannot extract HTTP port from server address %q",
			d.web.Addr)
		d.log.Printf("[ERROR] %s\n", err.Error())
		return err
	} else if port, err = strconv.ParseInt(match[1], 10, 16); err != nil {
		d.log.Printf("[ERROR] Cannot parse HTTP port from server address %q: %s\n",
			d.web.Addr,
			err.Error())
		return err
	}

	var instanceName = fmt.Sprintf("%s@%s",
		common.AppName,
		d.hostname)

	var txt = []string{"txtv=0"}

	if srv, err = zeroconf.Register(instanceName, srvService, srvDomain, int(port), txt, nil); err != nil {
		d.log.Printf("[ERROR] Cannot register service with DNS-SD: %s\n",
			err.Error())
		return err
	}

	d.dnssd = srv
	return nil
} // func (d *Daemon) initDNSSd() error

func (d *Daemon) shutdownDNSSd() {
	if d.dnssd != nil {
		d.dnssd.Shutdown()
		d.dnssd = nil
	}
} // func (d *Daemon) shutdownDNSSd()
