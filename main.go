// /home/wahid/go/src/github.com/wahid/muezzin/main.go
// -*- mode: go; coding: utf-8; -*-
// Created on 23. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-27 01:14:52 wahid>

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wahid/muezzin/backend"
	"github.com/wahid/muezzin/common"
	"github.com/wahid/muezzin/ui"
)

func main() {
	fmt.Printf("%s %s\n",
		common.AppName,
		common.Version)

	var (
		err                             error
		daemon                          *backend.Daemon
		appDir, mode, addr, city, cntry string
	)

	flag.StringVar(
		&appDir,
		"appdir",
		common.BaseDir,
		"The directory where application-specific files live")

	flag.StringVar(
		&mode,
		"mode",
		"backend",
		"Whether to run the *backend* or the *frontend*",
	)

	flag.StringVar(
		&addr,
		"address",
		fmt.Sprintf("localhost:%d", common.DefaultPort),
		"Address to either listen on (backend) or connect to (frontend)",
	)

	flag.StringVar(
		&city,
		"city",
		"Casablanca",
		"The city to fetch prayer times for",
	)

	flag.StringVar(
		&cntry,
		"country",
		"Morocco",
		"The country the city is in",
	)

	flag.Parse()

	if appDir != common.BaseDir {
		if err = common.SetBaseDir(appDir); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Cannot set application directory to %s: %s\n",
				appDir,
				err.Error())
			os.Exit(1)
		}
	}

	if mode == "backend" {
		if daemon, err = backend.Summon(addr, city, cntry); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Failed to initialize backend: %s\n",
				err.Error())
			os.Exit(1)
		}

		var sigQ = make(chan os.Signal, 1)
		var ticker = time.NewTicker(time.Second * 2)

		signal.Notify(sigQ, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)

		for daemon.IsAlive() {
			select {
			case sig := <-sigQ:
				fmt.Printf("Quitting on signal %s\n", sig)
				daemon.Banish() // nolint: errcheck
				os.Exit(0)
			case <-ticker.C:
				continue
			}
		}
	} else if mode == "frontend" {
		var gui *ui.GUI

		if gui, err = ui.Create(addr); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Cannot create GUI: %s\n",
				err.Error())
			os.Exit(1)
		}

		gui.Run()
	} else {
		fmt.Fprintf(
			os.Stderr,
			"Unknown mode %q",
			mode,
		)

		os.Exit(1)
	}
}
