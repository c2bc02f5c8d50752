// /home/wahid/go/src/github.com/wahid/muezzin/common/common.go
// -*- mode: go; coding: utf-8; -*-
// Created on 11. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-25 19:03:48 wahid>

// Package common provides constants, variables and functions used
// throughout the application.
package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/blicero/krylib"
	"github.com/hashicorp/logutils"
	"github.com/odeke-em/go-uuid"
	"github.com/wahid/muezzin/common/logdomain"
)

// Debug, if true, causes the application to log a lot of additional
// information and to perform additional sanity checks.
const Debug = true

// AppName is the name of the application, Version is its version number,
// TimestampFormat et al are the formats used for rendering time stamps.
const (
	AppName                  = "Muezzin"
	Version                  = "0.4.2"
	TimestampFormat          = "2006-01-02 15:04:05"
	TimestampFormatMinute    = "2006-01-02 15:04"
	TimestampFormatTime      = "15:04:05"
	TimestampFormatSubSecond = "2006-01-02 15:04:05.0000 MST"
	DefaultPort              = 7302
)

// LogLevels are the names of the log levels supported by the logger.
var LogLevels = []logutils.LogLevel{
	"TRACE",
	"DEBUG",
	"INFO",
	"WARN",
	"ERROR",
	"CRITICAL",
	"CANTHAPPEN",
	"SILENT",
}

// PackageLevels defines minimum log levels per package.
var PackageLevels = make(map[logdomain.ID]logutils.LogLevel, len(LogLevels))

func init() {
	for _, dom := range logdomain.AllDomains() {
		PackageLevels[dom] = MinLogLevel
	}
} // func init()

// MinLogLevel is the minimum level a log message must have to actually
// get logged.
const MinLogLevel = "TRACE"

// BaseDir is the directory where the application stores its data,
// LogPath and DbPath are the locations of the log file and the database.
var (
	BaseDir = filepath.Join(os.Getenv("HOME"), ".muezzin.d")
	LogPath = filepath.Join(BaseDir, "muezzin.log")
	DbPath  = filepath.Join(BaseDir, "muezzin.db")
)

// SetBaseDir sets the BaseDir and related variables.
func SetBaseDir(path string) error {
	fmt.Printf("Setting BaseDir to %s\n", path)

	BaseDir = path
	LogPath = filepath.Join(BaseDir, "muezzin.log")
	DbPath = filepath.Join(BaseDir, "muezzin.db")

	if err := InitApp(); err != nil {
		fmt.Printf("Error initializing application environment: %s\n",
			err.Error())
		return err
	}

	return nil
} // func SetBaseDir(path string) error

// InitApp performs some basic preparations for the application to run.
// Currently, this means creating the BaseDir if it does not exist.
func InitApp() error {
	var err error
	var exists bool

	if exists, err = krylib.Fexists(BaseDir); err != nil {
		return fmt.Errorf("Error checking if BaseDir %s exists: %s",
			BaseDir,
			err.Error())
	} else if !exists {
		if err = os.MkdirAll(BaseDir, 0755); err != nil {
			return fmt.Errorf("Error creating BaseDir %s: %s",
				BaseDir,
				err.Error())
		}
	}

	return nil
} // func InitApp() error

// GetLogger tries to create a Logger for the given log domain.
func GetLogger(dom logdomain.ID) (*log.Logger, error) {
	var (
		err error
		fh  *os.File
	)

	if err = InitApp(); err != nil {
		return nil, fmt.Errorf("Error initializing application environment: %s",
			err.Error())
	}

	var name = fmt.Sprintf("%s.%s",
		AppName,
		dom)

	if fh, err = os.OpenFile(LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err != nil {
		return nil, fmt.Errorf("Cannot open log file %s: %s",
			LogPath,
			err.Error())
	}

	var writer = io.MultiWriter(os.Stdout, fh)

	var filter = &logutils.LevelFilter{
		Levels:   LogLevels,
		MinLevel: logutils.LogLevel(PackageLevels[dom]),
		Writer:   writer,
	}

	var logger = log.New(filter, name+" ", log.Ldate|log.Ltime|log.Lshortfile)

	return logger, nil
} // func GetLogger(dom logdomain.ID) (*log.Logger, error)

// GetUUID returns a randomized UUID.
func GetUUID() string {
	return uuid.NewRandom().String()
} // func GetUUID() string
