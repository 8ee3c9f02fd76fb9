// /home/krylon/go/src/github.com/blicero/lethe/common/common.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 02. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-21 19:12:48 krylon>

// Package common provides constants and helper functions used throughout
// the application.
package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/blicero/krylib"
	"github.com/blicero/lethe/logdomain"
	"github.com/hashicorp/logutils"
	"github.com/odeke-em/go-uuid"
)

// Debug indicates whether the application is run in debugging mode,
// mainly affecting the minimum log level.
const Debug = true

// AppName is the name of the application, Version is ... the version,
// TimestampFormat is the default format for rendering time stamps.
const (
	AppName                  = "Lethe"
	Version                  = "0.1.7"
	TimestampFormat          = "2006-01-02 15:04:05"
	TimestampFormatMinute    = "2006-01-02 15:04"
	TimestampFormatSubSecond = "2006-01-02 15:04:05.0000 MST"
	TimestampFormatTime      = "15:04:05"
	DefaultPort              = 7202
)

// BuildStamp is filled in at build time.
var BuildStamp = "2023-04-21 19:10:00"

// BaseDir is the directory where the application keeps its files,
// LogPath is the path of the log file, DbPath is the path of the
// database.
var (
	BaseDir = filepath.Join(os.Getenv("HOME"), ".lethe.d")
	LogPath = filepath.Join(BaseDir, "lethe.log")
	DbPath  = filepath.Join(BaseDir, "lethe.db")
)

// SetBaseDir sets the BaseDir and related variables and makes sure the
// directory exists.
func SetBaseDir(path string) error {
	fmt.Printf("Setting BaseDir to %s\n", path)

	BaseDir = path
	LogPath = filepath.Join(BaseDir, "lethe.log")
	DbPath = filepath.Join(BaseDir, "lethe.db")

	if err := InitApp(); err != nil {
		fmt.Printf("Error initializing application environment: %s\n",
			err.Error())
		return err
	}

	return nil
} // func SetBaseDir(path string) error

// LogLevels are the valid log levels, in ascending order of severity.
var LogLevels = []logutils.LogLevel{
	"TRACE",
	"DEBUG",
	"INFO",
	"WARN",
	"ERROR",
	"CANTHAPPEN",
	"SILENT",
}

// MinLogLevel is the minimum level a log message must have to
// actually get logged.
var MinLogLevel logutils.LogLevel = "TRACE"

func init() {
	if !Debug {
		MinLogLevel = "INFO"
	}
} // func init()

// GetLogger returns a Logger for the given log domain.
func GetLogger(dom logdomain.ID) (*log.Logger, error) {
	var (
		err     error
		logfile *os.File
		name    = fmt.Sprintf("%s.%s ",
			AppName,
			dom)
	)

	if err = InitApp(); err != nil {
		return nil, fmt.Errorf("Error initializing application environment: %s",
			err.Error())
	}

	if logfile, err = os.OpenFile(LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err != nil {
		return nil, fmt.Errorf("Error opening log file %s: %s",
			LogPath,
			err.Error())
	}

	var writer = io.MultiWriter(os.Stdout, logfile)

	var filter = &logutils.LevelFilter{
		Levels:   LogLevels,
		MinLevel: MinLogLevel,
		Writer:   writer,
	}

	var logger = log.New(filter, name, log.Ldate|log.Ltime|log.Lshortfile)

	return logger, nil
} // func GetLogger(dom logdomain.ID) (*log.Logger, error)

// InitApp performs some basic preparations for the application to run.
// It is safe to call multiple times.
func InitApp() error {
	var (
		err    error
		exists bool
	)

	if exists, err = krylib.Fexists(BaseDir); err != nil {
		return fmt.Errorf("Error checking if BaseDir %s exists: %s",
			BaseDir,
			err.Error())
	} else if !exists {
		if err = os.MkdirAll(BaseDir, 0700); err != nil {
			return fmt.Errorf("Error creating BaseDir %s: %s",
				BaseDir,
				err.Error())
		}
	}

	return nil
} // func InitApp() error

// GetUUID returns a randomized UUID as a string.
func GetUUID() string {
	return uuid.New()
} // func GetUUID() string
