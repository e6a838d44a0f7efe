// Copyright (C) 2019 Algorand, Inc.
// This file is part of go-algorand
//
// go-algorand is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// go-algorand is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with go-algorand.  If not, see <https://www.gnu.org/licenses/>.

// Package gyberd hosts the registry behind the REST API.
package gyberd

import (
	"context"
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gatechain/go-deadlock"
	"github.com/gatechain/logging"

	"github.com/gybernaty/gybermint/config"
	apiServer "github.com/gybernaty/gybermint/daemon/gyberd/api/server"
	"github.com/gybernaty/gybermint/data"
	"github.com/gybernaty/gybermint/data/asset"
	"github.com/gybernaty/gybermint/data/basics"
	"github.com/gybernaty/gybermint/data/journal"
	"github.com/gybernaty/gybermint/data/member"
	"github.com/gybernaty/gybermint/protocol"
)

var server http.Server

// Server represents an instance of the REST API HTTP server
type Server struct {
	RootPath string

	log      logging.Logger
	registry *data.Registry
	store    *member.Store
	balances *asset.BalanceStore
	events   *journal.Journal
	pidFile  string
	netFile  string

	stopping deadlock.Mutex
	stopped  bool
}

// Initialize opens the stores and warms the registry.
func (s *Server) Initialize(cfg config.Local) error {
	s.log = logging.Base()

	liveLog := filepath.Join(s.RootPath, "registry.log")
	archive := filepath.Join(s.RootPath, cfg.LogArchiveName)
	fmt.Println("Logging to: ", liveLog)
	var maxLogAge time.Duration
	var err error
	if cfg.LogArchiveMaxAge != "" {
		maxLogAge, err = time.ParseDuration(cfg.LogArchiveMaxAge)
		if err != nil {
			s.log.Fatalf("invalid config LogArchiveMaxAge: %s", err)
			maxLogAge = 0
		}
	}
	logWriter := logging.MakeCyclicFileWriter(liveLog, archive, cfg.LogSizeLimit, maxLogAge)
	s.log.SetOutput(logWriter)
	s.log.SetLevel(logging.Level(cfg.BaseLoggerDebugLevel))

	// configure the deadlock detector library
	switch {
	case cfg.DeadlockDetection > 0:
		// Explicitly enabled deadlock detection
		deadlock.Opts.Disable = false

	case cfg.DeadlockDetection < 0:
		// Explicitly disabled deadlock detection
		deadlock.Opts.Disable = true
	}

	var admin basics.Address
	if cfg.RootAdmin != "" {
		admin, err = basics.UnmarshalChecksumAddress(cfg.RootAdmin)
		if err != nil {
			return fmt.Errorf("invalid config RootAdmin: %s", err)
		}
	}

	s.store, err = member.MakeStore(filepath.Join(s.RootPath, member.StoreFilename), cfg.MemberDBInMemory)
	if err != nil {
		return fmt.Errorf("couldn't open the member store: %s", err)
	}

	s.balances = asset.InitBalanceStore("balancestore", cfg.AssetDBBackend, s.RootPath)

	s.events, err = journal.MakeJournal(filepath.Join(s.RootPath, journal.JournalFilename), cfg.MemberDBInMemory)
	if err != nil {
		return fmt.Errorf("couldn't open the event journal: %s", err)
	}

	proto, ok := config.Coop[protocol.CoopCurrentVersion]
	if !ok {
		return fmt.Errorf("unsupported coop version: %v", protocol.CoopCurrentVersion)
	}

	sink := data.MakeTeeSink(data.MakeLogSink(s.log), s.events)
	s.registry, err = data.MakeRegistry(s.log, proto, s.store, s.balances, sink, admin)
	if err != nil {
		return fmt.Errorf("couldn't initialize the registry: %s", err)
	}

	return nil
}

// helper handles startup of tcp listener
func makeListener(addr string) (net.Listener, error) {
	var listener net.Listener
	var err error
	if (addr == "127.0.0.1:0") || (addr == ":0") {
		// if port 0 is provided, prefer port 8080 first, then fall back to port 0
		preferredAddr := strings.Replace(addr, ":0", ":8080", -1)
		listener, err = net.Listen("tcp", preferredAddr)
		if err == nil {
			return listener, err
		}
	}
	// err was not nil or :0 was not provided, fall back to originally passed addr
	return net.Listen("tcp", addr)
}

// Start serves the registry API until interrupted.
func (s *Server) Start(cfg config.Local) {
	s.log.Info("Trying to start the Gybernaty registry")
	fmt.Print("Initializing the Gybernaty registry node... ")
	fmt.Println("Success!")

	apiHandler := apiServer.NewRouter(s.log, s.registry, s.balances, s.events)

	addr := cfg.EndpointAddress
	if addr == "" {
		addr = ":http"
	}

	listener, err := makeListener(addr)
	if err != nil {
		fmt.Printf("Could not start registry node: %v\n", err)
		os.Exit(1)
	}

	addr = listener.Addr().String()
	server = http.Server{
		Addr:         addr,
		Handler:      apiHandler,
		ReadTimeout:  time.Duration(cfg.RestReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.RestWriteTimeoutSeconds) * time.Second,
	}

	defer s.Stop()

	tcpListener := listener.(*net.TCPListener)
	errChan := make(chan error, 1)
	go func() {
		err := server.Serve(tcpListener)
		errChan <- err
	}()

	// Set up files for our PID and our listening address
	s.pidFile = filepath.Join(s.RootPath, "gyberd.pid")
	s.netFile = filepath.Join(s.RootPath, "gyberd.net")
	ioutil.WriteFile(s.pidFile, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0644)
	ioutil.WriteFile(s.netFile, []byte(fmt.Sprintf("%s\n", addr)), 0644)

	// Handle signals cleanly
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	signal.Ignore(syscall.SIGHUP)
	go func() {
		sig := <-c
		fmt.Printf("Exiting on %v\n", sig)
		s.Stop()
		os.Exit(0)
	}()

	fmt.Printf("Registry running and accepting requests over HTTP on %v. Press Ctrl-C to exit\n", addr)
	err = <-errChan
	if err != nil {
		s.log.Warn(err)
	} else {
		s.log.Info("Registry exited successfully")
	}
}

// Stop initiates a graceful shutdown by shutting down the HTTP server and
// closing the stores.
func (s *Server) Stop() {
	s.stopping.Lock()
	defer s.stopping.Unlock()

	if s.stopped {
		return
	}

	err := server.Shutdown(context.Background())
	if err != nil {
		s.log.Error(err)
	}

	if s.store != nil {
		s.store.Close()
	}
	if s.balances != nil {
		s.balances.Close()
	}
	if s.events != nil {
		s.events.Close()
	}

	os.Remove(s.pidFile)
	os.Remove(s.netFile)

	s.stopped = true
}
