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

// Package db defines database utility functions.
//
// These functions currently work on a sqlite database.
// Other databases may not work with functions in this package.
package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// busy attempts before Atomic gives up on a locked database
const busyRetries = 25

// An Accessor manages a sqlite database handle and any outstanding batching operations.
type Accessor struct {
	Handle   *sql.DB
	readOnly bool
	inMemory bool
}

// MakeAccessor creates a new Accessor.
func MakeAccessor(dbfilename string, readOnly bool, inMemory bool) (Accessor, error) {
	var db Accessor
	db.readOnly = readOnly
	db.inMemory = inMemory

	var err error
	db.Handle, err = sql.Open("sqlite3", uri(dbfilename, readOnly, inMemory))
	if err != nil {
		return Accessor{}, err
	}

	// e.g. a journal mode of WAL won't work over NFS, so leave the
	// default rollback journal in place and serialize writers here.
	db.Handle.SetMaxOpenConns(1)
	return db, nil
}

func uri(filename string, readOnly bool, memory bool) string {
	uri := fmt.Sprintf("file:%s?_busy_timeout=%d", filename, int64(time.Second/time.Millisecond))
	if readOnly {
		uri += "&mode=ro"
	}
	if memory {
		uri += "&mode=memory&cache=shared"
	}
	return uri
}

// Close closes the connection.
func (db Accessor) Close() {
	db.Handle.Close()
	db.Handle = nil
}

// Atomic executes a piece of code with respect to the database atomically.
// For transactions where readOnly is false, sync determines whether or not to wait for the result.
func (db Accessor) Atomic(fn func(tx *sql.Tx) error) (err error) {
	for i := 0; i < busyRetries; i++ {
		if i > 0 {
			time.Sleep(100 * time.Millisecond)
		}

		var tx *sql.Tx
		tx, err = db.Handle.Begin()
		if err != nil {
			if dbBusy(err) {
				continue
			}
			return
		}

		err = fn(tx)
		if err != nil {
			tx.Rollback()
			if dbBusy(err) {
				continue
			}
			return
		}

		err = tx.Commit()
		if err == nil {
			return
		}
		if !dbBusy(err) {
			return
		}
	}
	return
}

// AtomicOnce is Atomic without the busy retry. Closures with external side
// effects must go through here: Atomic re-runs its closure when Commit
// reports a locked database, which would repeat the side effect even though
// the database changes rolled back.
func (db Accessor) AtomicOnce(fn func(tx *sql.Tx) error) error {
	tx, err := db.Handle.Begin()
	if err != nil {
		return err
	}

	err = fn(tx)
	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func dbBusy(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "database is locked")
}
