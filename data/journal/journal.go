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

// Package journal persists the registry event feed so membership history
// can be queried after the fact.
package journal

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/gybernaty/gybermint/protocol"
	"github.com/gybernaty/gybermint/util/db"
)

const (
	// JournalFilename is the name of the event database inside a data directory.
	JournalFilename = "events.sqlite"

	maxRows = 100
)

var schema = `
	CREATE TABLE IF NOT EXISTS events(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		details TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx ON events (
		created_at	DESC,
		kind
	);
`

// Entry is one recorded registry event.
type Entry struct {
	ID        uint64 `json:"id"`
	Kind      string `json:"kind"`
	Details   string `json:"details"`
	CreatedAt int64  `json:"createdAt"`
}

// Journal is the db access layer for the event history.
type Journal struct {
	acc db.Accessor

	now func() int64
}

// MakeJournal opens (creating if needed) the event database at dbPath.
func MakeJournal(dbPath string, inMemory bool) (*Journal, error) {
	acc, err := db.MakeAccessor(dbPath, false, inMemory)
	if err != nil {
		return nil, errors.Wrap(err, "MakeJournal: failed to open event db")
	}

	j := &Journal{acc: acc, now: func() int64 { return time.Now().Unix() }}
	err = j.acc.Atomic(func(tx *sql.Tx) error {
		_, err := tx.Exec(schema)
		return err
	})
	if err != nil {
		acc.Close()
		return nil, errors.Wrap(err, "MakeJournal: failed to install schema")
	}
	return j, nil
}

// Notify implements the registry event sink: details are marshalled to JSON
// and appended to the history. A journal failure must not fail the operation
// that produced the event, so errors are swallowed after Record.
func (j *Journal) Notify(kind protocol.EventKind, details interface{}) {
	j.Record(kind, details)
}

// Record appends one event to the history.
func (j *Journal) Record(kind protocol.EventKind, details interface{}) error {
	raw, err := json.Marshal(details)
	if err != nil {
		return errors.Wrap(err, "Record: could not marshal event details")
	}

	return j.acc.Atomic(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO events (kind, details, created_at) VALUES ($1, $2, $3)`,
			string(kind), string(raw), j.now())
		return err
	})
}

// Recent returns the latest events, newest first.
// If top is 0, it will return 100 events by default.
func (j *Journal) Recent(top uint64) ([]Entry, error) {
	query := `
		SELECT
			id,
			kind,
			details,
			created_at
		FROM
			events
		ORDER BY id DESC
		LIMIT $1;
	`

	// limit
	if top == 0 {
		top = maxRows
	}

	rows, err := j.acc.Handle.Query(query, top)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Details, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// RecentByKind returns the latest events of one kind, newest first.
// If top is 0, it will return 100 events by default.
func (j *Journal) RecentByKind(kind protocol.EventKind, top uint64) ([]Entry, error) {
	query := `
		SELECT
			id,
			kind,
			details,
			created_at
		FROM
			events
		WHERE
		kind = $1
		ORDER BY id DESC
		LIMIT $2;
	`

	if top == 0 {
		top = maxRows
	}

	rows, err := j.acc.Handle.Query(query, string(kind), top)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Details, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the db connection.
func (j *Journal) Close() {
	j.acc.Close()
}
