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

package member

import (
	"database/sql"

	"github.com/pkg/errors"

	"github.com/gybernaty/gybermint/data/basics"
	"github.com/gybernaty/gybermint/util/db"
)

// StoreFilename is the name of the member database inside a data directory.
const StoreFilename = "member.sqlite"

var schema = `
	CREATE TABLE IF NOT EXISTS members(
		addr CHAR(58) PRIMARY KEY NOT NULL,
		display_name TEXT NOT NULL,
		profile_link TEXT NOT NULL,
		tier INTEGER NOT NULL,
		marked_up INTEGER NOT NULL DEFAULT 0,
		marked_down INTEGER NOT NULL DEFAULT 0,
		last_withdrawal INTEGER NOT NULL DEFAULT 0,
		window_count INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS operators(
		addr CHAR(58) PRIMARY KEY NOT NULL
	);
`

// Store is the durable backing of the registry: member records and the
// operator set. All mutations go through Atomic so that a single registry
// operation commits or rolls back as one unit.
type Store struct {
	acc db.Accessor
}

// MakeStore opens (creating if needed) the member database at dbPath.
func MakeStore(dbPath string, inMemory bool) (*Store, error) {
	acc, err := db.MakeAccessor(dbPath, false, inMemory)
	if err != nil {
		return nil, errors.Wrap(err, "MakeStore: failed to open member db")
	}

	s := &Store{acc: acc}
	err = s.acc.Atomic(func(tx *sql.Tx) error {
		_, err := tx.Exec(schema)
		return err
	})
	if err != nil {
		acc.Close()
		return nil, errors.Wrap(err, "MakeStore: failed to install schema")
	}
	return s, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() {
	s.acc.Close()
}

// Atomic runs fn inside one database transaction, retrying while the
// database is locked.
func (s *Store) Atomic(fn func(tx *sql.Tx) error) error {
	return s.acc.Atomic(fn)
}

// AtomicOnce runs fn inside one database transaction with no retry, for
// closures that reach outside the database and must not run twice.
func (s *Store) AtomicOnce(fn func(tx *sql.Tx) error) error {
	return s.acc.AtomicOnce(fn)
}

// InsertTx writes a brand-new member record inside an existing transaction.
// The primary key enforces address uniqueness.
func InsertTx(tx *sql.Tx, m Member) error {
	_, err := tx.Exec(`INSERT INTO members (addr, display_name, profile_link, tier, marked_up, marked_down, last_withdrawal, window_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Addr.String(), m.DisplayName, m.ProfileLink, uint64(m.Tier),
		boolToInt(m.MarkedUp), boolToInt(m.MarkedDown), m.LastWithdrawal, m.WindowCount)
	return err
}

// UpdateTx overwrites the mutable fields of an existing member record
// inside an existing transaction.
func UpdateTx(tx *sql.Tx, m Member) error {
	res, err := tx.Exec(`UPDATE members SET tier=?, marked_up=?, marked_down=?, last_withdrawal=?, window_count=? WHERE addr=?`,
		uint64(m.Tier), boolToInt(m.MarkedUp), boolToInt(m.MarkedDown), m.LastWithdrawal, m.WindowCount, m.Addr.String())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != 1 {
		return errors.Errorf("UpdateTx: member %s not present", m.Addr.String())
	}
	return nil
}

// Insert writes a brand-new member record.
func (s *Store) Insert(m Member) error {
	return s.acc.Atomic(func(tx *sql.Tx) error {
		return InsertTx(tx, m)
	})
}

// Update overwrites the mutable fields of an existing member record.
func (s *Store) Update(m Member) error {
	return s.acc.Atomic(func(tx *sql.Tx) error {
		return UpdateTx(tx, m)
	})
}

// Lookup fetches one member record. ok is false when the address was never
// enrolled.
func (s *Store) Lookup(addr basics.Address) (m Member, ok bool, err error) {
	row := s.acc.Handle.QueryRow(`SELECT addr, display_name, profile_link, tier, marked_up, marked_down, last_withdrawal, window_count
		FROM members WHERE addr=?`, addr.String())
	m, err = scanMember(row)
	if err == sql.ErrNoRows {
		return Member{}, false, nil
	}
	if err != nil {
		return Member{}, false, err
	}
	return m, true, nil
}

// Members returns every enrolled member record.
func (s *Store) Members() ([]Member, error) {
	rows, err := s.acc.Handle.Query(`SELECT addr, display_name, profile_link, tier, marked_up, marked_down, last_withdrawal, window_count
		FROM members ORDER BY addr`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// AddOperator records an identity in the operator set. Adding an identity
// that is already present is not an error.
func (s *Store) AddOperator(addr basics.Address) error {
	return s.acc.Atomic(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT OR IGNORE INTO operators (addr) VALUES (?)`, addr.String())
		return err
	})
}

// Operators returns every identity holding operator privilege.
func (s *Store) Operators() ([]basics.Address, error) {
	rows, err := s.acc.Handle.Query(`SELECT addr FROM operators`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []basics.Address
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		addr, err := basics.UnmarshalChecksumAddress(raw)
		if err != nil {
			return nil, errors.Wrap(err, "Operators: corrupt operator row")
		}
		out = append(out, addr)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMember(row rowScanner) (Member, error) {
	var m Member
	var raw string
	var tier, up, down uint64
	err := row.Scan(&raw, &m.DisplayName, &m.ProfileLink, &tier, &up, &down, &m.LastWithdrawal, &m.WindowCount)
	if err != nil {
		return Member{}, err
	}
	m.Addr, err = basics.UnmarshalChecksumAddress(raw)
	if err != nil {
		return Member{}, errors.Wrap(err, "scanMember: corrupt member row")
	}
	m.Tier = basics.Tier(tier)
	m.MarkedUp = up != 0
	m.MarkedDown = down != 0
	return m, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
