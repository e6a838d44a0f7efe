package asset

import (
	"fmt"

	"github.com/gatechain/go-deadlock"
	"github.com/tendermint/go-amino"
	dbm "github.com/tendermint/tm-db"

	"github.com/gybernaty/gybermint/data/basics"
)

var cdc = amino.NewCodec()

var poolKey = []byte("assetPool")

// balanceRecord is the stored per-account state.
type balanceRecord struct {
	Balance uint64 `json:"balance"`
}

// BalanceStore is an Oracle backed by a tm-db key/value store. One record
// per account address plus a pooled balance the cooperative pays
// withdrawals out of.
type BalanceStore struct {
	db dbm.DB

	mtx deadlock.RWMutex
}

// NewBalanceStore wraps an opened key/value database.
func NewBalanceStore(db dbm.DB) *BalanceStore {
	return &BalanceStore{db: db}
}

// InitBalanceStore opens a named backend in dir and wraps it. Backend is a
// tm-db backend name, e.g. "goleveldb" or "memdb".
func InitBalanceStore(name, backend, dir string) *BalanceStore {
	db := dbm.NewDB(name, dbm.DBBackendType(backend), dir)
	return NewBalanceStore(db)
}

// BalanceOf returns the managed-asset balance held by addr.
func (bs *BalanceStore) BalanceOf(addr basics.Address) (uint64, error) {
	bs.mtx.RLock()
	defer bs.mtx.RUnlock()
	return bs.load(addr[:])
}

// Pool returns the pooled balance withdrawals draw from.
func (bs *BalanceStore) Pool() (uint64, error) {
	bs.mtx.RLock()
	defer bs.mtx.RUnlock()
	return bs.load(poolKey)
}

// Transfer moves amount from the pool to the given account, atomically:
// on any error nothing has moved.
func (bs *BalanceStore) Transfer(to basics.Address, amount uint64) error {
	bs.mtx.Lock()
	defer bs.mtx.Unlock()

	pool, err := bs.load(poolKey)
	if err != nil {
		return err
	}
	if pool < amount {
		return fmt.Errorf("transfer of %d exceeds pooled balance %d", amount, pool)
	}
	dest, err := bs.load(to[:])
	if err != nil {
		return err
	}

	bs.save(poolKey, pool-amount)
	bs.save(to[:], dest+amount)
	bs.db.SetSync(nil, nil)
	return nil
}

// Credit adds amount to an account balance. Used at bootstrap and by tests.
func (bs *BalanceStore) Credit(addr basics.Address, amount uint64) error {
	bs.mtx.Lock()
	defer bs.mtx.Unlock()

	cur, err := bs.load(addr[:])
	if err != nil {
		return err
	}
	bs.save(addr[:], cur+amount)
	return nil
}

// FundPool adds amount to the pooled balance.
func (bs *BalanceStore) FundPool(amount uint64) error {
	bs.mtx.Lock()
	defer bs.mtx.Unlock()

	cur, err := bs.load(poolKey)
	if err != nil {
		return err
	}
	bs.save(poolKey, cur+amount)
	return nil
}

// Close closes the underlying database.
func (bs *BalanceStore) Close() {
	bs.db.Close()
}

func (bs *BalanceStore) load(key []byte) (uint64, error) {
	bytes := bs.db.Get(key)
	if len(bytes) == 0 {
		return 0, nil
	}
	var rec balanceRecord
	err := cdc.UnmarshalJSON(bytes, &rec)
	if err != nil {
		return 0, fmt.Errorf("could not unmarshal balance bytes: %X", bytes)
	}
	return rec.Balance, nil
}

func (bs *BalanceStore) save(key []byte, balance uint64) {
	bytes, err := cdc.MarshalJSON(balanceRecord{Balance: balance})
	if err != nil {
		panic(fmt.Sprintf("could not marshal balance record: %v", err))
	}
	bs.db.Set(key, bytes)
}
