// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/luxfi/launchpad/pkg/chainid"
	luxlog "github.com/luxfi/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder stores history in a local SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string, log luxlog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Debug("history database opened", "path", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at INTEGER NOT NULL,
			hash       TEXT,
			local_id   TEXT,
			tx_type    TEXT NOT NULL,
			address    TEXT NOT NULL,
			chain_id   INTEGER NOT NULL,
			amount     INTEGER,
			fee        INTEGER,
			status     TEXT NOT NULL,
			error      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tx_address ON transactions(address, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_tx_hash ON transactions(hash)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordTransaction(rec *TxRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	res, err := r.db.Exec(
		`INSERT INTO transactions (created_at, hash, local_id, tx_type, address, chain_id, amount, fee, status, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.CreatedAt.UnixMilli(), rec.Hash, rec.LocalID, rec.Type, rec.Address,
		int64(rec.ChainID), int64(rec.Amount), int64(rec.Fee), string(rec.Status), rec.Error,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	if rec.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("insert transaction id: %w", err)
	}
	return nil
}

func (r *SQLiteRecorder) UpdateStatus(hash string, status TxStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.Exec(`UPDATE transactions SET status = ? WHERE hash = ?`, string(status), hash)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no transaction with hash %s", hash)
	}
	return nil
}

// ListTransactions returns the newest records first. An empty address
// lists every address; a non-positive limit lists everything.
func (r *SQLiteRecorder) ListTransactions(address string, limit int) ([]TxRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.Query(
		`SELECT id, created_at, hash, local_id, tx_type, address, chain_id, amount, fee, status, error
		 FROM transactions WHERE (? = '' OR address = ?) ORDER BY created_at DESC, id DESC LIMIT ?`,
		address, address, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []TxRecord
	for rows.Next() {
		var (
			rec                    TxRecord
			created                int64
			chain, amount, fee     int64
			hash, localID, errText sql.NullString
			status                 string
		)
		if err := rows.Scan(&rec.ID, &created, &hash, &localID, &rec.Type, &rec.Address, &chain, &amount, &fee, &status, &errText); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		rec.CreatedAt = time.UnixMilli(created)
		rec.Hash = hash.String
		rec.LocalID = localID.String
		rec.Error = errText.String
		rec.ChainID = chainid.ID(chain)
		rec.Amount = uint64(amount)
		rec.Fee = uint64(fee)
		rec.Status = TxStatus(status)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
