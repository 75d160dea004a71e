// Package state manages greet's persistent greeting history using BoltDB.
// All writes are transactional; reads use read-only transactions to minimise contention.
package state

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	v1 "github.com/f9-o/greet/api/v1"
	"github.com/f9-o/greet/pkg/errs"
)

var bucketGreetings = []byte("greetings")

// DB wraps a BoltDB instance with typed accessor methods.
type DB struct {
	bolt *bbolt.DB
}

// Open opens (or creates) the state database at the given path.
func Open(path string) (*DB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, errs.New(errs.ErrStateOpen, "state.open", err).
			WithResource(path).
			WithAdvice("another greet process may hold the lock; retry or pass --no-history")
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketGreetings)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errs.New(errs.ErrStateOpen, "state.init", err).WithResource(path)
	}

	return &DB{bolt: db}, nil
}

// Close closes the underlying BoltDB file.
func (db *DB) Close() error {
	return db.bolt.Close()
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.bolt.Path()
}

// ─────────────────────────────────────────────────────────────────────────────
// Greeting history
// ─────────────────────────────────────────────────────────────────────────────

// Record appends a greeting and trims the bucket to maxRecords (0 = no cap).
// Seq is assigned from the bucket sequence; Timestamp defaults to now.
func (db *DB) Record(rec v1.GreetingRecord, maxRecords int) (v1.GreetingRecord, error) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	err := db.bolt.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketGreetings)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		rec.Seq = seq
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		if err := b.Put(seqKey(seq), data); err != nil {
			return err
		}
		return trim(b, maxRecords)
	})
	if err != nil {
		return rec, errs.Wrap(err, errs.ErrStateWrite, "history.record")
	}
	return rec, nil
}

// List returns up to limit records, newest first. limit <= 0 returns all.
func (db *DB) List(limit int) ([]v1.GreetingRecord, error) {
	var recs []v1.GreetingRecord
	err := db.bolt.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketGreetings).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(recs) >= limit {
				break
			}
			var r v1.GreetingRecord
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("unmarshal greeting %d: %w", binary.BigEndian.Uint64(k), err)
			}
			recs = append(recs, r)
		}
		return nil
	})
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrStateRead, "history.list")
	}
	return recs, nil
}

// Count returns the number of stored records.
func (db *DB) Count() (int, error) {
	var n int
	err := db.bolt.View(func(tx *bbolt.Tx) error {
		n = count(tx.Bucket(bucketGreetings))
		return nil
	})
	return n, err
}

// Clear removes every record. The sequence counter keeps counting.
func (db *DB) Clear() error {
	err := db.bolt.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketGreetings)
		seq := b.Sequence()
		if err := tx.DeleteBucket(bucketGreetings); err != nil {
			return err
		}
		nb, err := tx.CreateBucket(bucketGreetings)
		if err != nil {
			return err
		}
		return nb.SetSequence(seq)
	})
	return errs.Wrap(err, errs.ErrStateWrite, "history.clear")
}

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}

// count walks the cursor; Bucket.Stats ignores uncommitted writes.
func count(b *bbolt.Bucket) int {
	n := 0
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		n++
	}
	return n
}

// trim deletes the oldest keys until at most limit remain.
func trim(b *bbolt.Bucket, limit int) error {
	if limit <= 0 {
		return nil
	}
	excess := count(b) - limit
	if excess <= 0 {
		return nil
	}
	var stale [][]byte
	c := b.Cursor()
	for k, _ := c.First(); k != nil && len(stale) < excess; k, _ = c.Next() {
		stale = append(stale, append([]byte(nil), k...))
	}
	for _, k := range stale {
		if err := b.Delete(k); err != nil {
			return err
		}
	}
	return nil
}
