// Package ledger implements the durable transaction store: a flat UTF-8
// text file holding a concatenation of self-contained JSON record units.
//
// The file is the single source of truth for local state. At open time
// the store replays the log into an in-memory slice (insertion order)
// with two identifier indexes, so lookups avoid the O(n) file scan the
// format would otherwise force. Creations append one unit; status
// updates append a fresh snapshot unit (write-ahead style) and the log
// is compacted back to one unit per live record when it grows past a
// threshold and again at shutdown.
//
// Durability beats strict validation throughout: malformed units are
// skipped on replay, a missing file means zero records, and rewrites are
// atomic (temp file + rename) so readers of the file never see a partial
// store.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lumipay/pixbridge/pkg/logctx"
	"github.com/lumipay/pixbridge/pkg/types"
)

// compactFactor bounds log growth: when the file holds more than this
// many units per live record, the next update triggers a compaction.
const compactFactor = 4

// Store is the explicit handle for one ledger. Open it at service start,
// Close it at shutdown. All writers serialize on the handle's lock;
// readers take the shared side and only ever observe fully-formed state.
type Store struct {
	mu  sync.RWMutex
	w   *writer
	log *zap.SugaredLogger

	records         []*Record // insertion order, preserved across rewrites
	byTransactionID map[string]int
	byExternalID    map[string]int
	units           int // units currently sitting in the log file
}

// StatusUpdate carries an incoming status change. Amount and Method are
// merged only when supplied.
type StatusUpdate struct {
	Status types.PaymentStatus
	Amount *decimal.Decimal
	Method string
}

// Open loads the ledger at path, replaying every well-formed unit.
// A missing file is an empty ledger, not an error.
func Open(path string, log *zap.SugaredLogger) (*Store, error) {
	s := &Store{
		w:               &writer{path: path},
		log:             log,
		byTransactionID: make(map[string]int),
		byExternalID:    make(map[string]int),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger %s: %w", path, err)
	}

	for unit := range ScanUnits(data) {
		rec, err := DecodeRecord(unit)
		if err != nil {
			s.log.Warnw("ledger_skip_malformed_unit", "error", err.Error())
			continue
		}
		s.units++
		s.replay(rec)
	}
	s.log.Infow("ledger_opened", "path", path, "records", len(s.records), "units", s.units)
	return s, nil
}

// replay folds one decoded unit into memory. A unit whose identity is
// already known is a later snapshot of the same record: it replaces the
// earlier state in place, keeping the original insertion position
// (last-write-wins by position).
func (s *Store) replay(rec *Record) {
	if i, ok := s.lookup(rec.TransactionID, rec.ExternalID); ok {
		s.records[i] = rec
		s.index(i, rec)
		return
	}
	s.records = append(s.records, rec)
	s.index(len(s.records)-1, rec)
}

// index registers the record's identifiers. The first record seen for a
// key keeps it, mirroring the first-match semantics of a linear scan
// when a stale duplicate exists.
func (s *Store) index(i int, rec *Record) {
	if rec.TransactionID != "" {
		if _, ok := s.byTransactionID[rec.TransactionID]; !ok {
			s.byTransactionID[rec.TransactionID] = i
		}
	}
	if rec.ExternalID != "" {
		if _, ok := s.byExternalID[rec.ExternalID]; !ok {
			s.byExternalID[rec.ExternalID] = i
		}
	}
}

func (s *Store) lookup(transactionID, externalID string) (int, bool) {
	if transactionID != "" {
		if i, ok := s.byTransactionID[transactionID]; ok {
			return i, true
		}
	}
	if externalID != "" {
		if i, ok := s.byExternalID[externalID]; ok {
			return i, true
		}
	}
	return 0, false
}

// Append adds a new record to the ledger. The record must carry at least
// one identifier.
func (s *Store) Append(ctx context.Context, rec *Record) error {
	unit, err := EncodeRecord(rec)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.w.appendUnit(unit); err != nil {
		return err
	}
	s.records = append(s.records, rec.Clone())
	s.index(len(s.records)-1, s.records[len(s.records)-1])
	s.units++

	logctx.FromCtx(ctx, s.log).Infow("ledger_append",
		"transaction_id", rec.TransactionID,
		"external_id", rec.ExternalID,
		"status", string(rec.Status),
	)
	return nil
}

// FindByEither returns the record matching transactionID or externalID,
// preferring the transaction id when both are supplied. Nil when absent.
func (s *Store) FindByEither(transactionID, externalID string) *Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i, ok := s.lookup(transactionID, externalID); ok {
		return s.records[i].Clone()
	}
	return nil
}

// ApplyUpdate merges a status update into every record matching either
// identifier (inclusive OR) and persists the result. It reports whether
// at least one record matched; no match is not an error. A missing store
// file simply means zero records.
//
// approved_at is set exactly once, the first time APPROVED is recorded
// for the record, and never cleared by later updates. Re-applying an update
// that changes nothing material is a no-op on disk, so gateway webhook
// retries cost nothing.
func (s *Store) ApplyUpdate(ctx context.Context, transactionID, externalID string, upd StatusUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []int
	for i, rec := range s.records {
		if rec.Matches(transactionID, externalID) {
			matched = append(matched, i)
		}
	}
	if len(matched) == 0 {
		return false, nil
	}
	if len(matched) > 1 {
		// likely a stale duplicate external id from a retried creation;
		// all matches are updated identically
		logctx.FromCtx(ctx, s.log).Warnw("ledger_update_multiple_matches",
			"transaction_id", transactionID,
			"external_id", externalID,
			"count", len(matched),
		)
	}

	now := time.Now()
	for _, i := range matched {
		rec := s.records[i].Clone()

		changed := rec.Status != upd.Status
		rec.Status = upd.Status
		if upd.Amount != nil && !rec.Amount.Equal(*upd.Amount) {
			rec.Amount = *upd.Amount
			changed = true
		}
		if upd.Method != "" && rec.Method != upd.Method {
			rec.Method = upd.Method
			changed = true
		}
		// backfill an identifier the record was created without
		if rec.TransactionID == "" && transactionID != "" {
			rec.TransactionID = transactionID
			changed = true
		}
		if rec.ExternalID == "" && externalID != "" {
			rec.ExternalID = externalID
			changed = true
		}
		// set once on the first sight of APPROVED, even when the record
		// was already created in that status without a timestamp
		if upd.Status == types.StatusApproved && rec.ApprovedAt == nil {
			rec.ApprovedAt = &now
			changed = true
		}
		if !changed {
			continue
		}

		rec.UpdatedAt = &now

		// a failure here aborts the loop: matches already appended stay
		// persisted, this one and later ones keep their prior state (both
		// in memory and on disk), and the caller still learns a match
		// existed. The gateway retries the webhook, so the remaining
		// matches converge on the next delivery.
		unit, err := EncodeRecord(rec)
		if err != nil {
			return true, err
		}
		if err := s.w.appendUnit(unit); err != nil {
			return true, err
		}
		s.records[i] = rec
		s.index(i, rec)
		s.units++
	}

	if err := s.maybeCompactLocked(); err != nil {
		logctx.FromCtx(ctx, s.log).Errorw("ledger_compact_failed", "error", err.Error())
	}
	return true, nil
}

// Snapshot returns a copy of every live record in insertion order.
func (s *Store) Snapshot() []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Record, len(s.records))
	for i, rec := range s.records {
		out[i] = rec.Clone()
	}
	return out
}

// Len returns the number of live records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Compact rewrites the store down to one unit per live record, keeping
// insertion order.
func (s *Store) Compact() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.compactLocked()
}

func (s *Store) maybeCompactLocked() error {
	if len(s.records) == 0 || s.units <= compactFactor*len(s.records) {
		return nil
	}
	return s.compactLocked()
}

func (s *Store) compactLocked() error {
	if s.units == len(s.records) {
		return nil
	}
	units := make([][]byte, 0, len(s.records))
	for _, rec := range s.records {
		u, err := EncodeRecord(rec)
		if err != nil {
			return err
		}
		units = append(units, u)
	}
	if err := s.w.rewriteAll(units); err != nil {
		return err
	}
	s.units = len(s.records)
	s.log.Infow("ledger_compacted", "records", len(s.records))
	return nil
}

// Close compacts and releases the store.
func (s *Store) Close() error {
	return s.Compact()
}
