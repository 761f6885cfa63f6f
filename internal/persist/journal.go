package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JournalEntry is one processed command. RequestID is nil when the command
// carried no usable id.
type JournalEntry struct {
	RunID      uuid.UUID
	Seq        uint64
	RequestID  *string
	Method     string
	Line       string
	Err        string
	ReceivedAt time.Time
}

// BatchWriter stores journal batches.
type BatchWriter interface {
	WriteBatch(ctx context.Context, entries []JournalEntry) error
}

type JournalRepo struct {
	db *DB
}

func NewJournalRepo(db *DB) *JournalRepo {
	return &JournalRepo{db: db}
}

// WriteBatch inserts entries in a single transaction. Either all rows are
// written or none.
func (r *JournalRepo) WriteBatch(ctx context.Context, entries []JournalEntry) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("journal begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO command_journal (run_id, seq, request_id, method, line, err, received_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			e.RunID.String(), int64(e.Seq), e.RequestID, e.Method, e.Line, e.Err, e.ReceivedAt,
		); err != nil {
			return fmt.Errorf("journal insert seq %d: %w", e.Seq, err)
		}
	}
	return tx.Commit(ctx)
}

// JournalWriter moves batches off the tick goroutine. Enqueue never blocks;
// Run performs the writes.
type JournalWriter struct {
	dst     BatchWriter
	batches chan []JournalEntry
	timeout time.Duration
	log     *zap.Logger
}

func NewJournalWriter(dst BatchWriter, buffer int, timeout time.Duration, log *zap.Logger) *JournalWriter {
	if buffer < 1 {
		buffer = 1
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &JournalWriter{
		dst:     dst,
		batches: make(chan []JournalEntry, buffer),
		timeout: timeout,
		log:     log,
	}
}

// Enqueue hands a batch to the writer. It reports false, dropping the
// batch, when the writer is behind.
func (w *JournalWriter) Enqueue(batch []JournalEntry) bool {
	select {
	case w.batches <- batch:
		return true
	default:
		w.log.Warn("journal writer behind, batch dropped", zap.Int("entries", len(batch)))
		return false
	}
}

// Close stops accepting batches. Run drains what is queued and returns.
func (w *JournalWriter) Close() {
	close(w.batches)
}

// Run writes batches until Close. Write failures are logged and skipped.
func (w *JournalWriter) Run(ctx context.Context) error {
	for batch := range w.batches {
		w.write(ctx, batch)
	}
	return nil
}

func (w *JournalWriter) write(ctx context.Context, batch []JournalEntry) {
	// The final batches are written after shutdown began, so ctx may
	// already be cancelled.
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.timeout)
	defer cancel()
	if err := w.dst.WriteBatch(wctx, batch); err != nil {
		w.log.Error("journal write failed", zap.Int("entries", len(batch)), zap.Error(err))
		return
	}
	w.log.Debug("journal batch written", zap.Int("entries", len(batch)))
}
