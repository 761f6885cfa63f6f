package system

import (
	"time"

	"github.com/google/uuid"

	coresys "github.com/squaresim/backend/internal/core/system"
	"github.com/squaresim/backend/internal/ipc"
	"github.com/squaresim/backend/internal/persist"
	"github.com/squaresim/backend/internal/protocol"
)

// JournalSink accepts finished journal batches without blocking.
type JournalSink interface {
	Enqueue(batch []persist.JournalEntry) bool
}

// JournalSystem collects answered commands and hands them to the journal
// writer in batches. Phase 2 (Persist).
type JournalSystem struct {
	sink      JournalSink
	runID     uuid.UUID
	batchSize int
	interval  time.Duration
	now       func() time.Time

	seq     uint64
	pending []persist.JournalEntry
	elapsed time.Duration
	dropped int
}

func NewJournalSystem(sink JournalSink, runID uuid.UUID, batchSize int, interval time.Duration) *JournalSystem {
	return &JournalSystem{
		sink:      sink,
		runID:     runID,
		batchSize: batchSize,
		interval:  interval,
		now:       time.Now,
		pending:   make([]persist.JournalEntry, 0, batchSize),
	}
}

func (s *JournalSystem) Phase() coresys.Phase { return coresys.PhasePersist }

// Record implements CommandRecorder.
func (s *JournalSystem) Record(in ipc.Inbound, req protocol.Request, resp protocol.Response) {
	s.seq++
	s.pending = append(s.pending, persist.JournalEntry{
		RunID:      s.runID,
		Seq:        s.seq,
		RequestID:  resp.ID,
		Method:     req.Method,
		Line:       string(in.Line),
		Err:        resp.Err,
		ReceivedAt: s.now(),
	})
}

func (s *JournalSystem) Update(dt time.Duration) error {
	s.elapsed += dt
	if len(s.pending) >= s.batchSize || (len(s.pending) > 0 && s.elapsed >= s.interval) {
		s.Flush()
	}
	return nil
}

// Flush hands everything pending to the sink. main calls it once more after
// the loop stops.
func (s *JournalSystem) Flush() {
	s.elapsed = 0
	if len(s.pending) == 0 {
		return
	}
	batch := s.pending
	s.pending = make([]persist.JournalEntry, 0, s.batchSize)
	if !s.sink.Enqueue(batch) {
		s.dropped += len(batch)
	}
}

// Dropped returns how many entries were lost because the writer was behind.
func (s *JournalSystem) Dropped() int { return s.dropped }
