package game

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxTraceLine bounds one encoded tick; a full 64x64 board fits comfortably.
const maxTraceLine = 4 << 20

// TickRecord is one line of a tick trace.
type TickRecord struct {
	Tick     int64    `json:"tick"`
	Proposed []Point  `json:"proposed,omitempty"` // headings requested since the previous tick
	Hit      string   `json:"hit"`
	State    Snapshot `json:"state"`
}

// Recorder appends tick records to a JSONL file from a background goroutine.
type Recorder struct {
	file       *os.File
	writer     *bufio.Writer
	log        *zap.Logger
	recordChan chan TickRecord
	wg         sync.WaitGroup
	mu         sync.Mutex
	closed     bool
	dropped    int
}

// NewRecorder creates dir if needed and opens trace_{sessionID}_{unix}.jsonl in it.
// Records that fail to encode are skipped and logged to log.
func NewRecorder(dir, sessionID string, log *zap.Logger) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create trace dir: %w", err)
	}

	filename := fmt.Sprintf("trace_%s_%d.jsonl", sessionID, time.Now().Unix())
	f, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return nil, fmt.Errorf("create trace file: %w", err)
	}

	if log == nil {
		log = zap.NewNop()
	}
	r := &Recorder{
		file:       f,
		writer:     bufio.NewWriter(f),
		log:        log,
		recordChan: make(chan TickRecord, 1000),
	}
	r.wg.Add(1)
	go r.writeLoop()
	return r, nil
}

// Path returns the trace file path.
func (r *Recorder) Path() string {
	return r.file.Name()
}

// Record queues rec without blocking; it is dropped when the buffer is full.
func (r *Recorder) Record(rec TickRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	select {
	case r.recordChan <- rec:
	default:
		r.dropped++
	}
}

// Dropped returns how many records were discarded.
func (r *Recorder) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Close flushes pending records and closes the file.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.recordChan)
	r.mu.Unlock()

	r.wg.Wait()
	return r.file.Close()
}

func (r *Recorder) writeLoop() {
	defer r.wg.Done()

	for rec := range r.recordChan {
		data, err := json.Marshal(rec)
		if err != nil {
			r.log.Warn("skip tick record", zap.Int64("tick", rec.Tick), zap.Error(err))
			continue
		}
		r.writer.Write(data)
		r.writer.WriteByte('\n')
	}
	if err := r.writer.Flush(); err != nil {
		r.log.Error("flush trace", zap.String("path", r.file.Name()), zap.Error(err))
	}
}

// ReadTrace decodes every record of a trace. Blank lines are skipped.
func ReadTrace(rd io.Reader) ([]TickRecord, error) {
	var records []TickRecord
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 64*1024), maxTraceLine)
	for line := 1; sc.Scan(); line++ {
		if len(bytes.TrimSpace(sc.Bytes())) == 0 {
			continue
		}
		var rec TickRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			return records, fmt.Errorf("decode line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, sc.Err()
}
