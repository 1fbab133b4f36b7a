package audit

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/GunarsK-portfolio/inventory-service/internal/metrics"
	"github.com/sirupsen/logrus"
)

// FileWriter appends audit records as CSV rows to a single file.
// It is safe for concurrent use.
type FileWriter struct {
	path    string
	log     logrus.FieldLogger
	metrics *metrics.Metrics
	now     func() time.Time

	mu sync.Mutex
}

// NewFileWriter creates a writer for the CSV file at path. The file is
// created on first append.
func NewFileWriter(path string, log logrus.FieldLogger, m *metrics.Metrics) *FileWriter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FileWriter{
		path:    path,
		log:     log.WithField("component", "audit"),
		metrics: m,
		now:     time.Now,
	}
}

// Path returns the history file location.
func (w *FileWriter) Path() string {
	return w.path
}

// Append writes rec to the history file. A failed write is logged and
// counted, never returned.
func (w *FileWriter) Append(_ context.Context, rec Record) {
	if rec.Timestamp == "" {
		rec.Timestamp = Now(w.now())
	}

	if err := w.write(rec); err != nil {
		w.log.WithError(err).WithFields(logrus.Fields{
			"action":      rec.Action,
			"producto_id": rec.ProductID,
			"codigo":      rec.Code,
		}).Error("failed to write audit record")
		if w.metrics != nil {
			w.metrics.AuditFailures.Inc()
		}
		return
	}

	if w.metrics != nil {
		w.metrics.AuditRecords.WithLabelValues(string(rec.Action)).Inc()
	}
}

func (w *FileWriter) write(rec Record) (err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open audit log %s: %w", w.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close audit log %s: %w", w.path, cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat audit log %s: %w", w.path, err)
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if info.Size() == 0 {
		if err := cw.Write(Header); err != nil {
			return fmt.Errorf("failed to encode audit header: %w", err)
		}
	}
	if err := cw.Write(rec.Row()); err != nil {
		return fmt.Errorf("failed to encode audit record: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to encode audit record: %w", err)
	}

	// One write per record keeps rows whole under O_APPEND.
	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to append audit record: %w", err)
	}
	return nil
}

// ReadAll returns every record in the history file. A missing file is an
// empty history.
func (w *FileWriter) ReadAll(ctx context.Context) ([]Record, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.Open(w.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log %s: %w", w.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read audit header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}

	records := []Record{}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read audit record: %w", err)
		}
		records = append(records, recordFromRow(columns, row))
	}
	return records, nil
}
