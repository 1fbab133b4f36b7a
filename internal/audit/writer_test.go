package audit

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/GunarsK-portfolio/inventory-service/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

// =============================================================================
// Test Helpers
// =============================================================================

func newTestWriter(t *testing.T) (*FileWriter, *metrics.Metrics, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	m := metrics.New(nil)
	w := NewFileWriter(filepath.Join(t.TempDir(), "historial.csv"), logger, m)
	w.now = func() time.Time { return time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC) }
	return w, m, hook
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// =============================================================================
// Append Tests
// =============================================================================

func TestAppend_WritesHeaderOnce(t *testing.T) {
	w, m, _ := newTestWriter(t)
	ctx := context.Background()

	w.Append(ctx, Record{Action: ActionSearch, Code: AllCodes, ResultsCount: "3"})
	w.Append(ctx, Record{Action: ActionView, ProductID: "1", Code: "T-1", Name: "Tornillo"})

	lines := readLines(t, w.Path())
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines: %q", len(lines), lines)
	}
	if lines[0] != strings.Join(Header, ",") {
		t.Errorf("header = %q", lines[0])
	}
	want := "2024-05-01T10:30:00.000000Z,consultar,,ALL,,,,,,3"
	if lines[1] != want {
		t.Errorf("row = %q, want %q", lines[1], want)
	}
	if got := testutil.ToFloat64(m.AuditRecords.WithLabelValues("consultar")); got != 1 {
		t.Errorf("audit_records_total{consultar} = %v, want 1", got)
	}
}

func TestAppend_ExistingFileGetsNoHeader(t *testing.T) {
	w, _, _ := newTestWriter(t)
	if err := os.WriteFile(w.Path(), []byte(strings.Join(Header, ",")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w.Append(context.Background(), Record{Action: ActionDelete, ProductID: "7"})

	lines := readLines(t, w.Path())
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), lines)
	}
}

func TestAppend_KeepsExplicitTimestamp(t *testing.T) {
	w, _, _ := newTestWriter(t)

	w.Append(context.Background(), Record{Timestamp: "2000-01-01T00:00:00.000000Z", Action: ActionCreate})

	records, err := w.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if records[0].Timestamp != "2000-01-01T00:00:00.000000Z" {
		t.Errorf("timestamp = %q", records[0].Timestamp)
	}
}

func TestAppend_QuotesFieldsWithCommas(t *testing.T) {
	w, _, _ := newTestWriter(t)

	w.Append(context.Background(), Record{Action: ActionCreate, Name: "Tornillo, M4", NewLocation: "A1"})

	records, err := w.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(records) != 1 || records[0].Name != "Tornillo, M4" {
		t.Errorf("records = %+v", records)
	}
}

func TestAppend_FailureIsSwallowed(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	m := metrics.New(nil)
	w := NewFileWriter(filepath.Join(t.TempDir(), "missing-dir", "historial.csv"), logger, m)

	w.Append(context.Background(), Record{Action: ActionUpdate, ProductID: "1"})

	if got := testutil.ToFloat64(m.AuditFailures); got != 1 {
		t.Errorf("audit_write_failures_total = %v, want 1", got)
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.ErrorLevel {
		t.Fatalf("expected an error log entry, got %+v", entry)
	}
	if entry.Data["action"] != ActionUpdate {
		t.Errorf("logged action = %v", entry.Data["action"])
	}
}

func TestAppend_ConcurrentRowsStayWhole(t *testing.T) {
	w, _, _ := newTestWriter(t)
	ctx := context.Background()

	const writers = 20
	const perWriter = 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				w.Append(ctx, Record{Action: ActionSearch, Code: AllCodes, Name: strings.Repeat("x", 200)})
			}
		}()
	}
	wg.Wait()

	records, err := w.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(records) != writers*perWriter {
		t.Fatalf("expected %d records, got %d", writers*perWriter, len(records))
	}
	for _, rec := range records {
		if rec.Action != ActionSearch || len(rec.Name) != 200 {
			t.Fatalf("corrupted record: %+v", rec)
		}
	}
}

// =============================================================================
// ReadAll Tests
// =============================================================================

func TestReadAll_MissingFile(t *testing.T) {
	w, _, _ := newTestWriter(t)

	records, err := w.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty history, got %d", len(records))
	}
}

func TestReadAll_RoundTrip(t *testing.T) {
	w, _, _ := newTestWriter(t)
	ctx := context.Background()

	in := Record{
		Action:      ActionAdminUpdate,
		ProductID:   "4",
		Code:        "T-1",
		Name:        "Tornillo",
		OldQuantity: "10",
		NewQuantity: "7",
		OldLocation: "A1",
		NewLocation: "A2",
	}
	w.Append(ctx, in)

	records, err := w.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	in.Timestamp = "2024-05-01T10:30:00.000000Z"
	if records[0] != in {
		t.Errorf("got %+v, want %+v", records[0], in)
	}
}
