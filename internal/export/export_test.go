package export

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/nao1215/effbatt/internal/database"
	"github.com/nao1215/effbatt/internal/model"
)

// memorySource serves reports from a map.
type memorySource struct {
	mu      sync.Mutex
	reports map[string]*model.Report
	shared  map[string]bool
	markErr error
}

func newMemorySource(reports ...*model.Report) *memorySource {
	s := &memorySource{reports: make(map[string]*model.Report), shared: make(map[string]bool)}
	for _, r := range reports {
		s.reports[r.ID] = r
	}
	return s
}

func (s *memorySource) GetReport(_ context.Context, id string) (*model.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return r, nil
}

func (s *memorySource) MarkReportShared(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.markErr != nil {
		return s.markErr
	}
	s.shared[id] = true
	return nil
}

var errDiskFull = errors.New("no space left on device")

// shortWriter writes the first byte of each call and then fails.
type shortWriter struct {
	f *os.File
}

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := w.f.Write(p[:1])
	if err != nil {
		return n, err
	}
	return n, errDiskFull
}

func (w *shortWriter) Close() error {
	return w.f.Close()
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pdfReport(id, filename string) *model.Report {
	return &model.Report{ID: id, Filename: filename, Document: []byte("%PDF-1.7 " + id)}
}

func TestExport(t *testing.T) {
	t.Parallel()

	t.Run("writes and marks shared", func(t *testing.T) {
		t.Parallel()

		src := newMemorySource(
			pdfReport("a", "50832187605-6 6Mesi 10-06-2025.pdf"),
			pdfReport("b", "12345678901-5 3Mesi 10-06-2025.pdf"),
		)
		dir := filepath.Join(t.TempDir(), "out")

		results, err := New(src, WithLogger(quietLogger())).Export(context.Background(), dir, []string{"a", "b"})
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		for i, id := range []string{"a", "b"} {
			r := results[i]
			if r.ID != id || r.Err != nil {
				t.Fatalf("result %d = %+v", i, r)
			}
			data, err := os.ReadFile(r.Path)
			if err != nil {
				t.Fatalf("ReadFile failed: %v", err)
			}
			if string(data) != "%PDF-1.7 "+id {
				t.Errorf("unexpected content %q", data)
			}
			if r.Bytes != len(data) {
				t.Errorf("Bytes = %d, want %d", r.Bytes, len(data))
			}
			if !src.shared[id] || !r.Shared {
				t.Errorf("report %s not marked shared", id)
			}
		}
		if filepath.Base(results[0].Path) != "50832187605-6 6Mesi 10-06-2025.pdf" {
			t.Errorf("unexpected path %s", results[0].Path)
		}
	})

	t.Run("missing report does not stop the batch", func(t *testing.T) {
		t.Parallel()

		src := newMemorySource(pdfReport("a", "a.pdf"))
		results, err := New(src, WithLogger(quietLogger())).Export(context.Background(), t.TempDir(), []string{"gone", "a"})
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		if !errors.Is(results[0].Err, database.ErrNotFound) || results[0].Path != "" {
			t.Errorf("results[0] = %+v", results[0])
		}
		if results[1].Err != nil {
			t.Errorf("results[1] = %+v", results[1])
		}
	})

	t.Run("name collisions get a suffix", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "same.pdf"), []byte("old"), 0o600); err != nil {
			t.Fatal(err)
		}
		src := newMemorySource(pdfReport("a", "same.pdf"), pdfReport("b", "same.pdf"))

		results, err := New(src, WithLogger(quietLogger()), WithConcurrency(2)).Export(context.Background(), dir, []string{"a", "b"})
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		var names []string
		for _, r := range results {
			if r.Err != nil {
				t.Fatalf("unexpected error: %v", r.Err)
			}
			names = append(names, filepath.Base(r.Path))
		}
		sort.Strings(names)
		if names[0] != "same (2).pdf" || names[1] != "same (3).pdf" {
			t.Errorf("names = %v", names)
		}
		old, _ := os.ReadFile(filepath.Join(dir, "same.pdf"))
		if string(old) != "old" {
			t.Error("existing file was overwritten")
		}
	})

	t.Run("overwrite replaces", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "same.pdf"), []byte("old"), 0o600); err != nil {
			t.Fatal(err)
		}
		src := newMemorySource(pdfReport("a", "same.pdf"))
		results, err := New(src, WithLogger(quietLogger()), WithOverwrite(true)).Export(context.Background(), dir, []string{"a"})
		if err != nil || results[0].Err != nil {
			t.Fatalf("Export failed: %v %v", err, results[0].Err)
		}
		data, _ := os.ReadFile(filepath.Join(dir, "same.pdf"))
		if string(data) != "%PDF-1.7 a" {
			t.Errorf("content = %q", data)
		}
	})

	t.Run("without marking", func(t *testing.T) {
		t.Parallel()

		src := newMemorySource(pdfReport("a", "a.pdf"))
		results, err := New(src, WithLogger(quietLogger()), WithMarkShared(false)).Export(context.Background(), t.TempDir(), []string{"a"})
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		if src.shared["a"] || results[0].Shared {
			t.Error("report marked shared")
		}
	})

	t.Run("already shared is not marked again", func(t *testing.T) {
		t.Parallel()

		r := pdfReport("a", "a.pdf")
		r.MarkShared()
		src := newMemorySource(r)
		src.markErr = errors.New("database is locked")
		results, err := New(src, WithLogger(quietLogger())).Export(context.Background(), t.TempDir(), []string{"a"})
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		if results[0].Err != nil || !results[0].Shared {
			t.Errorf("results[0] = %+v", results[0])
		}
	})

	t.Run("failed write removes the partial file", func(t *testing.T) {
		t.Parallel()

		for _, overwrite := range []bool{false, true} {
			dir := t.TempDir()
			src := newMemorySource(pdfReport("a", "a.pdf"))
			e := New(src, WithLogger(quietLogger()), WithOverwrite(overwrite))
			e.openFile = func(path string, flag int) (io.WriteCloser, error) {
				f, err := os.OpenFile(path, flag, 0o600)
				if err != nil {
					return nil, err
				}
				return &shortWriter{f: f}, nil
			}

			results, err := e.Export(context.Background(), dir, []string{"a"})
			if err != nil {
				t.Fatalf("Export failed: %v", err)
			}
			if !errors.Is(results[0].Err, errDiskFull) || results[0].Path != "" {
				t.Errorf("overwrite=%v: results[0] = %+v", overwrite, results[0])
			}
			if _, err := os.Stat(filepath.Join(dir, "a.pdf")); !errors.Is(err, os.ErrNotExist) {
				t.Errorf("overwrite=%v: expected partial file removed, got %v", overwrite, err)
			}
			if src.shared["a"] {
				t.Errorf("overwrite=%v: failed export marked shared", overwrite)
			}
		}
	})

	t.Run("mark failure is reported", func(t *testing.T) {
		t.Parallel()

		errMark := errors.New("database is locked")
		src := newMemorySource(pdfReport("a", "a.pdf"))
		src.markErr = errMark
		results, err := New(src, WithLogger(quietLogger())).Export(context.Background(), t.TempDir(), []string{"a"})
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		if !errors.Is(results[0].Err, errMark) || results[0].Path == "" {
			t.Errorf("results[0] = %+v", results[0])
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		t.Parallel()

		if _, err := New(newMemorySource()).Export(context.Background(), " ", nil); !errors.Is(err, ErrNoDestination) {
			t.Errorf("expected ErrNoDestination, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		src := newMemorySource(pdfReport("a", "a.pdf"))
		_, err := New(src, WithLogger(quietLogger())).Export(ctx, t.TempDir(), []string{"a"})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if src.shared["a"] {
			t.Error("cancelled export marked a report")
		}
	})
}

func TestExport_DatabaseSource(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := database.Open(ctx, t.TempDir(), database.DefaultOptions())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	r := pdfReport("50832187605-6_6M_2025-06-10", "50832187605-6 6Mesi 10-06-2025.pdf")
	r.VehicleNumber = "50832187605-6"
	if err := store.SaveReport(ctx, r); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	results, err := New(store, WithLogger(quietLogger())).Export(ctx, t.TempDir(), []string{r.ID})
	if err != nil || results[0].Err != nil {
		t.Fatalf("Export failed: %v %v", err, results[0].Err)
	}
	n, err := store.UnsharedCount(ctx)
	if err != nil {
		t.Fatalf("UnsharedCount failed: %v", err)
	}
	if n != 0 {
		t.Errorf("UnsharedCount = %d, want 0", n)
	}
}

func TestFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		report *model.Report
		want   string
	}{
		{name: "pdf keeps name", report: &model.Report{ID: "x", Filename: "n 6Mesi 10-06-2025.pdf", Document: []byte("%PDF-1.4")}, want: "n 6Mesi 10-06-2025.pdf"},
		{name: "markdown sheet", report: &model.Report{ID: "x", Filename: "n 3Mesi 10-06-2025.pdf", Document: []byte("# sheet")}, want: "n 3Mesi 10-06-2025.md"},
		{name: "directories stripped", report: &model.Report{ID: "x", Filename: "../../etc/a.pdf", Document: []byte("%PDF-")}, want: "a.pdf"},
		{name: "backslashes stripped", report: &model.Report{ID: "x", Filename: `..\a.pdf`, Document: []byte("%PDF-")}, want: "a.pdf"},
		{name: "empty falls back to id", report: &model.Report{ID: "x_3M_2025-06-10", Document: []byte("%PDF-")}, want: "x_3M_2025-06-10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FileName(tt.report); got != tt.want {
				t.Errorf("FileName() = %q, want %q", got, tt.want)
			}
		})
	}
}
