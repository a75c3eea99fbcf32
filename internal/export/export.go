package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/nao1215/effbatt/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of reports exported at the same time.
const DefaultConcurrency = 4

// ErrNoDestination is returned when the export directory is empty.
var ErrNoDestination = errors.New("export directory is required")

// Source provides the reports to export.
type Source interface {
	GetReport(ctx context.Context, id string) (*model.Report, error)
	MarkReportShared(ctx context.Context, id string) error
}

// Result is the outcome of exporting one report.
type Result struct {
	// ID is the report ID as requested.
	ID string
	// Path is the written file; empty when the export failed.
	Path string
	// Bytes is the document size.
	Bytes int
	// Shared reports whether the report is now recorded as shared.
	Shared bool
	// Err is set when the report could not be exported.
	Err error
}

// Exporter writes reports to a directory.
type Exporter struct {
	source      Source
	concurrency int
	logger      *slog.Logger
	overwrite   bool
	markShared  bool
	openFile    func(path string, flag int) (io.WriteCloser, error)

	// names tracks the paths claimed by the running batch.
	mu    sync.Mutex
	names map[string]bool
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent exports.
func WithConcurrency(n int) Option {
	return func(e *Exporter) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithOverwrite replaces existing files instead of picking a free name.
func WithOverwrite(overwrite bool) Option {
	return func(e *Exporter) {
		e.overwrite = overwrite
	}
}

// WithMarkShared controls whether exported reports are marked shared. Default true.
func WithMarkShared(mark bool) Option {
	return func(e *Exporter) {
		e.markShared = mark
	}
}

// New creates an Exporter reading from source.
func New(source Source, opts ...Option) *Exporter {
	e := &Exporter{
		source:      source,
		concurrency: DefaultConcurrency,
		markShared:  true,
		openFile:    openFile,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Export writes the reports with the given IDs into dir, creating it if
// needed. Results are in the order of ids. The error is non-nil only when
// the batch itself could not run or was cancelled.
func (e *Exporter) Export(ctx context.Context, dir string, ids []string) ([]Result, error) {
	results := make([]Result, len(ids))
	err := e.ExportWithCallback(ctx, dir, ids, func(r Result, i int) {
		results[i] = r
	})
	return results, err
}

// ExportWithCallback is Export with a callback per finished report. The
// callback runs on the exporting goroutine and must be safe for concurrent use.
func (e *Exporter) ExportWithCallback(ctx context.Context, dir string, ids []string, callback func(r Result, index int)) error {
	if strings.TrimSpace(dir) == "" {
		return ErrNoDestination
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	e.mu.Lock()
	e.names = make(map[string]bool)
	e.mu.Unlock()

	e.logger.Info("starting export",
		"reports", len(ids),
		"concurrency", e.concurrency,
		"dir", dir,
	)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, id := range ids {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			r := e.exportOne(ctx, dir, id)
			if r.Err != nil {
				e.logger.Warn("export failed", "report_id", id, "error", r.Err)
			} else {
				e.logger.Debug("report exported", "report_id", id, "path", r.Path)
			}
			callback(r, i)
			return nil
		})
	}

	err := g.Wait()
	e.logger.Info("export complete", "reports", len(ids), "elapsed", time.Since(start))
	return err
}

func (e *Exporter) exportOne(ctx context.Context, dir, id string) Result {
	res := Result{ID: id}

	r, err := e.source.GetReport(ctx, id)
	if err != nil {
		res.Err = err
		return res
	}

	path, err := e.write(dir, FileName(r), r.Document)
	if err != nil {
		res.Err = err
		return res
	}
	res.Path = path
	res.Bytes = len(r.Document)
	res.Shared = r.Shared

	if e.markShared && !r.Shared {
		if err := e.source.MarkReportShared(ctx, id); err != nil {
			res.Err = fmt.Errorf("written but not marked shared: %w", err)
			return res
		}
		r.MarkShared()
		res.Shared = r.Shared
	}
	return res
}

func openFile(path string, flag int) (io.WriteCloser, error) {
	return os.OpenFile(path, flag, 0o600) //nolint:gosec // path is built from the export directory
}

// write stores data under name in dir. Unless overwriting, a name already
// taken on disk or in the running batch gets a " (n)" suffix.
func (e *Exporter) write(dir, name string, data []byte) (string, error) {
	if e.overwrite {
		path := filepath.Join(dir, name)
		f, err := e.openFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
		if err != nil {
			return "", fmt.Errorf("failed to create %s: %w", name, err)
		}
		if err := writeAll(f, path, data); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", name, err)
		}
		return path, nil
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 1; ; n++ {
		candidate := name
		if n > 1 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, n, ext)
		}
		path := filepath.Join(dir, candidate)
		if !e.claim(path) {
			continue
		}

		f, err := e.openFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create %s: %w", candidate, err)
		}
		if err := writeAll(f, path, data); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", candidate, err)
		}
		return path, nil
	}
}

// writeAll writes data to f and closes it. On failure the partial file at path is removed.
func writeAll(f io.WriteCloser, path string, data []byte) error {
	_, err := f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}

func (e *Exporter) claim(path string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.names[path] {
		return false
	}
	e.names[path] = true
	return true
}

// FileName returns the name a report is exported under: its recorded
// filename reduced to a base name, with the extension switched to .md when
// the document is not a PDF.
func FileName(r *model.Report) string {
	name := filepath.Base(strings.ReplaceAll(r.Filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = r.ID
	}
	if !bytes.HasPrefix(r.Document, []byte("%PDF-")) {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".md"
	}
	return name
}
