package generator

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nao1215/effbatt/internal/model"
	"github.com/nao1215/effbatt/internal/pdfform"
)

// Construction errors.
var (
	// ErrNoRenderer is returned by New when no renderer is configured.
	ErrNoRenderer = errors.New("generator: renderer is required")
	// ErrNoStore is returned by New when no store is configured.
	ErrNoStore = errors.New("generator: store is required")
)

// Store persists what a generation produces.
type Store interface {
	SaveReport(ctx context.Context, r *model.Report) error
	SaveState(ctx context.Context, state *model.State) error
}

// Job carries one generation through the steps.
type Job struct {
	// State is modified in place by the mark step.
	State *model.State

	SiteIndex    int
	VehicleIndex int

	// Template is the form template passed to the renderer; it may be nil.
	Template []byte

	// Filled in by the steps.
	Site    model.Site
	Vehicle model.Vehicle
	Form    pdfform.Form
	Report  *model.Report

	// Completed lists the names of the steps that finished.
	Completed []string
}

// Step is one stage of a generation.
type Step interface {
	Do(ctx context.Context, job *Job) error
	Name() string
}

// Generator runs the generation steps.
type Generator struct {
	steps  []Step
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithClock sets the clock used for report creation times.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New creates a Generator that renders with r and saves into store.
func New(r pdfform.Renderer, store Store, opts ...Option) (*Generator, error) {
	if r == nil {
		return nil, ErrNoRenderer
	}
	if store == nil {
		return nil, ErrNoStore
	}

	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}

	g.steps = []Step{
		gateStep{},
		&renderStep{renderer: r, now: g.now},
		&recordStep{store: store},
		&markStep{store: store},
	}
	return g, nil
}

// StepNames returns the names of all steps in execution order.
func (g *Generator) StepNames() []string {
	names := make([]string, len(g.steps))
	for i, step := range g.steps {
		names[i] = step.Name()
	}
	return names
}

// Generate produces, saves and returns the report of a vehicle.
// Gate refusals come back as *validation.MissingFieldsError or
// *validation.ExpiredInstrumentsError.
func (g *Generator) Generate(ctx context.Context, state *model.State, siteIndex, vehicleIndex int, template []byte) (*model.Report, error) {
	job := &Job{
		State:        state,
		SiteIndex:    siteIndex,
		VehicleIndex: vehicleIndex,
		Template:     template,
	}
	if err := g.Execute(ctx, job); err != nil {
		return nil, err
	}
	return job.Report, nil
}

// Execute runs every step over the job and stops at the first error.
// Cancellation is checked before each step.
func (g *Generator) Execute(ctx context.Context, job *Job) error {
	for _, step := range g.steps {
		select {
		case <-ctx.Done():
			g.logger.Warn("generation cancelled", "step", step.Name(), "reason", ctx.Err())
			return ctx.Err()
		default:
		}

		g.logger.Debug("executing step",
			"step", step.Name(),
			"site", job.SiteIndex,
			"vehicle", job.VehicleIndex,
		)
		if err := step.Do(ctx, job); err != nil {
			g.logger.Info("generation stopped",
				"step", step.Name(),
				"vehicle_number", job.Vehicle.Number,
				"error", err,
			)
			return err
		}
		job.Completed = append(job.Completed, step.Name())
	}

	g.logger.Info("report generated",
		"report_id", job.Report.ID,
		"filename", job.Report.Filename,
		"bytes", len(job.Report.Document),
	)
	return nil
}
