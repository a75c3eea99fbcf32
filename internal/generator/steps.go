package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/nao1215/effbatt/internal/model"
	"github.com/nao1215/effbatt/internal/pdfform"
	"github.com/nao1215/effbatt/internal/validation"
)

// gateStep resolves the vehicle and refuses incomplete records and expired instruments.
type gateStep struct{}

func (gateStep) Name() string { return "gate" }

func (gateStep) Do(_ context.Context, job *Job) error {
	if job.State == nil {
		return fmt.Errorf("%w: no state", model.ErrSiteNotFound)
	}
	site, vehicle, err := job.State.Vehicle(job.SiteIndex, job.VehicleIndex)
	if err != nil {
		return err
	}
	job.Site = site
	job.Vehicle = vehicle
	return validation.CheckGeneration(job.State.Operator, job.State.Instruments, site, vehicle)
}

// renderStep builds the form and renders the document.
type renderStep struct {
	renderer pdfform.Renderer
	now      func() time.Time
}

func (s *renderStep) Name() string { return "render" }

func (s *renderStep) Do(ctx context.Context, job *Job) error {
	op := job.State.Operator
	job.Form = pdfform.Build(op, job.State.Instruments, job.Site, job.Vehicle)

	doc, err := s.renderer.Render(ctx, job.Template, job.Form)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	job.Report = &model.Report{
		ID:            pdfform.ReportID(job.Vehicle, op.Date),
		VehicleNumber: job.Vehicle.Number,
		TypeLabel:     job.Vehicle.Type.HistoryLabel(),
		OperatorDate:  validation.FormatDate(op.Date),
		SiteName:      job.Site.Name,
		WorkOrder:     job.Site.WorkOrder,
		Filename:      pdfform.Filename(job.Vehicle, op.Date),
		Document:      doc,
		CreatedAt:     s.now(),
	}
	return nil
}

// recordStep saves the report to the history.
type recordStep struct {
	store Store
}

func (s *recordStep) Name() string { return "record" }

func (s *recordStep) Do(ctx context.Context, job *Job) error {
	if err := s.store.SaveReport(ctx, job.Report); err != nil {
		return fmt.Errorf("failed to record report: %w", err)
	}
	return nil
}

// markStep flags the vehicle as generated and saves the state.
type markStep struct {
	store Store
}

func (s *markStep) Name() string { return "mark" }

func (s *markStep) Do(ctx context.Context, job *Job) error {
	if err := job.State.MarkVehiclePDFGenerated(job.SiteIndex, job.VehicleIndex); err != nil {
		return err
	}
	job.Vehicle.PDFGenerated = true
	if err := s.store.SaveState(ctx, job.State); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}
