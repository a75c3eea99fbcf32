package database

import (
	"context"
	"errors"
	"testing"

	"github.com/nao1215/effbatt/internal/model"
)

func TestStore_InstrumentTemplates(t *testing.T) {
	t.Parallel()

	s := setupTestDB(t)
	ctx := context.Background()

	mult, err := model.NewInstrumentTemplate(model.InstrumentMultimeter, "Fluke spare", "MM-02", "2026-05-31")
	if err != nil {
		t.Fatal(err)
	}
	dens, err := model.NewInstrumentTemplate(model.InstrumentDensitometer, "", "DN-07", "2026-03-31")
	if err != nil {
		t.Fatal(err)
	}
	for _, tmpl := range []model.InstrumentTemplate{mult, dens} {
		if err := s.SaveInstrumentTemplate(ctx, tmpl); err != nil {
			t.Fatalf("SaveInstrumentTemplate failed: %v", err)
		}
	}

	all, err := s.ListInstrumentTemplates(ctx, "")
	if err != nil {
		t.Fatalf("ListInstrumentTemplates failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(all))
	}

	only, err := s.ListInstrumentTemplates(ctx, model.InstrumentMultimeter)
	if err != nil {
		t.Fatal(err)
	}
	if len(only) != 1 || only[0].InstrumentID != "MM-02" || only[0].Label != "Fluke spare" {
		t.Errorf("unexpected multimeter templates %+v", only)
	}

	mult.Expiry = "2027-05-31"
	if err := s.SaveInstrumentTemplate(ctx, mult); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetInstrumentTemplate(ctx, mult.ID)
	if err != nil {
		t.Fatalf("GetInstrumentTemplate failed: %v", err)
	}
	if got.Expiry != "2027-05-31" || got.Kind != model.InstrumentMultimeter {
		t.Errorf("unexpected template %+v", got)
	}

	if err := s.DeleteInstrumentTemplate(ctx, dens.ID); err != nil {
		t.Fatalf("DeleteInstrumentTemplate failed: %v", err)
	}
	if _, err := s.GetInstrumentTemplate(ctx, dens.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_PDFTemplate(t *testing.T) {
	t.Parallel()

	s := setupTestDB(t)
	ctx := context.Background()

	if _, err := s.GetPDFTemplate(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.SavePDFTemplate(ctx, "form.pdf", []byte("%PDF-1.4 v1")); err != nil {
		t.Fatalf("SavePDFTemplate failed: %v", err)
	}
	if err := s.SavePDFTemplate(ctx, "form-2025.pdf", []byte("%PDF-1.4 v2")); err != nil {
		t.Fatalf("replacing the template failed: %v", err)
	}

	got, err := s.GetPDFTemplate(ctx)
	if err != nil {
		t.Fatalf("GetPDFTemplate failed: %v", err)
	}
	if got.Name != "form-2025.pdf" || string(got.Content) != "%PDF-1.4 v2" {
		t.Errorf("unexpected template %+v", got)
	}
	if got.UploadedAt.IsZero() {
		t.Error("expected upload time to be set")
	}

	if err := s.DeletePDFTemplate(ctx); err != nil {
		t.Fatalf("DeletePDFTemplate failed: %v", err)
	}
	if _, err := s.GetPDFTemplate(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
