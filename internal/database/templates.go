package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nao1215/effbatt/internal/model"
)

// SaveInstrumentTemplate inserts or updates an instrument template.
func (s *Store) SaveInstrumentTemplate(ctx context.Context, t model.InstrumentTemplate) error {
	query := `
	INSERT INTO instrument_templates (id, kind, label, instrument_id, expiry, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		kind = excluded.kind,
		label = excluded.label,
		instrument_id = excluded.instrument_id,
		expiry = excluded.expiry
	`
	_, err := s.db.ExecContext(ctx, query,
		t.ID,
		string(t.Kind),
		t.Label,
		t.InstrumentID,
		t.Expiry,
		formatTimestamp(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save instrument template: %w", err)
	}
	return nil
}

// GetInstrumentTemplate returns a template by ID.
func (s *Store) GetInstrumentTemplate(ctx context.Context, id string) (*model.InstrumentTemplate, error) {
	query := `
	SELECT id, kind, label, instrument_id, expiry, created_at
	FROM instrument_templates
	WHERE id = ?
	`
	t, err := scanTemplate(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: instrument template %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get instrument template: %w", err)
	}
	return &t, nil
}

// ListInstrumentTemplates returns the templates of one kind, or of every kind
// when kind is empty, ordered by kind then label.
func (s *Store) ListInstrumentTemplates(ctx context.Context, kind model.InstrumentKind) ([]model.InstrumentTemplate, error) {
	query := `
	SELECT id, kind, label, instrument_id, expiry, created_at
	FROM instrument_templates
	`
	args := make([]any, 0, 1)
	if kind != "" {
		query += " WHERE kind = ?"
		args = append(args, string(kind))
	}
	query += " ORDER BY kind, label, created_at"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list instrument templates: %w", err)
	}
	defer rows.Close()

	templates := make([]model.InstrumentTemplate, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan instrument template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// DeleteInstrumentTemplate removes a template.
func (s *Store) DeleteInstrumentTemplate(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM instrument_templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete instrument template: %w", err)
	}
	return requireAffected(result, "instrument template", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (model.InstrumentTemplate, error) {
	var t model.InstrumentTemplate
	var kind, createdAt string
	var label sql.NullString
	if err := row.Scan(&t.ID, &kind, &label, &t.InstrumentID, &t.Expiry, &createdAt); err != nil {
		return model.InstrumentTemplate{}, err
	}
	t.Kind = model.InstrumentKind(kind)
	t.Label = label.String
	t.CreatedAt = parseTimestamp(createdAt)
	return t, nil
}

// PDFTemplate is the stored form template.
type PDFTemplate struct {
	Name        string
	Content     []byte
	ContentHash string
	UploadedAt  time.Time
}

// SavePDFTemplate stores the form template, replacing any previous one.
func (s *Store) SavePDFTemplate(ctx context.Context, name string, content []byte) error {
	query := `
	INSERT INTO pdf_template (id, name, content, content_hash, uploaded_at)
	VALUES (1, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		content = excluded.content,
		content_hash = excluded.content_hash,
		uploaded_at = excluded.uploaded_at
	`
	if _, err := s.db.ExecContext(ctx, query, name, content, HashDocument(content), formatTimestamp(time.Now())); err != nil {
		return fmt.Errorf("failed to save PDF template: %w", err)
	}
	return nil
}

// GetPDFTemplate returns the stored form template or ErrNotFound.
func (s *Store) GetPDFTemplate(ctx context.Context) (*PDFTemplate, error) {
	var t PDFTemplate
	var uploadedAt string
	err := s.db.QueryRowContext(ctx, `SELECT name, content, content_hash, uploaded_at FROM pdf_template WHERE id = 1`).
		Scan(&t.Name, &t.Content, &t.ContentHash, &uploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: PDF template", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get PDF template: %w", err)
	}
	if HashDocument(t.Content) != t.ContentHash {
		return nil, fmt.Errorf("%w: PDF template", ErrCorruptDocument)
	}
	t.UploadedAt = parseTimestamp(uploadedAt)
	return &t, nil
}

// DeletePDFTemplate removes the stored form template.
func (s *Store) DeletePDFTemplate(ctx context.Context) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM pdf_template WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("failed to delete PDF template: %w", err)
	}
	return requireAffected(result, "PDF template", "")
}
