package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nao1215/effbatt/internal/model"
)

// SharedFilter selects reports by their shared flag.
type SharedFilter int

const (
	// AllReports returns every report.
	AllReports SharedFilter = iota
	// SharedOnly returns reports already shared.
	SharedOnly
	// UnsharedOnly returns reports not shared yet.
	UnsharedOnly
)

const reportColumns = `id, vehicle_number, type_label, operator_date, site_name, work_order,
	filename, document_hash, created_at, shared`

// SaveReport stores a report, replacing any report with the same ID. The
// document hash is recomputed from the document. A replaced report keeps its
// shared flag, which never goes back to false.
func (s *Store) SaveReport(ctx context.Context, r *model.Report) error {
	r.DocumentHash = HashDocument(r.Document)

	query := `
	INSERT INTO reports (id, vehicle_number, type_label, operator_date, site_name, work_order,
		filename, document, document_hash, created_at, shared)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		vehicle_number = excluded.vehicle_number,
		type_label = excluded.type_label,
		operator_date = excluded.operator_date,
		site_name = excluded.site_name,
		work_order = excluded.work_order,
		filename = excluded.filename,
		document = excluded.document,
		document_hash = excluded.document_hash,
		created_at = excluded.created_at,
		shared = MAX(reports.shared, excluded.shared)
	`

	_, err := s.db.ExecContext(ctx, query,
		r.ID,
		r.VehicleNumber,
		r.TypeLabel,
		r.OperatorDate,
		r.SiteName,
		r.WorkOrder,
		r.Filename,
		r.Document,
		r.DocumentHash,
		formatTimestamp(r.CreatedAt),
		r.Shared,
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// GetReport returns a report with its document. It fails with ErrNotFound
// for an unknown ID and with ErrCorruptDocument when the document does not
// match the stored hash.
func (s *Store) GetReport(ctx context.Context, id string) (*model.Report, error) {
	query := `SELECT ` + reportColumns + `, document FROM reports WHERE id = ?`

	var r model.Report
	var createdAt string
	var workOrder, hash sql.NullString
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&r.ID,
		&r.VehicleNumber,
		&r.TypeLabel,
		&r.OperatorDate,
		&r.SiteName,
		&workOrder,
		&r.Filename,
		&hash,
		&createdAt,
		&r.Shared,
		&r.Document,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: report %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	r.WorkOrder = workOrder.String
	r.DocumentHash = hash.String
	r.CreatedAt = parseTimestamp(createdAt)

	if r.DocumentHash != "" && HashDocument(r.Document) != r.DocumentHash {
		return nil, fmt.Errorf("%w: report %s", ErrCorruptDocument, id)
	}
	return &r, nil
}

// ListReports returns report metadata, newest first, without documents.
func (s *Store) ListReports(ctx context.Context, filter SharedFilter) ([]model.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports`
	switch filter {
	case SharedOnly:
		query += ` WHERE shared = 1`
	case UnsharedOnly:
		query += ` WHERE shared = 0`
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	results := make([]model.Report, 0)
	for rows.Next() {
		var r model.Report
		var createdAt string
		var workOrder, hash sql.NullString
		if err := rows.Scan(
			&r.ID,
			&r.VehicleNumber,
			&r.TypeLabel,
			&r.OperatorDate,
			&r.SiteName,
			&workOrder,
			&r.Filename,
			&hash,
			&createdAt,
			&r.Shared,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		r.WorkOrder = workOrder.String
		r.DocumentHash = hash.String
		r.CreatedAt = parseTimestamp(createdAt)
		results = append(results, r)
	}
	return results, rows.Err()
}

// DocumentSize returns the size in bytes of a report's stored document.
func (s *Store) DocumentSize(ctx context.Context, id string) (int64, error) {
	var size sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT length(document) FROM reports WHERE id = ?`, id).Scan(&size)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: report %s", ErrNotFound, id)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get document size: %w", err)
	}
	return size.Int64, nil
}

// MarkReportShared sets the shared flag of a report.
func (s *Store) MarkReportShared(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE reports SET shared = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark report shared: %w", err)
	}
	return requireAffected(result, "report", id)
}

// UnsharedCount returns the number of reports not shared yet.
func (s *Store) UnsharedCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports WHERE shared = 0`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unshared reports: %w", err)
	}
	return count, nil
}

// DeleteReport removes one report.
func (s *Store) DeleteReport(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	return requireAffected(result, "report", id)
}

// DeleteAllReports clears the history and returns how many reports were removed.
func (s *Store) DeleteAllReports(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reports`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete reports: %w", err)
	}
	return result.RowsAffected()
}

// requireAffected turns an update or delete that matched nothing into ErrNotFound.
func requireAffected(result sql.Result, what, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		if id == "" {
			return fmt.Errorf("%w: %s", ErrNotFound, what)
		}
		return fmt.Errorf("%w: %s %s", ErrNotFound, what, id)
	}
	return nil
}
