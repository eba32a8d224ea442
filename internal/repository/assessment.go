// Package repository persists evaluation results. The engine itself computes
// results fresh on every call and never persists; this is the caller-side
// audit trail.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/medrisk-server/internal/database"
	"github.com/medrisk-server/internal/domain"
)

// AssessmentRepository handles assessment record persistence
type AssessmentRepository struct {
	db  *database.DB
	log *logrus.Logger
}

// NewAssessmentRepository creates a new assessment repository
func NewAssessmentRepository(db *database.DB, logger *logrus.Logger) *AssessmentRepository {
	return &AssessmentRepository{
		db:  db,
		log: logger,
	}
}

// Create inserts a new assessment record, assigning an ID and timestamp when
// the caller left them unset.
func (r *AssessmentRepository) Create(ctx context.Context, record *domain.AssessmentRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO assessments (
			id, kind, patient_id, request_digest, risk_level, result, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)`

	_, err := r.db.Pool.Exec(ctx, query,
		record.ID,
		record.Kind,
		record.PatientID,
		record.RequestDigest,
		record.RiskLevel,
		record.Result,
		record.CreatedAt,
	)

	if err != nil {
		r.log.WithFields(logrus.Fields{
			"assessment_id": record.ID,
			"kind":          record.Kind,
			"error":         err,
		}).Error("Failed to create assessment record")
		return fmt.Errorf("creating assessment record: %w", err)
	}

	r.log.WithFields(logrus.Fields{
		"assessment_id": record.ID,
		"kind":          record.Kind,
		"risk_level":    record.RiskLevel,
	}).Info("Assessment record created")

	return nil
}

// GetByID retrieves an assessment record by its ID
func (r *AssessmentRepository) GetByID(ctx context.Context, id string) (*domain.AssessmentRecord, error) {
	query := `
		SELECT id, kind, patient_id, request_digest, risk_level, result, created_at
		FROM assessments
		WHERE id = $1`

	var record domain.AssessmentRecord
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.Kind,
		&record.PatientID,
		&record.RequestDigest,
		&record.RiskLevel,
		&record.Result,
		&record.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting assessment record: %w", err)
	}

	return &record, nil
}

// ListByPatient returns the most recent assessment records for a patient,
// newest first.
func (r *AssessmentRepository) ListByPatient(ctx context.Context, patientID string, limit int) ([]*domain.AssessmentRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, kind, patient_id, request_digest, risk_level, result, created_at
		FROM assessments
		WHERE patient_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Pool.Query(ctx, query, patientID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing assessment records: %w", err)
	}
	defer rows.Close()

	var records []*domain.AssessmentRecord
	for rows.Next() {
		var record domain.AssessmentRecord
		if err := rows.Scan(
			&record.ID,
			&record.Kind,
			&record.PatientID,
			&record.RequestDigest,
			&record.RiskLevel,
			&record.Result,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning assessment record: %w", err)
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assessment records: %w", err)
	}

	return records, nil
}

// CountByLevel returns the number of stored assessments per risk level,
// used by the health/stats surface.
func (r *AssessmentRepository) CountByLevel(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT risk_level, COUNT(*) FROM assessments GROUP BY risk_level`)
	if err != nil {
		return nil, fmt.Errorf("counting assessments: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var level string
		var count int64
		if err := rows.Scan(&level, &count); err != nil {
			return nil, fmt.Errorf("scanning assessment count: %w", err)
		}
		counts[level] = count
	}

	return counts, rows.Err()
}
