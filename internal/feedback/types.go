// Package feedback stores user feedback on interaction alerts. Patients and
// clinicians can mark a flagged interaction as helpful or not; the data is
// used to tune catalog rule wording over time.
package feedback

import (
	"context"
	"io"
	"time"
)

// Feedback represents a user's verdict on one interaction alert.
type Feedback struct {
	ID          int64     `json:"id,omitempty"`
	RuleID      string    `json:"rule_id"`                // Interaction rule that fired
	PatientID   string    `json:"patient_id,omitempty"`   // Whose chart the alert appeared on
	Medications string    `json:"medications,omitempty"`  // Comma-joined generic names involved
	Severity    string    `json:"severity,omitempty"`     // Severity shown with the alert
	Helpful     bool      `json:"helpful"`                // Did the user find the alert helpful?
	Notes       string    `json:"notes,omitempty"`        // Free-text user notes
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Store defines the interface for feedback storage operations.
type Store interface {
	// Save stores or updates feedback for an alert. Feedback for the same
	// rule and patient is updated in place.
	Save(ctx context.Context, feedback *Feedback) error

	// Get retrieves feedback for a rule on a patient's chart.
	// Returns nil without error when no entry exists.
	Get(ctx context.Context, ruleID, patientID string) (*Feedback, error)

	// List returns feedback entries with pagination, newest first.
	List(ctx context.Context, limit, offset int) ([]*Feedback, error)

	// Count returns the total number of feedback entries.
	Count(ctx context.Context) (int64, error)

	// Delete removes a feedback entry by ID.
	Delete(ctx context.Context, id int64) error

	// ExportJSON exports all feedback to a JSON writer.
	ExportJSON(ctx context.Context, writer io.Writer) error

	// ImportJSON imports feedback from a JSON reader. Returns the number of
	// imported and skipped entries.
	ImportJSON(ctx context.Context, reader io.Reader) (imported int, skipped int, err error)

	// Close closes the store and releases resources.
	Close() error
}

// Export represents the JSON export format.
type Export struct {
	Version    string      `json:"version"`
	ExportedAt time.Time   `json:"exported_at"`
	Count      int         `json:"count"`
	Feedback   []*Feedback `json:"feedback"`
}
