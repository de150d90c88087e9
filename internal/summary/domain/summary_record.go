package domain

import (
	"errors"
	"time"
)

// SourceKind names the registry a summarized record came from. Together with
// the source id it forms the cache key.
type SourceKind string

const (
	SourceTrial       SourceKind = "trial"
	SourcePublication SourceKind = "publication"
)

// SummaryRecord stores a cached AI-generated summary for one external record.
// Rows are written once and never updated.
type SummaryRecord struct {
	ID         string     `json:"id" gorm:"primaryKey"`
	SourceKind SourceKind `json:"source_kind" gorm:"size:32;not null;uniqueIndex:idx_summary_source"`
	SourceID   string     `json:"source_id" gorm:"size:191;not null;uniqueIndex:idx_summary_source"`
	Summary    string     `json:"summary" gorm:"type:text;not null"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TableName specifies the table name for GORM
func (SummaryRecord) TableName() string {
	return "summary_records"
}

var (
	// ErrSummarizationFailed marks a record whose summary could not be generated.
	ErrSummarizationFailed = errors.New("summarization failed")
	// ErrStorageUnavailable marks a summary cache read or write failure.
	ErrStorageUnavailable = errors.New("summary storage unavailable")
)

// SummarizationError carries the cause of a failed summarization.
type SummarizationError struct {
	Attempts int
	Err      error
}

func (e *SummarizationError) Error() string {
	return "summarization failed: " + e.Err.Error()
}

func (e *SummarizationError) Unwrap() error { return e.Err }

func (e *SummarizationError) Is(target error) bool {
	return target == ErrSummarizationFailed
}
