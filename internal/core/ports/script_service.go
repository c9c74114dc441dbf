package ports

import (
	"context"
	"io"

	"github.com/cinemind/studio-api/internal/core/domain"
)

// ScriptUpload is an uploaded screenplay file.
type ScriptUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// AnalyzeScriptInput carries everything needed for one analysis request.
type AnalyzeScriptInput struct {
	UserID         int64
	Upload         *ScriptUpload // nil when no file was sent
	IdempotencyKey string
}

// AnalyzeScriptResult is returned by ScriptService.Analyze.
type AnalyzeScriptResult struct {
	Record    *domain.AnalysisRecord
	Breakdown domain.ScriptBreakdown
	// Replayed is true when an earlier record was returned for the same
	// idempotency key instead of inserting a new one.
	Replayed bool
}

// ScriptService defines the script-analysis use cases.
type ScriptService interface {
	Analyze(ctx context.Context, input AnalyzeScriptInput) (*AnalyzeScriptResult, error)
	History(ctx context.Context, userID int64) ([]domain.AnalysisRecord, error)
}

// UploadStore keeps the raw uploaded files.
type UploadStore interface {
	// Save stores the upload and returns the key it was stored under.
	Save(ctx context.Context, upload ScriptUpload) (string, error)
}

// IdempotencyStore remembers which analysis record answered an idempotency key.
type IdempotencyStore interface {
	// Reserve claims key. When the key already points at a finished record,
	// reserved is false and recordID is that record. When the key is claimed
	// but unfinished, it returns domain.ErrRequestInProgress.
	Reserve(ctx context.Context, key string) (recordID int64, reserved bool, err error)
	Complete(ctx context.Context, key string, recordID int64) error
	Release(ctx context.Context, key string) error
}
