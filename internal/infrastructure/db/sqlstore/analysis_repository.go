package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cinemind/studio-api/internal/core/domain"
	"github.com/cinemind/studio-api/internal/core/ports"
)

const analysisColumns = `id, user_id, file_name, tone, risk_score, analysis_data, created_at`

// AnalysisRepository implements ports.AnalysisRepository on the
// script_analysis table.
type AnalysisRepository struct {
	db DBTX
}

// NewAnalysisRepository creates a new AnalysisRepository.
func NewAnalysisRepository(db DBTX) ports.AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Create stores a record. The payload is written as text so the stored bytes
// match what the caller produced.
func (r *AnalysisRepository) Create(ctx context.Context, record *domain.AnalysisRecord) (*domain.AnalysisRecord, error) {
	const q = `INSERT INTO script_analysis (user_id, file_name, tone, risk_score, analysis_data)
VALUES (?, ?, ?, ?, ?) RETURNING id, created_at`

	out := *record
	var createdAt timestamp
	err := r.db.QueryRowContext(ctx, q,
		out.UserID, out.FileName, out.Tone, out.RiskScore, string(out.AnalysisData),
	).Scan(&out.ID, &createdAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("insert analysis: %w", err)
	}
	out.CreatedAt = createdAt.Time
	return &out, nil
}

// FindByID returns domain.ErrAnalysisNotFound when no record has the id.
func (r *AnalysisRepository) FindByID(ctx context.Context, id int64) (*domain.AnalysisRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+analysisColumns+` FROM script_analysis WHERE id = ?`, id)
	rec, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAnalysisNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find analysis: %w", err)
	}
	return rec, nil
}

// ListByUser returns every record of the account, newest first. Records
// created in the same instant come back in reverse insertion order.
func (r *AnalysisRepository) ListByUser(ctx context.Context, userID int64) ([]domain.AnalysisRecord, error) {
	const q = `SELECT ` + analysisColumns + ` FROM script_analysis
WHERE user_id = ? ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	records := make([]domain.AnalysisRecord, 0)
	for rows.Next() {
		rec, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyses: %w", err)
	}
	return records, nil
}

// Count returns the number of stored analyses across all accounts.
func (r *AnalysisRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM script_analysis`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count analyses: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(s rowScanner) (*domain.AnalysisRecord, error) {
	var (
		rec       domain.AnalysisRecord
		userID    sql.NullInt64
		fileName  sql.NullString
		tone      sql.NullString
		riskScore sql.NullInt64
		data      []byte
		createdAt timestamp
	)
	if err := s.Scan(&rec.ID, &userID, &fileName, &tone, &riskScore, &data, &createdAt); err != nil {
		return nil, err
	}
	rec.UserID = userID.Int64
	rec.FileName = fileName.String
	rec.Tone = tone.String
	rec.RiskScore = int(riskScore.Int64)
	if len(data) > 0 {
		rec.AnalysisData = append([]byte(nil), data...)
	}
	rec.CreatedAt = createdAt.Time
	return &rec, nil
}
