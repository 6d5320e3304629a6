package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Ihido/inside-bot/internal/domain/enums"
	"github.com/Ihido/inside-bot/internal/domain/model"
)

var ErrSubmissionNotFound = errors.New("submission not found")

const submissionColumns = `id, telegram_id, user_info, content_type, caption, media_file_id, status, submitted_at, admin_comment`

type SubmissionsRepo struct {
	db *sql.DB
}

func NewSubmissionsRepo(db *sql.DB) *SubmissionsRepo {
	return &SubmissionsRepo{db: db}
}

func (r *SubmissionsRepo) Create(ctx context.Context, submission model.Submission) (int64, error) {
	if r.db == nil {
		return 0, fmt.Errorf("submissions repo has no database")
	}

	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO submissions (telegram_id, user_info, content_type, caption, media_file_id, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		submission.TelegramID,
		submission.UserInfo,
		string(submission.ContentType),
		submission.Caption,
		nullableText(submission.MediaFileID),
		string(submission.Status),
		submission.SubmittedAt.UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert submission: %w", err)
	}

	return id, nil
}

func (r *SubmissionsRepo) GetByID(ctx context.Context, id int64) (model.Submission, error) {
	if r.db == nil {
		return model.Submission{}, ErrSubmissionNotFound
	}
	if id <= 0 {
		return model.Submission{}, ErrSubmissionNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+submissionColumns+`
		FROM submissions
		WHERE id = $1
		LIMIT 1
	`, id)

	submission, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Submission{}, ErrSubmissionNotFound
		}
		return model.Submission{}, fmt.Errorf("get submission by id: %w", err)
	}
	return submission, nil
}

// ListByStatus returns submissions in one status. The pending moderation
// queue is read oldest-first, everything else newest-first.
func (r *SubmissionsRepo) ListByStatus(ctx context.Context, status enums.SubmissionStatus, oldestFirst bool, limit int) ([]model.Submission, error) {
	if r.db == nil {
		return nil, nil
	}

	order := "DESC"
	if oldestFirst {
		order = "ASC"
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+submissionColumns+`
		FROM submissions
		WHERE status = $1
		ORDER BY submitted_at `+order+`, id `+order+`
		LIMIT $2
	`, string(status), normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list submissions by status: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return collectSubmissions(rows)
}

func (r *SubmissionsRepo) ListRecent(ctx context.Context, limit int) ([]model.Submission, error) {
	if r.db == nil {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+submissionColumns+`
		FROM submissions
		ORDER BY submitted_at DESC, id DESC
		LIMIT $1
	`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list recent submissions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return collectSubmissions(rows)
}

func (r *SubmissionsRepo) ListBySubmitter(ctx context.Context, telegramID int64, limit int) ([]model.Submission, error) {
	if r.db == nil {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+submissionColumns+`
		FROM submissions
		WHERE telegram_id = $1
		ORDER BY submitted_at DESC, id DESC
		LIMIT $2
	`, telegramID, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list submissions by submitter: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return collectSubmissions(rows)
}

// SetStatus overwrites status and admin comment. There is no pending-only
// guard: repeated admin decisions are allowed and last-writer-wins.
func (r *SubmissionsRepo) SetStatus(ctx context.Context, id int64, status enums.SubmissionStatus, comment string) (model.Submission, error) {
	if r.db == nil {
		return model.Submission{}, ErrSubmissionNotFound
	}
	if id <= 0 {
		return model.Submission{}, ErrSubmissionNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE submissions
		SET status = $2,
		    admin_comment = $3
		WHERE id = $1
		RETURNING `+submissionColumns+`
	`, id, string(status), nullableText(comment))

	submission, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Submission{}, ErrSubmissionNotFound
		}
		return model.Submission{}, fmt.Errorf("set submission status: %w", err)
	}
	return submission, nil
}

func (r *SubmissionsRepo) CountByStatus(ctx context.Context) (map[enums.SubmissionStatus]int64, error) {
	if r.db == nil {
		return map[enums.SubmissionStatus]int64{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*)
		FROM submissions
		GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("count submissions by status: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	counts := make(map[enums.SubmissionStatus]int64)
	for rows.Next() {
		var raw string
		var count int64
		if err := rows.Scan(&raw, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		status, err := enums.ParseSubmissionStatus(raw)
		if err != nil {
			return nil, fmt.Errorf("count submissions by status: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}
	return counts, nil
}

func (r *SubmissionsRepo) CountByContentType(ctx context.Context) (map[enums.ContentType]int64, error) {
	if r.db == nil {
		return map[enums.ContentType]int64{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT content_type, COUNT(*)
		FROM submissions
		GROUP BY content_type
	`)
	if err != nil {
		return nil, fmt.Errorf("count submissions by content type: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	counts := make(map[enums.ContentType]int64)
	for rows.Next() {
		var raw string
		var count int64
		if err := rows.Scan(&raw, &count); err != nil {
			return nil, fmt.Errorf("scan content type count: %w", err)
		}
		contentType, err := enums.ParseContentType(raw)
		if err != nil {
			return nil, fmt.Errorf("count submissions by content type: %w", err)
		}
		counts[contentType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate content type counts: %w", err)
	}
	return counts, nil
}

func (r *SubmissionsRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	if r.db == nil {
		return 0, nil
	}

	var count int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM submissions
		WHERE submitted_at >= $1
	`, since.UTC()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count submissions since: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (model.Submission, error) {
	var submission model.Submission
	var contentType string
	var status string
	var mediaFileID sql.NullString
	var adminComment sql.NullString

	err := row.Scan(
		&submission.ID,
		&submission.TelegramID,
		&submission.UserInfo,
		&contentType,
		&submission.Caption,
		&mediaFileID,
		&status,
		&submission.SubmittedAt,
		&adminComment,
	)
	if err != nil {
		return model.Submission{}, err
	}

	submission.ContentType, err = enums.ParseContentType(contentType)
	if err != nil {
		return model.Submission{}, err
	}
	submission.Status, err = enums.ParseSubmissionStatus(status)
	if err != nil {
		return model.Submission{}, err
	}
	submission.MediaFileID = mediaFileID.String
	submission.AdminComment = adminComment.String

	return submission, nil
}

func collectSubmissions(rows *sql.Rows) ([]model.Submission, error) {
	submissions := make([]model.Submission, 0)
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		submissions = append(submissions, submission)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return submissions, nil
}

func nullableText(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 1000
	}
	return limit
}
