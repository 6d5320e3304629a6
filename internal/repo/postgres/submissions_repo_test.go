package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Ihido/inside-bot/internal/domain/enums"
	"github.com/Ihido/inside-bot/internal/domain/model"
)

var submissionRows = []string{
	"id", "telegram_id", "user_info", "content_type", "caption",
	"media_file_id", "status", "submitted_at", "admin_comment",
}

func TestCreateReturnsAssignedID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`INSERT INTO submissions`).
		WithArgs(int64(42), "Флот 3, мастер Иванов", "photo", "Пультовая", "file-abc", "pending", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	repo := NewSubmissionsRepo(db)
	id, err := repo.Create(context.Background(), model.Submission{
		TelegramID:  42,
		UserInfo:    "Флот 3, мастер Иванов",
		ContentType: enums.ContentTypePhoto,
		Caption:     "Пультовая",
		MediaFileID: "file-abc",
		Status:      enums.StatusPending,
		SubmittedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected id 7, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`SELECT .+ FROM submissions`).
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows(submissionRows))

	repo := NewSubmissionsRepo(db)
	if _, err := repo.GetByID(context.Background(), 999); !errors.Is(err, ErrSubmissionNotFound) {
		t.Fatalf("expected ErrSubmissionNotFound, got %v", err)
	}
}

func TestSetStatusReturnsUpdatedRow(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	submittedAt := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`UPDATE submissions`).
		WithArgs(int64(7), "approved", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(submissionRows).AddRow(
			int64(7), int64(42), "Флот 3, мастер Иванов", "photo", "Пультовая",
			"file-abc", "approved", submittedAt, "Отличное фото!",
		))

	repo := NewSubmissionsRepo(db)
	submission, err := repo.SetStatus(context.Background(), 7, enums.StatusApproved, "Отличное фото!")
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if submission.Status != enums.StatusApproved {
		t.Fatalf("expected approved, got %s", submission.Status)
	}
	if submission.AdminComment != "Отличное фото!" {
		t.Fatalf("unexpected comment %q", submission.AdminComment)
	}
}

func TestSetStatusNotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`UPDATE submissions`).
		WithArgs(int64(999), "rejected", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(submissionRows))

	repo := NewSubmissionsRepo(db)
	if _, err := repo.SetStatus(context.Background(), 999, enums.StatusRejected, "причина"); !errors.Is(err, ErrSubmissionNotFound) {
		t.Fatalf("expected ErrSubmissionNotFound, got %v", err)
	}
}

func TestCountByStatusRejectsUnknownValue(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`SELECT status, COUNT`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("pending", int64(2)).
			AddRow("draft", int64(1)))

	repo := NewSubmissionsRepo(db)
	if _, err := repo.CountByStatus(context.Background()); err == nil {
		t.Fatal("expected error for unknown stored status")
	}
}

func TestListByStatusPendingIsOldestFirst(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	first := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	second := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`ORDER BY submitted_at ASC`).
		WithArgs("pending", 1000).
		WillReturnRows(sqlmock.NewRows(submissionRows).
			AddRow(int64(1), int64(10), "первый рассказ о себе", "text", "", nil, "pending", first, nil).
			AddRow(int64(2), int64(11), "второй рассказ о себе", "text", "", nil, "pending", second, nil))

	repo := NewSubmissionsRepo(db)
	list, err := repo.ListByStatus(context.Background(), enums.StatusPending, true, 0)
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(list) != 2 || list[0].ID != 1 || list[1].ID != 2 {
		t.Fatalf("unexpected listing: %+v", list)
	}
	if list[0].MediaFileID != "" {
		t.Fatalf("expected empty media handle for text, got %q", list[0].MediaFileID)
	}
}
