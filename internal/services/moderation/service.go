package moderation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Ihido/inside-bot/internal/domain/enums"
	"github.com/Ihido/inside-bot/internal/domain/model"
	"github.com/Ihido/inside-bot/internal/ui"
)

const (
	// DefaultRejectReason stands in when the moderator gives none.
	DefaultRejectReason = "Отклонено модератором"

	recentListLimit = 20
	ownListLimit    = 10
)

type Store interface {
	GetByID(ctx context.Context, id int64) (model.Submission, error)
	ListByStatus(ctx context.Context, status enums.SubmissionStatus, oldestFirst bool, limit int) ([]model.Submission, error)
	ListRecent(ctx context.Context, limit int) ([]model.Submission, error)
	ListBySubmitter(ctx context.Context, telegramID int64, limit int) ([]model.Submission, error)
	SetStatus(ctx context.Context, id int64, status enums.SubmissionStatus, comment string) (model.Submission, error)
	CountByStatus(ctx context.Context) (map[enums.SubmissionStatus]int64, error)
	CountByContentType(ctx context.Context) (map[enums.ContentType]int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type Notifier interface {
	NotifyUser(telegramID int64, text string)
}

// Service implements the moderator commands over the submission store.
// Decisions are last-writer-wins: an already-decided submission can be
// re-decided, and the new status simply replaces the old one.
type Service struct {
	store    Store
	notifier Notifier
	now      func() time.Time
}

func NewService(store Store, notifier Notifier) *Service {
	return newService(store, notifier, time.Now)
}

func newService(store Store, notifier Notifier, now func() time.Time) *Service {
	return &Service{store: store, notifier: notifier, now: now}
}

// Approve marks the submission approved and tells the submitter. The
// comment is optional. Delivery is best-effort: the status change holds
// even if the submitter is unreachable.
func (s *Service) Approve(ctx context.Context, id int64, comment string) (model.Submission, error) {
	submission, err := s.store.SetStatus(ctx, id, enums.StatusApproved, strings.TrimSpace(comment))
	if err != nil {
		return model.Submission{}, fmt.Errorf("approve submission %d: %w", id, err)
	}

	s.notifier.NotifyUser(submission.TelegramID, ui.SubmitterApproved(submission.ID, submission.AdminComment))
	return submission, nil
}

// Reject marks the submission rejected and tells the submitter why. An
// empty reason is replaced with DefaultRejectReason before persisting.
func (s *Service) Reject(ctx context.Context, id int64, reason string) (model.Submission, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultRejectReason
	}

	submission, err := s.store.SetStatus(ctx, id, enums.StatusRejected, reason)
	if err != nil {
		return model.Submission{}, fmt.Errorf("reject submission %d: %w", id, err)
	}

	s.notifier.NotifyUser(submission.TelegramID, ui.SubmitterRejected(submission.ID, submission.AdminComment))
	return submission, nil
}

func (s *Service) View(ctx context.Context, id int64) (model.Submission, error) {
	submission, err := s.store.GetByID(ctx, id)
	if err != nil {
		return model.Submission{}, fmt.Errorf("view submission %d: %w", id, err)
	}
	return submission, nil
}

// ListPending returns the whole review queue, oldest first.
func (s *Service) ListPending(ctx context.Context) ([]model.Submission, error) {
	submissions, err := s.store.ListByStatus(ctx, enums.StatusPending, true, 0)
	if err != nil {
		return nil, fmt.Errorf("list pending submissions: %w", err)
	}
	return submissions, nil
}

// ListRecent returns the latest submissions across all statuses,
// newest first.
func (s *Service) ListRecent(ctx context.Context) ([]model.Submission, error) {
	submissions, err := s.store.ListRecent(ctx, recentListLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent submissions: %w", err)
	}
	return submissions, nil
}

func (s *Service) ListBySubmitter(ctx context.Context, telegramID int64) ([]model.Submission, error) {
	submissions, err := s.store.ListBySubmitter(ctx, telegramID, ownListLimit)
	if err != nil {
		return nil, fmt.Errorf("list submissions of %d: %w", telegramID, err)
	}
	return submissions, nil
}

func (s *Service) CountByStatus(ctx context.Context) (map[enums.SubmissionStatus]int64, error) {
	counts, err := s.store.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count submissions by status: %w", err)
	}
	return counts, nil
}

// Stats aggregates totals by status and content type plus the volume
// of the trailing seven days.
func (s *Service) Stats(ctx context.Context) (model.StatsReport, error) {
	byStatus, err := s.store.CountByStatus(ctx)
	if err != nil {
		return model.StatsReport{}, fmt.Errorf("count submissions by status: %w", err)
	}

	byContentType, err := s.store.CountByContentType(ctx)
	if err != nil {
		return model.StatsReport{}, fmt.Errorf("count submissions by content type: %w", err)
	}

	lastWeek, err := s.store.CountSince(ctx, s.now().UTC().AddDate(0, 0, -7))
	if err != nil {
		return model.StatsReport{}, fmt.Errorf("count last week submissions: %w", err)
	}

	return model.StatsReport{
		ByStatus:      byStatus,
		ByContentType: byContentType,
		LastWeek:      lastWeek,
	}, nil
}
