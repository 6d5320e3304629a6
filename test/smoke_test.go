package test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Ihido/inside-bot/internal/domain/enums"
	"github.com/Ihido/inside-bot/internal/domain/model"
	"github.com/Ihido/inside-bot/internal/repo/memory"
	"github.com/Ihido/inside-bot/internal/repo/postgres"
	"github.com/Ihido/inside-bot/internal/services/access"
	"github.com/Ihido/inside-bot/internal/services/moderation"
	"github.com/Ihido/inside-bot/internal/services/wizard"
	"github.com/Ihido/inside-bot/internal/ui"
)

// memStore keeps submissions in a slice so the full submit-then-decide
// flow can run without postgres.
type memStore struct {
	submissions []model.Submission
}

func (s *memStore) Create(_ context.Context, submission model.Submission) (int64, error) {
	submission.ID = int64(len(s.submissions) + 1)
	s.submissions = append(s.submissions, submission)
	return submission.ID, nil
}

func (s *memStore) GetByID(_ context.Context, id int64) (model.Submission, error) {
	for _, submission := range s.submissions {
		if submission.ID == id {
			return submission, nil
		}
	}
	return model.Submission{}, postgres.ErrSubmissionNotFound
}

func (s *memStore) ListByStatus(_ context.Context, status enums.SubmissionStatus, oldestFirst bool, limit int) ([]model.Submission, error) {
	matched := make([]model.Submission, 0)
	for _, submission := range s.submissions {
		if submission.Status == status {
			matched = append(matched, submission)
		}
	}
	if !oldestFirst {
		for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
			matched[i], matched[j] = matched[j], matched[i]
		}
	}
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *memStore) ListRecent(_ context.Context, limit int) ([]model.Submission, error) {
	out := make([]model.Submission, 0, len(s.submissions))
	for i := len(s.submissions) - 1; i >= 0; i-- {
		out = append(out, s.submissions[i])
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) ListBySubmitter(_ context.Context, telegramID int64, limit int) ([]model.Submission, error) {
	out := make([]model.Submission, 0)
	for i := len(s.submissions) - 1; i >= 0; i-- {
		if s.submissions[i].TelegramID == telegramID {
			out = append(out, s.submissions[i])
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) SetStatus(_ context.Context, id int64, status enums.SubmissionStatus, comment string) (model.Submission, error) {
	for i := range s.submissions {
		if s.submissions[i].ID == id {
			s.submissions[i].Status = status
			s.submissions[i].AdminComment = comment
			return s.submissions[i], nil
		}
	}
	return model.Submission{}, postgres.ErrSubmissionNotFound
}

func (s *memStore) CountByStatus(_ context.Context) (map[enums.SubmissionStatus]int64, error) {
	counts := make(map[enums.SubmissionStatus]int64)
	for _, submission := range s.submissions {
		counts[submission.Status]++
	}
	return counts, nil
}

func (s *memStore) CountByContentType(_ context.Context) (map[enums.ContentType]int64, error) {
	counts := make(map[enums.ContentType]int64)
	for _, submission := range s.submissions {
		counts[submission.ContentType]++
	}
	return counts, nil
}

func (s *memStore) CountSince(_ context.Context, since time.Time) (int64, error) {
	var count int64
	for _, submission := range s.submissions {
		if !submission.SubmittedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// capturingNotifier records both delivery directions.
type capturingNotifier struct {
	adminTexts []string
	userIDs    []int64
	userTexts  []string
}

func (n *capturingNotifier) NotifyAdmins(adminIDs []int64, text string) {
	for range adminIDs {
		n.adminTexts = append(n.adminTexts, text)
	}
}

func (n *capturingNotifier) NotifyUser(telegramID int64, text string) {
	n.userIDs = append(n.userIDs, telegramID)
	n.userTexts = append(n.userTexts, text)
}

func TestFullSubmissionAndModerationFlow(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	notifier := &capturingNotifier{}
	admins := access.NewService([]int64{900, 901})
	wizardSvc := wizard.NewService(memory.NewDraftRepo(), store, notifier, admins)
	moderationSvc := moderation.NewService(store, notifier)

	// Submitter walks the photo flow end to end.
	if _, err := wizardSvc.Start(ctx, 42, enums.ContentTypePhoto); err != nil {
		t.Fatalf("Start: %v", err)
	}
	steps := []wizard.Input{
		{Text: "Иван, отдел маркетинга"},
		{Text: "Наша команда на субботнике"},
		{PhotoFileID: "photo-file-1"},
		{Text: ui.ButtonConfirmYes},
	}
	for _, input := range steps {
		if _, handled, err := wizardSvc.HandleInput(ctx, 42, input); err != nil || !handled {
			t.Fatalf("HandleInput(%+v): handled=%v err=%v", input, handled, err)
		}
	}

	if len(store.submissions) != 1 {
		t.Fatalf("stored %d submissions, want 1", len(store.submissions))
	}
	if store.submissions[0].Status != enums.StatusPending {
		t.Fatalf("status = %q, want pending", store.submissions[0].Status)
	}
	if len(notifier.adminTexts) != 2 {
		t.Fatalf("notified admins %d times, want 2", len(notifier.adminTexts))
	}

	// The new submission shows up in the review queue.
	pending, err := moderationSvc.ListPending(ctx)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != 1 {
		t.Fatalf("pending = %+v", pending)
	}

	// Moderator approves; the submitter hears about it.
	approved, err := moderationSvc.Approve(ctx, 1, "Отличный кадр")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != enums.StatusApproved {
		t.Fatalf("status = %q, want approved", approved.Status)
	}
	if len(notifier.userIDs) != 1 || notifier.userIDs[0] != 42 {
		t.Fatalf("user notifications went to %v, want [42]", notifier.userIDs)
	}
	if !strings.Contains(notifier.userTexts[0], "одобрена") {
		t.Fatalf("user notification = %q", notifier.userTexts[0])
	}

	// Queue drains, stats reflect the decision.
	pending, err = moderationSvc.ListPending(ctx)
	if err != nil {
		t.Fatalf("ListPending after approve: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending after approve = %+v", pending)
	}

	report, err := moderationSvc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if report.ByStatus[enums.StatusApproved] != 1 || report.Total() != 1 {
		t.Fatalf("report = %+v", report)
	}
}

func TestRejectionNotifiesWithReason(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	notifier := &capturingNotifier{}
	admins := access.NewService([]int64{900})
	wizardSvc := wizard.NewService(memory.NewDraftRepo(), store, notifier, admins)
	moderationSvc := moderation.NewService(store, notifier)

	wizardSvc.Start(ctx, 77, enums.ContentTypeText)
	wizardSvc.HandleInput(ctx, 77, wizard.Input{Text: "Ольга, бухгалтерия"})
	wizardSvc.HandleInput(ctx, 77, wizard.Input{Text: "Заметка о квартальном отчёте"})
	wizardSvc.HandleInput(ctx, 77, wizard.Input{Text: ui.ButtonConfirmYes})

	if _, err := moderationSvc.Reject(ctx, 1, ""); err != nil {
		t.Fatalf("Reject: %v", err)
	}

	if len(notifier.userTexts) != 1 {
		t.Fatalf("user notifications = %v", notifier.userTexts)
	}
	if !strings.Contains(notifier.userTexts[0], moderation.DefaultRejectReason) {
		t.Fatalf("notification %q misses the default reason", notifier.userTexts[0])
	}
}

func TestDecisionOnUnknownIDDoesNotNotify(t *testing.T) {
	store := &memStore{}
	notifier := &capturingNotifier{}
	moderationSvc := moderation.NewService(store, notifier)

	_, err := moderationSvc.Approve(context.Background(), 5, "")
	if !errors.Is(err, postgres.ErrSubmissionNotFound) {
		t.Fatalf("err = %v, want ErrSubmissionNotFound", err)
	}
	if len(notifier.userTexts) != 0 {
		t.Fatal("notified submitter for a missing submission")
	}
}

func TestMySubmissionsRendering(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	notifier := &capturingNotifier{}
	admins := access.NewService([]int64{900})
	wizardSvc := wizard.NewService(memory.NewDraftRepo(), store, notifier, admins)
	moderationSvc := moderation.NewService(store, notifier)

	wizardSvc.Start(ctx, 42, enums.ContentTypeText)
	wizardSvc.HandleInput(ctx, 42, wizard.Input{Text: "Пётр, отдел логистики"})
	wizardSvc.HandleInput(ctx, 42, wizard.Input{Text: "Фотоотчёт со склада"})
	wizardSvc.HandleInput(ctx, 42, wizard.Input{Text: ui.ButtonConfirmYes})

	mine, err := moderationSvc.ListBySubmitter(ctx, 42)
	if err != nil {
		t.Fatalf("ListBySubmitter: %v", err)
	}
	rendered := ui.RenderMySubmissions(mine)
	if !strings.Contains(rendered, "#1") {
		t.Fatalf("rendered list %q misses the submission", rendered)
	}

	other, err := moderationSvc.ListBySubmitter(ctx, 43)
	if err != nil {
		t.Fatalf("ListBySubmitter other: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("other user sees %+v", other)
	}
}
