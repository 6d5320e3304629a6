package wizard

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Ihido/inside-bot/internal/domain/enums"
	"github.com/Ihido/inside-bot/internal/domain/model"
	"github.com/Ihido/inside-bot/internal/ui"
)

// minUserInfoRunes is the capture-time floor for the self-description,
// counted after trimming surrounding whitespace.
const minUserInfoRunes = 10

// Keyboard selects which reply keyboard accompanies a wizard reply.
type Keyboard string

const (
	KeyboardNone    Keyboard = "NONE"
	KeyboardMain    Keyboard = "MAIN"
	KeyboardCancel  Keyboard = "CANCEL"
	KeyboardConfirm Keyboard = "CONFIRM"
)

// Input is one inbound user event, already reduced by the transport:
// for photo messages PhotoFileID carries the largest available size.
type Input struct {
	Text        string
	PhotoFileID string
	VideoFileID string
}

type Reply struct {
	Text           string
	Keyboard       Keyboard
	PreviewFileID  string
	PreviewIsVideo bool
}

type Drafts interface {
	Get(ctx context.Context, telegramID int64) (model.Draft, bool, error)
	Set(ctx context.Context, telegramID int64, draft model.Draft) error
	Clear(ctx context.Context, telegramID int64) error
}

type Store interface {
	Create(ctx context.Context, submission model.Submission) (int64, error)
}

type Notifier interface {
	NotifyAdmins(adminIDs []int64, text string)
}

type Admins interface {
	AdminIDs() []int64
}

// Service drives the submission flow: a linear pipeline of steps with
// one branch (the media step exists only for photo and video) and a
// mandatory confirmation gate before anything is persisted.
type Service struct {
	drafts   Drafts
	store    Store
	notifier Notifier
	admins   Admins
	now      func() time.Time
}

func NewService(drafts Drafts, store Store, notifier Notifier, admins Admins) *Service {
	return newService(drafts, store, notifier, admins, time.Now)
}

func newService(drafts Drafts, store Store, notifier Notifier, admins Admins, now func() time.Time) *Service {
	return &Service{
		drafts:   drafts,
		store:    store,
		notifier: notifier,
		admins:   admins,
		now:      now,
	}
}

// Start opens a fresh flow for the user. A live draft, if any, is
// overwritten without confirmation.
func (s *Service) Start(ctx context.Context, telegramID int64, contentType enums.ContentType) (Reply, error) {
	draft := model.Draft{
		Step:        enums.StepUserInfo,
		ContentType: contentType,
	}
	if err := s.drafts.Set(ctx, telegramID, draft); err != nil {
		return Reply{}, fmt.Errorf("start submission flow: %w", err)
	}

	return Reply{
		Text:     ui.UserInfoPrompt(contentType),
		Keyboard: KeyboardCancel,
	}, nil
}

// Cancel drops the draft from any step. It is safe to call without a
// live draft.
func (s *Service) Cancel(ctx context.Context, telegramID int64) (Reply, error) {
	if err := s.drafts.Clear(ctx, telegramID); err != nil {
		return Reply{}, fmt.Errorf("cancel submission flow: %w", err)
	}

	return Reply{
		Text:     ui.Cancelled(),
		Keyboard: KeyboardMain,
	}, nil
}

// HandleInput advances the flow by one step. handled=false means the
// user has no live draft and the input belongs to someone else's
// routing. Invalid input never returns an error: the wizard re-prompts
// in the same step, indefinitely.
func (s *Service) HandleInput(ctx context.Context, telegramID int64, input Input) (Reply, bool, error) {
	draft, ok, err := s.drafts.Get(ctx, telegramID)
	if err != nil {
		return Reply{}, false, fmt.Errorf("load draft: %w", err)
	}
	if !ok {
		return Reply{}, false, nil
	}

	switch draft.Step {
	case enums.StepUserInfo:
		reply, err := s.handleUserInfo(ctx, telegramID, draft, input)
		return reply, true, err
	case enums.StepCaption:
		reply, err := s.handleCaption(ctx, telegramID, draft, input)
		return reply, true, err
	case enums.StepMedia:
		reply, err := s.handleMedia(ctx, telegramID, draft, input)
		return reply, true, err
	case enums.StepConfirmation:
		reply, err := s.handleConfirmation(ctx, telegramID, draft, input)
		return reply, true, err
	default:
		// Unknown persisted step: drop the broken draft.
		if err := s.drafts.Clear(ctx, telegramID); err != nil {
			return Reply{}, true, fmt.Errorf("clear broken draft: %w", err)
		}
		return Reply{Text: ui.Cancelled(), Keyboard: KeyboardMain}, true, nil
	}
}

func (s *Service) handleUserInfo(ctx context.Context, telegramID int64, draft model.Draft, input Input) (Reply, error) {
	info := strings.TrimSpace(input.Text)
	if utf8.RuneCountInString(info) < minUserInfoRunes {
		return Reply{
			Text:     ui.UserInfoTooShort(),
			Keyboard: KeyboardCancel,
		}, nil
	}

	draft.UserInfo = info
	draft.Step = enums.StepCaption
	if err := s.drafts.Set(ctx, telegramID, draft); err != nil {
		return Reply{}, fmt.Errorf("save user info: %w", err)
	}

	return Reply{
		Text:     ui.CaptionPrompt(),
		Keyboard: KeyboardCancel,
	}, nil
}

func (s *Service) handleCaption(ctx context.Context, telegramID int64, draft model.Draft, input Input) (Reply, error) {
	draft.Caption = strings.TrimSpace(input.Text)

	if draft.ContentType.RequiresMedia() {
		draft.Step = enums.StepMedia
		if err := s.drafts.Set(ctx, telegramID, draft); err != nil {
			return Reply{}, fmt.Errorf("save caption: %w", err)
		}
		return Reply{
			Text:     ui.MediaPrompt(draft.ContentType),
			Keyboard: KeyboardCancel,
		}, nil
	}

	draft.Step = enums.StepConfirmation
	if err := s.drafts.Set(ctx, telegramID, draft); err != nil {
		return Reply{}, fmt.Errorf("save caption: %w", err)
	}
	return previewReply(draft), nil
}

func (s *Service) handleMedia(ctx context.Context, telegramID int64, draft model.Draft, input Input) (Reply, error) {
	var fileID string
	switch draft.ContentType {
	case enums.ContentTypePhoto:
		fileID = input.PhotoFileID
	case enums.ContentTypeVideo:
		fileID = input.VideoFileID
	}

	if fileID == "" {
		return Reply{
			Text:     ui.MediaMissing(),
			Keyboard: KeyboardCancel,
		}, nil
	}

	draft.MediaFileID = fileID
	draft.Step = enums.StepConfirmation
	if err := s.drafts.Set(ctx, telegramID, draft); err != nil {
		return Reply{}, fmt.Errorf("save media: %w", err)
	}
	return previewReply(draft), nil
}

func (s *Service) handleConfirmation(ctx context.Context, telegramID int64, draft model.Draft, input Input) (Reply, error) {
	switch strings.TrimSpace(input.Text) {
	case ui.ButtonConfirmYes:
		return s.submit(ctx, telegramID, draft)
	case ui.ButtonConfirmNo:
		if err := s.drafts.Clear(ctx, telegramID); err != nil {
			return Reply{}, fmt.Errorf("decline submission: %w", err)
		}
		return Reply{Text: ui.Cancelled(), Keyboard: KeyboardMain}, nil
	default:
		// Anything else at the gate re-asks the question.
		return previewReply(draft), nil
	}
}

func (s *Service) submit(ctx context.Context, telegramID int64, draft model.Draft) (Reply, error) {
	submission := model.Submission{
		TelegramID:  telegramID,
		UserInfo:    draft.UserInfo,
		ContentType: draft.ContentType,
		Caption:     draft.Caption,
		MediaFileID: draft.MediaFileID,
		Status:      enums.StatusPending,
		SubmittedAt: s.now().UTC(),
	}

	id, err := s.store.Create(ctx, submission)
	if err != nil {
		return Reply{}, fmt.Errorf("persist submission: %w", err)
	}

	// Best-effort: a failed admin delivery never unwinds the persisted
	// submission.
	s.notifier.NotifyAdmins(s.admins.AdminIDs(), ui.AdminNewSubmission(draft.ContentType, draft.UserInfo, id))

	if err := s.drafts.Clear(ctx, telegramID); err != nil {
		return Reply{}, fmt.Errorf("clear draft after submit: %w", err)
	}

	return Reply{
		Text:     ui.Submitted(),
		Keyboard: KeyboardMain,
	}, nil
}

func previewReply(draft model.Draft) Reply {
	return Reply{
		Text:           ui.RenderPreview(draft),
		Keyboard:       KeyboardConfirm,
		PreviewFileID:  draft.MediaFileID,
		PreviewIsVideo: draft.ContentType == enums.ContentTypeVideo,
	}
}
