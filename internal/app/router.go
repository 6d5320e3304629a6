package app

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Ihido/inside-bot/internal/domain/enums"
	"github.com/Ihido/inside-bot/internal/infra/telegram"
	"github.com/Ihido/inside-bot/internal/repo/postgres"
	"github.com/Ihido/inside-bot/internal/services/wizard"
	"github.com/Ihido/inside-bot/internal/ui"
)

func (a *App) routeUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message != nil {
		a.routeMessage(ctx, update.Message)
	}
}

func (a *App) routeMessage(ctx context.Context, message *tgbotapi.Message) {
	if message == nil || message.From == nil {
		return
	}

	if message.IsCommand() {
		if a.routeCommand(ctx, message) {
			return
		}
		// Unknown commands fall through: mid-flow they are draft input
		// like any other text.
	}

	userID := message.From.ID
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	// The cancel button works from any step, before the active draft
	// gets a chance to swallow it as input.
	if text == ui.ButtonCancel {
		reply, err := a.wizardService.Cancel(ctx, userID)
		if err != nil {
			a.logger.Warn("cancel submission flow", zap.Error(err), zap.Int64("tg_id", userID))
			a.sendText(chatID, "Не удалось отменить отправку. Попробуйте ещё раз.")
			return
		}
		a.sendWizardReply(chatID, reply)
		return
	}

	if contentType, ok := startButtonContentType(text); ok {
		reply, err := a.wizardService.Start(ctx, userID, contentType)
		if err != nil {
			a.logger.Warn("start submission flow", zap.Error(err), zap.Int64("tg_id", userID))
			a.sendText(chatID, "Не удалось начать отправку. Попробуйте ещё раз.")
			return
		}
		a.sendWizardReply(chatID, reply)
		return
	}

	reply, handled, err := a.wizardService.HandleInput(ctx, userID, wizardInput(message))
	if err != nil {
		a.logger.Warn("handle submission input", zap.Error(err), zap.Int64("tg_id", userID))
		a.sendText(chatID, "Что-то пошло не так. Попробуйте ещё раз.")
		return
	}
	if handled {
		a.sendWizardReply(chatID, reply)
		return
	}

	switch text {
	case ui.ButtonMySubmissions:
		a.handleMySubmissions(ctx, chatID, userID)
	case ui.ButtonAbout:
		a.sendText(chatID, ui.About())
	default:
		a.logger.Debug("unhandled message", zap.Int64("tg_id", userID))
	}
}

// routeCommand reports whether the command was recognized. Unrecognized
// commands are left for the message router.
func (a *App) routeCommand(ctx context.Context, message *tgbotapi.Message) bool {
	chatID := message.Chat.ID
	userID := message.From.ID

	switch message.Command() {
	case "start":
		a.handleStart(chatID, userID)
	case "admin":
		a.handleAdminPanel(ctx, chatID, userID)
	case "submissions":
		a.handleSubmissions(ctx, chatID, userID)
	case "pending":
		a.handlePending(ctx, chatID, userID)
	case "view":
		a.handleView(ctx, chatID, userID, message.CommandArguments())
	case "approve":
		a.handleDecision(ctx, chatID, userID, message.CommandArguments(), enums.StatusApproved)
	case "reject":
		a.handleDecision(ctx, chatID, userID, message.CommandArguments(), enums.StatusRejected)
	case "stats":
		a.handleStats(ctx, chatID, userID)
	default:
		return false
	}
	return true
}

func (a *App) handleStart(chatID int64, userID int64) {
	isAdmin := a.accessService.IsAdmin(userID)
	msg := tgbotapi.NewMessage(chatID, ui.Welcome(isAdmin))
	msg.ReplyMarkup = telegram.BuildReplyKeyboard(ui.MainMenu())
	if err := a.tg.Send(msg); err != nil {
		a.logger.Error("send /start response", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}

func (a *App) handleAdminPanel(ctx context.Context, chatID int64, userID int64) {
	if !a.requireAdmin(chatID, userID) {
		return
	}

	counts, err := a.moderationService.CountByStatus(ctx)
	if err != nil {
		a.logger.Warn("load admin panel counts", zap.Error(err), zap.Int64("tg_id", userID))
		a.sendText(chatID, "Не удалось загрузить статистику.")
		return
	}
	a.sendText(chatID, ui.RenderAdminPanel(counts))
}

func (a *App) handleSubmissions(ctx context.Context, chatID int64, userID int64) {
	if !a.requireAdmin(chatID, userID) {
		return
	}

	submissions, err := a.moderationService.ListRecent(ctx)
	if err != nil {
		a.logger.Warn("list recent submissions", zap.Error(err), zap.Int64("tg_id", userID))
		a.sendText(chatID, "Не удалось загрузить отправки.")
		return
	}
	a.sendText(chatID, ui.RenderRecentList(submissions))
}

func (a *App) handlePending(ctx context.Context, chatID int64, userID int64) {
	if !a.requireAdmin(chatID, userID) {
		return
	}

	submissions, err := a.moderationService.ListPending(ctx)
	if err != nil {
		a.logger.Warn("list pending submissions", zap.Error(err), zap.Int64("tg_id", userID))
		a.sendText(chatID, "Не удалось загрузить очередь.")
		return
	}
	a.sendText(chatID, ui.RenderPendingList(submissions))
}

func (a *App) handleView(ctx context.Context, chatID int64, userID int64, args string) {
	if !a.requireAdmin(chatID, userID) {
		return
	}

	fields := strings.Fields(args)
	if len(fields) < 1 {
		a.sendText(chatID, "Использование: /view <ID>\nПример: /view 1")
		return
	}
	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		a.sendText(chatID, "ID должен быть числом")
		return
	}

	submission, err := a.moderationService.View(ctx, id)
	if errors.Is(err, postgres.ErrSubmissionNotFound) {
		a.sendText(chatID, ui.SubmissionNotFound(id))
		return
	}
	if err != nil {
		a.logger.Warn("view submission", zap.Error(err), zap.Int64("submission_id", id))
		a.sendText(chatID, "Не удалось загрузить отправку.")
		return
	}

	a.sendText(chatID, ui.RenderSubmissionDetail(submission))
	a.sendAttachedMedia(chatID, submission.ContentType, submission.MediaFileID)
}

func (a *App) handleDecision(ctx context.Context, chatID int64, userID int64, args string, decision enums.SubmissionStatus) {
	if !a.requireAdmin(chatID, userID) {
		return
	}

	id, comment, ok := parseDecisionArgs(args)
	if !ok {
		switch decision {
		case enums.StatusApproved:
			a.sendText(chatID, "Использование: /approve <ID> [комментарий]\nПример: /approve 1 Отличное фото!")
		case enums.StatusRejected:
			a.sendText(chatID, "Использование: /reject <ID> [причина]\nПример: /reject 1 Низкое качество")
		}
		return
	}

	var err error
	switch decision {
	case enums.StatusApproved:
		_, err = a.moderationService.Approve(ctx, id, comment)
	case enums.StatusRejected:
		_, err = a.moderationService.Reject(ctx, id, comment)
	}

	if errors.Is(err, postgres.ErrSubmissionNotFound) {
		a.sendText(chatID, ui.SubmissionNotFound(id))
		return
	}
	if err != nil {
		a.logger.Warn("apply moderation decision",
			zap.Error(err),
			zap.Int64("submission_id", id),
			zap.String("decision", string(decision)),
			zap.Int64("tg_id", userID),
		)
		a.sendText(chatID, "Не удалось применить решение.")
		return
	}

	switch decision {
	case enums.StatusApproved:
		a.sendText(chatID, "✅ Отправка #"+strconv.FormatInt(id, 10)+" одобрена.")
	case enums.StatusRejected:
		a.sendText(chatID, "❌ Отправка #"+strconv.FormatInt(id, 10)+" отклонена.")
	}
}

func (a *App) handleStats(ctx context.Context, chatID int64, userID int64) {
	if !a.requireAdmin(chatID, userID) {
		return
	}

	report, err := a.moderationService.Stats(ctx)
	if err != nil {
		a.logger.Warn("build stats report", zap.Error(err), zap.Int64("tg_id", userID))
		a.sendText(chatID, "Не удалось загрузить статистику.")
		return
	}
	a.sendText(chatID, ui.RenderStats(report))
}

func (a *App) handleMySubmissions(ctx context.Context, chatID int64, userID int64) {
	submissions, err := a.moderationService.ListBySubmitter(ctx, userID)
	if err != nil {
		a.logger.Warn("list own submissions", zap.Error(err), zap.Int64("tg_id", userID))
		a.sendText(chatID, "Не удалось загрузить ваши отправки.")
		return
	}
	a.sendText(chatID, ui.RenderMySubmissions(submissions))
}

func (a *App) requireAdmin(chatID int64, userID int64) bool {
	if a.accessService.IsAdmin(userID) {
		return true
	}
	a.sendText(chatID, ui.NoAdminRights())
	return false
}

func (a *App) sendWizardReply(chatID int64, reply wizard.Reply) {
	if reply.PreviewFileID != "" {
		a.sendPreviewMedia(chatID, reply)
		return
	}

	msg := tgbotapi.NewMessage(chatID, reply.Text)
	if markup, ok := replyMarkup(reply.Keyboard); ok {
		msg.ReplyMarkup = markup
	}
	if err := a.tg.Send(msg); err != nil {
		a.logger.Error("send wizard reply", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}

func (a *App) sendPreviewMedia(chatID int64, reply wizard.Reply) {
	markup, hasMarkup := replyMarkup(reply.Keyboard)

	var msg tgbotapi.Chattable
	if reply.PreviewIsVideo {
		video := tgbotapi.NewVideo(chatID, tgbotapi.FileID(reply.PreviewFileID))
		video.Caption = reply.Text
		if hasMarkup {
			video.ReplyMarkup = markup
		}
		msg = video
	} else {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(reply.PreviewFileID))
		photo.Caption = reply.Text
		if hasMarkup {
			photo.ReplyMarkup = markup
		}
		msg = photo
	}

	if err := a.tg.Send(msg); err != nil {
		a.logger.Error("send submission preview", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}

func (a *App) sendAttachedMedia(chatID int64, contentType enums.ContentType, fileID string) {
	if fileID == "" {
		return
	}

	var msg tgbotapi.Chattable
	switch contentType {
	case enums.ContentTypePhoto:
		msg = tgbotapi.NewPhoto(chatID, tgbotapi.FileID(fileID))
	case enums.ContentTypeVideo:
		msg = tgbotapi.NewVideo(chatID, tgbotapi.FileID(fileID))
	default:
		return
	}

	if err := a.tg.Send(msg); err != nil {
		a.logger.Warn("send attached media", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}

func (a *App) sendText(chatID int64, text string) {
	if err := a.tg.SendText(chatID, text); err != nil {
		a.logger.Error("send message", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}

func startButtonContentType(text string) (enums.ContentType, bool) {
	switch text {
	case ui.ButtonSendPhoto:
		return enums.ContentTypePhoto, true
	case ui.ButtonSendVideo:
		return enums.ContentTypeVideo, true
	case ui.ButtonSendText:
		return enums.ContentTypeText, true
	default:
		return "", false
	}
}

// wizardInput reduces a telegram message to the parts the flow cares
// about. For photo albums telegram sends sizes smallest first, so the
// last entry is the original resolution.
func wizardInput(message *tgbotapi.Message) wizard.Input {
	input := wizard.Input{Text: message.Text}
	if input.Text == "" {
		input.Text = message.Caption
	}
	if len(message.Photo) > 0 {
		input.PhotoFileID = message.Photo[len(message.Photo)-1].FileID
	}
	if message.Video != nil {
		input.VideoFileID = message.Video.FileID
	}
	return input
}

func parseDecisionArgs(args string) (int64, string, bool) {
	fields := strings.Fields(args)
	if len(fields) < 1 {
		return 0, "", false
	}
	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, "", false
	}
	comment := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(args), fields[0]))
	return id, comment, true
}

func replyMarkup(keyboard wizard.Keyboard) (interface{}, bool) {
	switch keyboard {
	case wizard.KeyboardMain:
		return telegram.BuildReplyKeyboard(ui.MainMenu()), true
	case wizard.KeyboardCancel:
		return telegram.BuildReplyKeyboard(ui.CancelMenu()), true
	case wizard.KeyboardConfirm:
		return telegram.BuildOneTimeKeyboard(ui.ConfirmationMenu()), true
	default:
		return nil, false
	}
}
