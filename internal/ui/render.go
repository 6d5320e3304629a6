package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Ihido/inside-bot/internal/domain/enums"
	"github.com/Ihido/inside-bot/internal/domain/model"
)

// Glyph and label mappings cover every value of the closed enums.
// Unknown values are rejected at the repo boundary; if one slips
// through anyway it is rendered as-is rather than masked by a default
// glyph.

func StatusEmoji(status enums.SubmissionStatus) string {
	switch status {
	case enums.StatusPending:
		return "⏳"
	case enums.StatusApproved:
		return "✅"
	case enums.StatusRejected:
		return "❌"
	default:
		return string(status)
	}
}

func StatusLabel(status enums.SubmissionStatus) string {
	switch status {
	case enums.StatusPending:
		return "⏳ Ожидает"
	case enums.StatusApproved:
		return "✅ Одобрено"
	case enums.StatusRejected:
		return "❌ Отклонено"
	default:
		return string(status)
	}
}

func ContentTypeEmoji(contentType enums.ContentType) string {
	switch contentType {
	case enums.ContentTypePhoto:
		return "📸"
	case enums.ContentTypeVideo:
		return "🎥"
	case enums.ContentTypeText:
		return "📝"
	default:
		return string(contentType)
	}
}

func ContentTypeLabel(contentType enums.ContentType) string {
	switch contentType {
	case enums.ContentTypePhoto:
		return "фото"
	case enums.ContentTypeVideo:
		return "видео"
	case enums.ContentTypeText:
		return "текст"
	default:
		return string(contentType)
	}
}

// ShortUserInfo is the list-view abbreviation: the part before the first
// comma, or a 20-rune prefix.
func ShortUserInfo(userInfo string) string {
	if idx := strings.Index(userInfo, ","); idx >= 0 {
		return userInfo[:idx]
	}
	if utf8.RuneCountInString(userInfo) > 20 {
		runes := []rune(userInfo)
		return string(runes[:20])
	}
	return userInfo
}

func RenderSubmissionLine(submission model.Submission) string {
	return fmt.Sprintf(
		"%s%s #%d - %s (%s)",
		StatusEmoji(submission.Status),
		ContentTypeEmoji(submission.ContentType),
		submission.ID,
		ShortUserInfo(submission.UserInfo),
		submission.SubmittedAt.Format("02.01 15:04"),
	)
}

func RenderRecentList(submissions []model.Submission) string {
	if len(submissions) == 0 {
		return "📭 Отправок пока нет."
	}

	lines := make([]string, 0, len(submissions)+1)
	lines = append(lines, fmt.Sprintf("📋 Последние %d отправок:\n", len(submissions)))
	for _, submission := range submissions {
		lines = append(lines, RenderSubmissionLine(submission))
	}
	return strings.Join(lines, "\n")
}

func RenderPendingList(submissions []model.Submission) string {
	if len(submissions) == 0 {
		return "✅ Нет отправок ожидающих модерации."
	}

	lines := make([]string, 0, len(submissions)+2)
	lines = append(lines, fmt.Sprintf("⏳ Ожидают модерации (%d):\n", len(submissions)))
	for _, submission := range submissions {
		lines = append(lines, fmt.Sprintf(
			"%s #%d - %s (%s)",
			ContentTypeEmoji(submission.ContentType),
			submission.ID,
			ShortUserInfo(submission.UserInfo),
			submission.SubmittedAt.Format("02.01 15:04"),
		))
	}
	lines = append(lines, "\nДля просмотра: /view <ID>")
	return strings.Join(lines, "\n")
}

func RenderSubmissionDetail(submission model.Submission) string {
	lines := []string{
		fmt.Sprintf("📋 Отправка #%d", submission.ID),
		fmt.Sprintf("📅 Дата: %s", submission.SubmittedAt.Format("02.01.2006 15:04")),
		fmt.Sprintf("👤 Пользователь: %s", submission.UserInfo),
		fmt.Sprintf("📄 Тип: %s", ContentTypeLabel(submission.ContentType)),
		fmt.Sprintf("📝 Описание: %s", defaultText(submission.Caption, "Нет описания")),
		fmt.Sprintf("📊 Статус: %s", StatusLabel(submission.Status)),
		fmt.Sprintf("🆔 Telegram ID: %d", submission.TelegramID),
	}
	if submission.AdminComment != "" {
		lines = append(lines, "💬 Комментарий админа: "+submission.AdminComment)
	}
	return strings.Join(lines, "\n")
}

func RenderAdminPanel(counts map[enums.SubmissionStatus]int64) string {
	var total int64
	for _, count := range counts {
		total += count
	}

	return fmt.Sprintf(
		"👨‍💼 Панель администратора\n\n"+
			"📊 Статистика:\n"+
			"• Всего отправок: %d\n"+
			"• ⏳ Ожидают: %d\n"+
			"• ✅ Одобрено: %d\n"+
			"• ❌ Отклонено: %d\n\n"+
			"📋 Команды:\n"+
			"/pending - ожидающие модерации\n"+
			"/submissions - все отправки\n"+
			"/view <ID> - просмотр отправки\n"+
			"/approve <ID> - одобрить\n"+
			"/reject <ID> - отклонить\n"+
			"/stats - статистика",
		total,
		counts[enums.StatusPending],
		counts[enums.StatusApproved],
		counts[enums.StatusRejected],
	)
}

func RenderStats(report model.StatsReport) string {
	builder := strings.Builder{}
	builder.WriteString("📈 Детальная статистика:\n\n")
	builder.WriteString("📄 По типам контента:\n")
	for _, contentType := range []enums.ContentType{enums.ContentTypePhoto, enums.ContentTypeVideo, enums.ContentTypeText} {
		builder.WriteString(fmt.Sprintf(
			"  %s %s: %d\n",
			ContentTypeEmoji(contentType),
			contentType,
			report.ByContentType[contentType],
		))
	}
	builder.WriteString(fmt.Sprintf("\n📅 За последние 7 дней: %d", report.LastWeek))
	return builder.String()
}

func RenderMySubmissions(submissions []model.Submission) string {
	if len(submissions) == 0 {
		return "📭 У вас пока нет отправок."
	}

	lines := make([]string, 0, len(submissions)+1)
	lines = append(lines, "📋 Ваши последние отправки:\n")
	for _, submission := range submissions {
		lines = append(lines, fmt.Sprintf(
			"%s%s #%d - %s (%s)",
			StatusEmoji(submission.Status),
			ContentTypeEmoji(submission.ContentType),
			submission.ID,
			submission.SubmittedAt.Format("02.01.2006"),
			StatusLabel(submission.Status),
		))
	}
	return strings.Join(lines, "\n")
}

func RenderPreview(draft model.Draft) string {
	return fmt.Sprintf(
		"%s Превью отправки:\n\n👤 О вас:\n%s\n\n📝 Описание:\n%s\n\n✅ Все верно? Отправляем на модерацию?",
		ContentTypeEmoji(draft.ContentType),
		draft.UserInfo,
		defaultText(draft.Caption, "Нет описания"),
	)
}

func defaultText(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
