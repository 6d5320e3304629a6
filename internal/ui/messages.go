package ui

import (
	"fmt"

	"github.com/Ihido/inside-bot/internal/domain/enums"
)

const InfoTemplate = "Пример: Флот 3, БПО Ноябрьск, июнь 2025, мастер КИПиА Иванов И.И."

func Welcome(isAdmin bool) string {
	text := "👋 Добро пожаловать в проект 'Компания изнутри'!\n\n" +
		"Здесь мы собираем фото, видео и истории от сотрудников.\n" +
		"Выберите тип контента который хотите отправить."
	if isAdmin {
		text += "\n\n👨‍💼 Вы администратор"
	}
	return text
}

func About() string {
	return "🏢 Проект 'Компания изнутри'\n\n" +
		"Цель проекта — показать реальную работу нашей компании через глаза сотрудников.\n\n" +
		"Что можно отправлять:\n" +
		"📸 Фото с рабочих мест\n" +
		"🎥 Короткие видео процессов\n" +
		"📝 Истории и отзывы о работе\n\n" +
		"Как это работает:\n" +
		"1. Выбираете тип контента\n" +
		"2. Рассказываете о себе\n" +
		"3. Добавляете описание\n" +
		"4. Отправляете на модерацию\n\n" +
		"Лучшие материалы будут опубликованы!"
}

func UserInfoPrompt(contentType enums.ContentType) string {
	return fmt.Sprintf(
		"📋 Прежде чем отправить %s, давайте познакомимся!\n\nРасскажите о себе в формате:\n%s",
		ContentTypeLabel(contentType),
		InfoTemplate,
	)
}

func UserInfoTooShort() string {
	return "❌ Информация слишком короткая. Пожалуйста, расскажите подробнее."
}

func CaptionPrompt() string {
	return "📝 Теперь добавьте описание:\n" +
		"• Что изображено/о чем текст?\n" +
		"• Почему это важно показать?"
}

func MediaPrompt(contentType enums.ContentType) string {
	return fmt.Sprintf("📸 Теперь отправьте %s", ContentTypeLabel(contentType))
}

func MediaMissing() string {
	return "❌ Вы выбрали отправку фото/видео, но не прикрепили файл.\n\n" +
		"Пожалуйста, отправьте файл или отмените отправку."
}

func Submitted() string {
	return "✅ Отправлено на модерацию! Мы уведомим вас о результате."
}

func Cancelled() string {
	return "❌ Отправка отменена."
}

func NoAdminRights() string {
	return "У вас нет прав администратора."
}

func AdminNewSubmission(contentType enums.ContentType, userInfo string, id int64) string {
	return fmt.Sprintf(
		"🆕 Новый %s от сотрудника:\n👤 %s\n📋 ID: %d",
		ContentTypeLabel(contentType),
		userInfo,
		id,
	)
}

func SubmitterApproved(id int64, comment string) string {
	text := fmt.Sprintf("✅ Ваша отправка #%d одобрена!", id)
	if comment != "" {
		text += "\n💬 Комментарий: " + comment
	}
	return text
}

func SubmitterRejected(id int64, reason string) string {
	return fmt.Sprintf("❌ Ваша отправка #%d отклонена.\n📋 Причина: %s", id, reason)
}

func SubmissionNotFound(id int64) string {
	return fmt.Sprintf("❌ Отправка #%d не найдена.", id)
}
