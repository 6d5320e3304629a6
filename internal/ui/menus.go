package ui

// Button titles double as routing keys: Telegram reply keyboards send
// the title back as plain message text.
const (
	ButtonSendPhoto     = "📸 Отправить фото"
	ButtonSendVideo     = "🎥 Отправить видео"
	ButtonSendText      = "📝 Отправить текст"
	ButtonMySubmissions = "📊 Мои отправки"
	ButtonAbout         = "ℹ️ О проекте"
	ButtonCancel        = "🚫 Отменить отправку"
	ButtonConfirmYes    = "✅ Да, отправить"
	ButtonConfirmNo     = "❌ Нет, отменить"
)

func MainMenu() [][]string {
	return [][]string{
		{ButtonSendPhoto},
		{ButtonSendVideo},
		{ButtonSendText},
		{ButtonMySubmissions},
		{ButtonAbout},
	}
}

func ConfirmationMenu() [][]string {
	return [][]string{
		{ButtonConfirmYes, ButtonConfirmNo},
	}
}

func CancelMenu() [][]string {
	return [][]string{
		{ButtonCancel},
	}
}
