package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

func BuildReplyKeyboard(rows [][]string) tgbotapi.ReplyKeyboardMarkup {
	keyboardRows := make([][]tgbotapi.KeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, title := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(title))
		}
		keyboardRows = append(keyboardRows, buttons)
	}

	keyboard := tgbotapi.NewReplyKeyboard(keyboardRows...)
	keyboard.ResizeKeyboard = true
	keyboard.OneTimeKeyboard = false
	return keyboard
}

func BuildOneTimeKeyboard(rows [][]string) tgbotapi.ReplyKeyboardMarkup {
	keyboard := BuildReplyKeyboard(rows)
	keyboard.OneTimeKeyboard = true
	return keyboard
}
