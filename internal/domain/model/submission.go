package model

import (
	"time"

	"github.com/Ihido/inside-bot/internal/domain/enums"
)

type Submission struct {
	ID           int64
	TelegramID   int64
	UserInfo     string
	ContentType  enums.ContentType
	Caption      string
	MediaFileID  string
	Status       enums.SubmissionStatus
	SubmittedAt  time.Time
	AdminComment string
}
