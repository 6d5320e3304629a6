package model

import "github.com/Ihido/inside-bot/internal/domain/enums"

// Draft is the per-user wizard state. It lives in the conversation
// tracker only: created on a start button, dropped on submit or cancel.
type Draft struct {
	Step        enums.Step        `json:"step"`
	ContentType enums.ContentType `json:"content_type"`
	UserInfo    string            `json:"user_info,omitempty"`
	Caption     string            `json:"caption,omitempty"`
	MediaFileID string            `json:"media_file_id,omitempty"`
}
