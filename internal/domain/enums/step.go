package enums

// Step is the wizard position of a live draft. The flow is linear:
// user info, caption, media (photo/video only), confirmation.
type Step string

const (
	StepUserInfo     Step = "USER_INFO"
	StepCaption      Step = "CAPTION"
	StepMedia        Step = "MEDIA"
	StepConfirmation Step = "CONFIRMATION"
)
