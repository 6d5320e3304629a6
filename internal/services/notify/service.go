package notify

import (
	"go.uber.org/zap"
)

// Sender is the outbound side of the chat transport.
type Sender interface {
	SendText(chatID int64, text string) error
}

// Service delivers outcome messages on a best-effort basis. Every
// delivery is independent; failures are logged and swallowed so that a
// blocked or vanished recipient never aborts the triggering operation.
type Service struct {
	sender Sender
	logger *zap.Logger
}

func NewService(sender Sender, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sender: sender, logger: logger}
}

func (s *Service) NotifyUser(telegramID int64, text string) {
	if s.sender == nil {
		return
	}
	if err := s.sender.SendText(telegramID, text); err != nil {
		s.logger.Warn("notify user", zap.Error(err), zap.Int64("tg_id", telegramID))
	}
}

func (s *Service) NotifyAdmins(adminIDs []int64, text string) {
	for _, adminID := range adminIDs {
		s.NotifyUser(adminID, text)
	}
}
