package access

// Service answers the only authorization question this bot has: is the
// sender on the configured admin allowlist. The list is static for the
// lifetime of the process.
type Service struct {
	ordered []int64
	byID    map[int64]struct{}
}

func NewService(adminIDs []int64) *Service {
	byID := make(map[int64]struct{}, len(adminIDs))
	ordered := make([]int64, 0, len(adminIDs))
	for _, id := range adminIDs {
		if _, seen := byID[id]; seen {
			continue
		}
		byID[id] = struct{}{}
		ordered = append(ordered, id)
	}
	return &Service{ordered: ordered, byID: byID}
}

func (s *Service) IsAdmin(telegramID int64) bool {
	_, ok := s.byID[telegramID]
	return ok
}

// AdminIDs returns the allowlist in configuration order.
func (s *Service) AdminIDs() []int64 {
	ids := make([]int64, len(s.ordered))
	copy(ids, s.ordered)
	return ids
}
