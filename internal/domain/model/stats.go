package model

import "github.com/Ihido/inside-bot/internal/domain/enums"

type StatsReport struct {
	ByStatus      map[enums.SubmissionStatus]int64
	ByContentType map[enums.ContentType]int64
	LastWeek      int64
}

func (r StatsReport) Total() int64 {
	var total int64
	for _, count := range r.ByStatus {
		total += count
	}
	return total
}
