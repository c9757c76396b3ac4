package memory

import (
	"time"

	"meetupticket/internal/domain"
)

// DemoEventID is the id of the event created by SeedDemoEvent.
const DemoEventID = "demo-event"

// SeedDemoEvent stores a single active event so the service is usable without
// an external database.
func (s *Store) SeedDemoEvent(now time.Time) {
	s.Put(domain.CollectionEvents, DemoEventID, map[string]any{
		"title":                  "Meetup",
		"description":            "Charlas sobre programación, ciberseguridad, mobile y servers.",
		"date":                   now.Add(7 * 24 * time.Hour).Truncate(time.Hour),
		"active":                 true,
		"participantLimit":       nil,
		"registeredParticipants": 0,
		"agenda": []any{
			map[string]any{"time": "18:00", "topic": "Acreditación"},
			map[string]any{"time": "18:30", "topic": "Charla principal"},
			map[string]any{"time": "19:30", "topic": "Networking"},
		},
	})
}
