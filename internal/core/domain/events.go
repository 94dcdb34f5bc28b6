package domain

// EventType identifies a real-time event broadcast to dashboard clients.
type EventType string

const (
	// EventDatasetRefreshed fires after a successful ingestion swapped in a
	// new canonical dataset.
	EventDatasetRefreshed EventType = "dataset.refreshed"
	// EventSettingsUpdated fires after the date range, a salary, or the
	// growth projection changed.
	EventSettingsUpdated EventType = "settings.updated"
)

// Event is a notification pushed to connected dashboard clients so they
// re-fetch derived views. It carries no computed data itself.
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}
