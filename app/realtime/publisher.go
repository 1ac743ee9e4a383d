package realtime

// Event names published by the result workflow.
const (
	EventResultSubmitted  = "result_submitted"
	EventResultApproved   = "result_approved"
	EventResultRejected   = "result_rejected"
	EventResultPublished  = "result_published"
	EventScoreboardUpdate = "scoreboard_updated"
)

// Publisher pushes an event to subscribers. Publishing is fire-and-forget:
// delivery failures never roll back the data mutation that triggered the
// event.
type Publisher interface {
	Publish(event string, payload interface{})
}

// NopPublisher discards all events. Used by CLI tools and tests.
type NopPublisher struct{}

func (NopPublisher) Publish(event string, payload interface{}) {}
