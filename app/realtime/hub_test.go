package realtime

import "testing"

func TestPublishWithoutSubscribers(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	// Must not block or panic when nobody is listening.
	hub.Publish(EventScoreboardUpdate, nil)
	hub.Publish(EventResultApproved, map[string]interface{}{"result_id": "r1"})
}

func TestNopPublisherSatisfiesInterface(t *testing.T) {
	t.Parallel()

	var pub Publisher = NopPublisher{}
	pub.Publish(EventResultSubmitted, nil)
}

func TestPublishSkipsUnmarshalablePayload(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	// Channels cannot be marshaled to JSON; the event is dropped, not fatal.
	hub.Publish(EventResultSubmitted, make(chan int))
}
