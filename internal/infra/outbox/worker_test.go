package outbox

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicForGroupsEventsByAggregate(t *testing.T) {
	w := &Worker{}
	assert.Equal(t, "booking.events.v1", w.topicFor("booking.confirmed"))
	assert.Equal(t, "booking.events.v1", w.topicFor("booking.requested"))
	assert.Equal(t, "review.events.v1", w.topicFor("review.submitted"))
	assert.Equal(t, "ping.events.v1", w.topicFor("ping"))

	w.TopicPrefix = "staging."
	assert.Equal(t, "staging.booking.events.v1", w.topicFor("booking.confirmed"))
}

func TestFormatPayloadBuildsCloudEvent(t *testing.T) {
	w := &Worker{}
	occurred := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	doc := &EventDocument{
		ID:         "evt-1",
		Name:       "booking.confirmed",
		Payload:    []byte(`{"booking_id":"bk-1"}`),
		OccurredAt: occurred,
		Aggregate:  "bk-1",
		Headers:    map[string]string{"traceparent": "00-abc-def-01"},
	}

	payload, headers, err := w.formatPayload(doc)
	require.NoError(t, err)
	assert.Equal(t, "application/cloudevents+json", headers["content-type"])
	assert.Equal(t, "00-abc-def-01", headers["traceparent"])

	var evt map[string]any
	require.NoError(t, json.Unmarshal(payload, &evt))
	assert.Equal(t, "1.0", evt["specversion"])
	assert.Equal(t, "booking.confirmed.v1", evt["type"])
	assert.Equal(t, "app://campusrent", evt["source"])
	assert.Equal(t, "application/json", evt["datacontenttype"])
	assert.Equal(t, "00-abc-def-01", evt["traceparent"])
	assert.NotEmpty(t, evt["id"])

	data, ok := evt["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "bk-1", data["booking_id"])
}

func TestFormatPayloadRejectsMalformedPayload(t *testing.T) {
	w := &Worker{}
	doc := &EventDocument{Name: "booking.confirmed", Payload: []byte("not-json")}
	_, _, err := w.formatPayload(doc)
	require.Error(t, err)
}

func TestWorkerIDStable(t *testing.T) {
	w := &Worker{}
	first := w.workerID()
	require.NotEmpty(t, first)
	assert.Equal(t, first, w.workerID())
}
