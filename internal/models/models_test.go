package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJobRetryability(t *testing.T) {
	tests := []struct {
		name      string
		job       Job
		retryable bool
		terminal  bool
	}{
		{
			name:      "pending job",
			job:       Job{Status: JobStatusPending, MaxRetries: 3},
			retryable: false,
			terminal:  false,
		},
		{
			name:      "failed with retries left",
			job:       Job{Status: JobStatusFailed, RetryCount: 1, MaxRetries: 3},
			retryable: true,
			terminal:  false,
		},
		{
			name:      "failed with retries exhausted",
			job:       Job{Status: JobStatusFailed, RetryCount: 3, MaxRetries: 3},
			retryable: false,
			terminal:  true,
		},
		{
			name:      "permanently failed",
			job:       Job{Status: JobStatusPermanentlyFailed, RetryCount: 1, MaxRetries: 3},
			retryable: false,
			terminal:  true,
		},
		{
			name:      "completed",
			job:       Job{Status: JobStatusCompleted},
			retryable: false,
			terminal:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, tt.job.IsRetryable())
			assert.Equal(t, tt.terminal, tt.job.IsTerminal())
		})
	}
}

func TestJobPayloadAccessors(t *testing.T) {
	job := Job{Payload: JobPayload{
		"recording_id": float64(42), // as decoded from JSON
		"language":     "de",
		"include_link": true,
	}}

	id, ok := job.GetPayloadUint("recording_id")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	lang, ok := job.GetPayloadString("language")
	assert.True(t, ok)
	assert.Equal(t, "de", lang)

	link, ok := job.GetPayloadBool("include_link")
	assert.True(t, ok)
	assert.True(t, link)

	_, ok = job.GetPayloadUint("missing")
	assert.False(t, ok)
}

func TestDeliveryTerminal(t *testing.T) {
	assert.False(t, (&EmailDelivery{Status: DeliveryStatusPending}).IsTerminal())
	assert.True(t, (&EmailDelivery{Status: DeliveryStatusSent}).IsTerminal())
	assert.True(t, (&EmailDelivery{Status: DeliveryStatusFailed}).IsTerminal())
}

func TestListenerSessionTerminal(t *testing.T) {
	now := time.Now()
	active := &ListenerSession{Status: ListenerStatusJoining, JoinAt: &now}
	assert.False(t, active.IsTerminal())

	for _, st := range []ListenerStatus{ListenerStatusLeft, ListenerStatusCancelled, ListenerStatusFailed} {
		assert.True(t, (&ListenerSession{Status: st}).IsTerminal(), string(st))
	}
}
