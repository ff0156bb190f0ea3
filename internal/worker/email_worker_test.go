package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Malformed or incomplete payloads must be dropped, not retried: re-enqueuing
// them would only cycle through the pool into the DLQ.
func TestEmailWorkerDropsMalformedPayload(t *testing.T) {
	w := NewEmailWorker(nil, nil)
	err := w.Process(context.Background(), json.RawMessage(`{not json`))
	assert.NoError(t, err)
}

func TestEmailWorkerDropsEmptyRecipient(t *testing.T) {
	w := NewEmailWorker(nil, nil)
	payload, _ := json.Marshal(EmailJobPayload{Subject: "hola"})
	err := w.Process(context.Background(), payload)
	assert.NoError(t, err)
}
