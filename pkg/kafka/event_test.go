package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogPayload struct {
	Source       string `json:"source"`
	ProductCount int    `json:"product_count"`
}

func TestNewEvent(t *testing.T) {
	evt, err := NewEvent("catalog.updated", "catalog", "catalog", "catalog-exporter", catalogPayload{
		Source:       "s3://exports/catalog.csv",
		ProductCount: 120000,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, evt.EventID)
	assert.Equal(t, "catalog.updated", evt.EventType)
	assert.Equal(t, "catalog-exporter", evt.Source)
	assert.Equal(t, 1, evt.Version)
	assert.False(t, evt.Timestamp.IsZero())
}

func TestEventRoundTrip(t *testing.T) {
	evt, err := NewEvent("catalog.updated", "catalog", "catalog", "exporter", catalogPayload{ProductCount: 5})
	require.NoError(t, err)

	data, err := evt.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEvent(data)
	require.NoError(t, err)
	assert.Equal(t, evt.EventID, decoded.EventID)

	var payload catalogPayload
	require.NoError(t, decoded.UnmarshalData(&payload))
	assert.Equal(t, 5, payload.ProductCount)
}

func TestUnmarshalEventInvalid(t *testing.T) {
	_, err := UnmarshalEvent([]byte("not json"))
	assert.Error(t, err)
}
