package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"})
	require.NotNil(t, p)
	assert.NotNil(t, p.writer)
	assert.NoError(t, p.Close())
}

func TestProducer_CheckConnectionWithoutBrokers(t *testing.T) {
	p := &Producer{}
	assert.Error(t, p.CheckConnection(context.Background()))
}

func TestConsumer_CloseNil(t *testing.T) {
	var c *Consumer
	assert.NoError(t, c.Close())
}

func TestNotification_JSON(t *testing.T) {
	data, err := json.Marshal(Notification{Type: EventPasswordRecovery, Email: "a@b.c", Subject: "s", Body: "b"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"password_recovery","email":"a@b.c","subject":"s","body":"b"}`, string(data))
}

func TestDecodeNotification(t *testing.T) {
	n, ok := decodeNotification([]byte(`{"type":"account_created","email":"x@y.z","subject":"Welcome"}`))
	assert.True(t, ok)
	assert.Equal(t, "x@y.z", n.Email)
	assert.Equal(t, EventAccountCreated, n.Type)

	_, ok = decodeNotification([]byte(`not json`))
	assert.False(t, ok)

	_, ok = decodeNotification([]byte(`{"type":"account_created"}`))
	assert.False(t, ok)
}

func TestEncodeMessage(t *testing.T) {
	msg, err := encodeMessage("safarpk.bookings", "b-1", BookingEvent{Type: EventBookingStatusChanged, BookingID: "b-1"})
	require.NoError(t, err)
	assert.Equal(t, "safarpk.bookings", msg.Topic)
	assert.Equal(t, []byte("b-1"), msg.Key)
	assert.Contains(t, string(msg.Value), `"booking_id":"b-1"`)

	_, err = encodeMessage("t", "k", make(chan int))
	assert.Error(t, err)
}
