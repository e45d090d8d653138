package service

import (
	"errors"
	"testing"
	"time"

	"aquarium_controller/internal/logger"
	"aquarium_controller/internal/models"
	"aquarium_controller/internal/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecorder(t *testing.T) (*RecorderService, *fakeReadingRepo, *fakeAlertRepo, transport.Bus) {
	t.Helper()
	readings := &fakeReadingRepo{}
	alerts := &fakeAlertRepo{}
	rec := NewRecorderService(readings, alerts, testTopics, logger.Nop())
	rec.now = func() time.Time { return time.Date(2025, 7, 1, 10, 0, 0, 0, time.FixedZone("UTC+2", 2*3600)) }

	bus := transport.NewMemory(logger.Nop())
	require.NoError(t, rec.Attach(bus))
	return rec, readings, alerts, bus
}

func TestRecorder_StoresReadings(t *testing.T) {
	_, readings, _, bus := newTestRecorder(t)

	require.NoError(t, bus.Publish(testTopics.Temperature, []byte(`{"temp": 24.3, "unit": "C"}`)))
	require.NoError(t, bus.Publish(testTopics.Level, []byte(`{"level": "71.5"}`)))

	require.Len(t, readings.appended, 2)
	assert.Equal(t, models.KindTemperature, readings.appended[0].Kind)
	assert.Equal(t, 24.3, readings.appended[0].Value)
	assert.Equal(t, models.KindWaterLevel, readings.appended[1].Kind)
	assert.Equal(t, 71.5, readings.appended[1].Value)
	assert.Equal(t, time.UTC, readings.appended[0].RecordedAt.Location())
	assert.Equal(t, 8, readings.appended[0].RecordedAt.Hour())
}

func TestRecorder_SkipsMalformedReadings(t *testing.T) {
	_, readings, _, bus := newTestRecorder(t)

	for _, p := range []string{`not json`, `{}`, `{"temp": "warm"}`, `[1,2]`} {
		require.NoError(t, bus.Publish(testTopics.Temperature, []byte(p)))
	}
	require.NoError(t, bus.Publish(testTopics.Level, []byte(`{"lvl": 3}`)))

	assert.Zero(t, readings.appendCalls)
}

func TestRecorder_StoresAlerts(t *testing.T) {
	_, _, alerts, bus := newTestRecorder(t)

	require.NoError(t, bus.Publish(testTopics.Alerts, []byte(`{"level":"CRITICAL","msg":"CRITICAL: Water level at 15.0%!"}`)))
	require.NoError(t, bus.Publish(testTopics.Alerts, []byte(`{"level":"info","msg":"Feeder ON for 3s"}`)))

	require.Len(t, alerts.appended, 2)
	assert.Equal(t, models.AlertCritical, alerts.appended[0].Level)
	assert.Equal(t, "CRITICAL: Water level at 15.0%!", alerts.appended[0].Message)
	assert.Equal(t, models.AlertInfo, alerts.appended[1].Level)
}

func TestRecorder_SkipsMalformedAlerts(t *testing.T) {
	_, _, alerts, bus := newTestRecorder(t)

	for _, p := range []string{`garbage`, `{"level":"LOUD","msg":"x"}`, `{"level":"INFO"}`, `{"msg":"no level"}`} {
		require.NoError(t, bus.Publish(testTopics.Alerts, []byte(p)))
	}
	assert.Empty(t, alerts.appended)
}

func TestRecorder_StoreFailureIsNotFatal(t *testing.T) {
	_, readings, _, bus := newTestRecorder(t)
	readings.err = errors.New("disk full")

	require.NoError(t, bus.Publish(testTopics.Temperature, []byte(`{"temp": 24}`)))
	require.NoError(t, bus.Publish(testTopics.Temperature, []byte(`{"temp": 25}`)))

	assert.Equal(t, 2, readings.appendCalls)
}

func TestRecorder_AttachFailsOnClosedBus(t *testing.T) {
	rec := NewRecorderService(&fakeReadingRepo{}, &fakeAlertRepo{}, testTopics, logger.Nop())
	bus := transport.NewMemory(logger.Nop())
	require.NoError(t, bus.Close())

	assert.ErrorIs(t, rec.Attach(bus), transport.ErrClosed)
}
