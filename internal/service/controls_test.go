package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"aquarium_controller/internal/config"
	"aquarium_controller/internal/logger"
	"aquarium_controller/internal/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTopics = config.Topics{
	Temperature: "tank/sensors/temperature",
	Level:       "tank/sensors/level",
	FeedCmd:     "tank/cmd/feed",
	TargetCmd:   "tank/cmd/target",
	RefillCmd:   "tank/cmd/refill",
	Feeder:      "tank/actuators/feeder",
	Heater:      "tank/actuators/heater",
	Cooler:      "tank/actuators/cooler",
	Pump:        "tank/actuators/pump",
	Alerts:      "tank/alerts",
}

// capture records every payload published on the given topics.
func capture(t *testing.T, bus transport.Bus, topics ...string) map[string][]string {
	t.Helper()
	got := make(map[string][]string)
	for _, topic := range topics {
		require.NoError(t, bus.Subscribe(topic, func(topic string, p []byte) {
			got[topic] = append(got[topic], string(p))
		}))
	}
	return got
}

func intPtr(v int) *int { return &v }

func TestControlsService_PublishesPanelPayloads(t *testing.T) {
	bus := transport.NewMemory(logger.Nop())
	got := capture(t, bus, testTopics.TargetCmd, testTopics.FeedCmd, testTopics.RefillCmd)
	svc := NewControlsService(bus, testTopics, logger.Nop())
	ctx := context.Background()

	require.NoError(t, svc.SetTarget(ctx, 25.5))
	require.NoError(t, svc.Feed(ctx, nil))
	require.NoError(t, svc.Feed(ctx, intPtr(2)))
	require.NoError(t, svc.Refill(ctx, nil))
	require.NoError(t, svc.Refill(ctx, floatPtr(100)))

	assert.Equal(t, []string{`{"target":25.5}`}, got[testTopics.TargetCmd])
	assert.Equal(t, []string{`{"feed":true}`, `{"feed":true,"seconds":2}`}, got[testTopics.FeedCmd])
	assert.Equal(t, []string{`{"refill":true}`, `{"refill":true,"target":100}`}, got[testTopics.RefillCmd])
}

func TestControlsService_Validation(t *testing.T) {
	bus := transport.NewMemory(logger.Nop())
	got := capture(t, bus, testTopics.TargetCmd, testTopics.FeedCmd, testTopics.RefillCmd)
	svc := NewControlsService(bus, testTopics, logger.Nop())
	ctx := context.Background()

	cases := []struct {
		name    string
		call    func() error
		wantErr error
	}{
		{"target too low", func() error { return svc.SetTarget(ctx, 14.9) }, ErrInvalidTarget},
		{"target too high", func() error { return svc.SetTarget(ctx, 35.1) }, ErrInvalidTarget},
		{"target NaN", func() error { return svc.SetTarget(ctx, math.NaN()) }, ErrInvalidTarget},
		{"feed zero seconds", func() error { return svc.Feed(ctx, intPtr(0)) }, ErrInvalidFeedSeconds},
		{"refill zero", func() error { return svc.Refill(ctx, floatPtr(0)) }, ErrInvalidRefillTarget},
		{"refill above full", func() error { return svc.Refill(ctx, floatPtr(101)) }, ErrInvalidRefillTarget},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.ErrorIs(t, c.call(), c.wantErr)
		})
	}
	assert.Empty(t, got, "nothing is published for rejected commands")
}

func TestControlsService_BoundaryTargetsAccepted(t *testing.T) {
	bus := transport.NewMemory(logger.Nop())
	svc := NewControlsService(bus, testTopics, logger.Nop())

	assert.NoError(t, svc.SetTarget(context.Background(), MinTargetC))
	assert.NoError(t, svc.SetTarget(context.Background(), MaxTargetC))
}

func TestControlsService_Errors(t *testing.T) {
	bus := transport.NewMemory(logger.Nop())
	svc := NewControlsService(bus, testTopics, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, svc.SetTarget(ctx, 24), context.Canceled)

	require.NoError(t, bus.Close())
	err := svc.Feed(context.Background(), nil)
	assert.True(t, errors.Is(err, transport.ErrClosed), "got %v", err)
}
