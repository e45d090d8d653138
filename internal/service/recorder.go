package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"aquarium_controller/internal/config"
	"aquarium_controller/internal/decoder"
	"aquarium_controller/internal/logger"
	"aquarium_controller/internal/models"
	"aquarium_controller/internal/repository"
	"aquarium_controller/internal/transport"
)

const storeTimeout = 2 * time.Second

// RecorderService stores sensor readings and alerts seen on the bus.
// Malformed payloads are skipped; store failures are logged only.
type RecorderService struct {
	readings repository.ReadingRepo
	alerts   repository.AlertRepo
	topics   config.Topics
	dec      *decoder.Decoder
	log      *logger.Logger
	now      func() time.Time
}

func NewRecorderService(readings repository.ReadingRepo, alerts repository.AlertRepo, topics config.Topics, log *logger.Logger) *RecorderService {
	return &RecorderService{
		readings: readings,
		alerts:   alerts,
		topics:   topics,
		dec:      decoder.New(true),
		log:      log.Named("recorder"),
		now:      time.Now,
	}
}

// Attach subscribes to the temperature, level and alert topics.
func (r *RecorderService) Attach(bus transport.Bus) error {
	subs := []struct {
		topic string
		h     transport.Handler
	}{
		{r.topics.Temperature, r.onReading(models.SubjectTemperature)},
		{r.topics.Level, r.onReading(models.SubjectLevel)},
		{r.topics.Alerts, r.onAlert},
	}
	for _, s := range subs {
		if err := bus.Subscribe(s.topic, s.h); err != nil {
			return fmt.Errorf("recorder subscribe %s: %w", s.topic, err)
		}
	}
	r.log.Infow("recorder_attached", "temperature", r.topics.Temperature, "level", r.topics.Level, "alerts", r.topics.Alerts)
	return nil
}

func (r *RecorderService) onReading(subject models.Subject) transport.Handler {
	return func(topic string, payload []byte) {
		rec := models.ReadingRecord{RecordedAt: r.now().UTC()}
		switch m := r.dec.Decode(subject, payload).(type) {
		case models.TemperatureReading:
			rec.Kind, rec.Value = models.KindTemperature, m.Celsius
		case models.LevelReading:
			rec.Kind, rec.Value = models.KindWaterLevel, m.Percent
		case models.Invalid:
			r.log.Warnw("reading_skipped", "topic", topic, "reason", m.Reason)
			return
		default:
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := r.readings.Append(ctx, rec); err != nil {
			r.log.Errorw("reading_store_failed", "topic", topic, "kind", rec.Kind, "err", err)
			return
		}
		r.log.Debugw("reading_stored", "kind", rec.Kind, "value", rec.Value)
	}
}

func (r *RecorderService) onAlert(topic string, payload []byte) {
	var a models.Alert
	if err := json.Unmarshal(payload, &a); err != nil {
		r.log.Warnw("alert_skipped", "topic", topic, "reason", "malformed payload", "err", err)
		return
	}
	a.Level = models.AlertLevel(strings.ToUpper(strings.TrimSpace(string(a.Level))))
	if !a.Level.Valid() || strings.TrimSpace(a.Message) == "" {
		r.log.Warnw("alert_skipped", "topic", topic, "reason", "missing level or msg")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	rec := models.AlertRecord{RaisedAt: r.now().UTC(), Level: a.Level, Message: a.Message}
	if err := r.alerts.Append(ctx, rec); err != nil {
		r.log.Errorw("alert_store_failed", "level", a.Level, "err", err)
		return
	}
	r.log.Debugw("alert_stored", "level", a.Level, "msg", a.Message)
}
