package control

import (
	"aquarium_controller/internal/models"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "aquarium"

// Metrics holds the control core's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	messages      *prometheus.CounterVec
	invalid       *prometheus.CounterVec
	commands      *prometheus.CounterVec
	alerts        *prometheus.CounterVec
	publishErrors *prometheus.CounterVec
	targetTemp    prometheus.Gauge
	pumpRunning   prometheus.Gauge
	manualRefill  prometheus.Gauge
	waterLevel    prometheus.Gauge
	waterTemp     prometheus.Gauge
	queueDepth    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "control", Name: "messages_total",
			Help: "Inbound messages handled, by subject.",
		}, []string{"subject"}),
		invalid: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "control", Name: "invalid_messages_total",
			Help: "Inbound messages rejected by strict decoding, by subject.",
		}, []string{"subject"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "control", Name: "commands_total",
			Help: "Actuator commands published, by actuator and status.",
		}, []string{"actuator", "status"}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "control", Name: "alerts_total",
			Help: "Operator alerts published, by level.",
		}, []string{"level"}),
		publishErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "control", Name: "publish_errors_total",
			Help: "Failed publishes, by topic.",
		}, []string{"topic"}),
		targetTemp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace, Subsystem: "control", Name: "target_temperature_celsius",
			Help: "Current thermostat set-point.",
		}),
		pumpRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace, Subsystem: "control", Name: "pump_running",
			Help: "1 when the pump was last commanded on.",
		}),
		manualRefill: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace, Subsystem: "control", Name: "manual_refill_active",
			Help: "1 while a manual refill is in progress.",
		}),
		waterLevel: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace, Subsystem: "sensor", Name: "water_level_percent",
			Help: "Last observed water level.",
		}),
		waterTemp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace, Subsystem: "sensor", Name: "water_temperature_celsius",
			Help: "Last observed water temperature.",
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace, Subsystem: "control", Name: "queue_depth",
			Help: "Inbound messages waiting to be handled.",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.messages, m.invalid, m.commands, m.alerts, m.publishErrors,
		m.targetTemp, m.pumpRunning, m.manualRefill, m.waterLevel, m.waterTemp, m.queueDepth,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) message(s models.Subject) {
	if m == nil {
		return
	}
	m.messages.WithLabelValues(s.String()).Inc()
}

func (m *Metrics) invalidMessage(s models.Subject) {
	if m == nil {
		return
	}
	m.invalid.WithLabelValues(s.String()).Inc()
}

func (m *Metrics) command(a models.Actuator, status string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(string(a), status).Inc()
}

func (m *Metrics) alert(l models.AlertLevel) {
	if m == nil {
		return
	}
	m.alerts.WithLabelValues(string(l)).Inc()
}

func (m *Metrics) publishError(topic string) {
	if m == nil {
		return
	}
	m.publishErrors.WithLabelValues(topic).Inc()
}

func (m *Metrics) queue(depth int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(depth))
}

func (m *Metrics) observeState(st *models.ControlState) {
	if m == nil {
		return
	}
	m.targetTemp.Set(st.TargetTemperature)
	m.pumpRunning.Set(boolGauge(st.PumpRunning))
	m.manualRefill.Set(boolGauge(st.ManualRefillTarget != nil))
	if st.LastWaterLevel != nil {
		m.waterLevel.Set(*st.LastWaterLevel)
	}
	if st.LastTemperature != nil {
		m.waterTemp.Set(*st.LastTemperature)
	}
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
