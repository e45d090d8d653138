package config

import (
	"time"

	"github.com/spf13/viper"
)

const topicRoot = "aquarium/"

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")

	v.SetDefault("http.enabled", true)
	v.SetDefault("http.port", "8080")

	v.SetDefault("db.path", "aquarium_data.db")

	v.SetDefault("transport.kind", TransportMQTT)
	v.SetDefault("transport.mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("transport.mqtt.client_id", "manager.smart_aquarium")
	v.SetDefault("transport.mqtt.username", "")
	v.SetDefault("transport.mqtt.password", "")
	v.SetDefault("transport.mqtt.qos", 0)
	v.SetDefault("transport.mqtt.keep_alive", 60*time.Second)
	v.SetDefault("transport.mqtt.connect_timeout", 10*time.Second)
	v.SetDefault("transport.nats.url", "nats://localhost:4222")
	v.SetDefault("transport.nats.name", "manager.smart_aquarium")
	v.SetDefault("transport.nats.token", "")
	v.SetDefault("transport.nats.connect_timeout", 10*time.Second)

	v.SetDefault("topics.temperature", topicRoot+"sensors/water_temp")
	v.SetDefault("topics.level", topicRoot+"sensors/water_level")
	v.SetDefault("topics.feed_cmd", topicRoot+"controls/feed_cmd")
	v.SetDefault("topics.target_cmd", topicRoot+"controls/target_temp")
	v.SetDefault("topics.refill_cmd", topicRoot+"controls/refill_cmd")
	v.SetDefault("topics.feeder", topicRoot+"actuators/feeder")
	v.SetDefault("topics.heater", topicRoot+"actuators/heater")
	v.SetDefault("topics.cooler", topicRoot+"actuators/cooler")
	v.SetDefault("topics.pump", topicRoot+"actuators/pump")
	v.SetDefault("topics.alerts", topicRoot+"alerts")

	v.SetDefault("control.default_target_c", 24.0)
	v.SetDefault("control.hysteresis_c", 0.5)
	v.SetDefault("control.cold_alert_c", 18.0)
	v.SetDefault("control.hot_alert_c", 30.0)
	v.SetDefault("control.max_feed_seconds", 3)
	v.SetDefault("control.level_critical", 20.0)
	v.SetDefault("control.level_low", 70.0)
	v.SetDefault("control.level_target", 85.0)
	v.SetDefault("control.manual_margin", 0.5)
	v.SetDefault("control.strict_decode", false)
	v.SetDefault("control.queue_size", 256)

	v.SetDefault("recorder.enabled", true)

	v.SetDefault("simulator.enabled", false)
	v.SetDefault("simulator.tick", time.Second)

	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
}
