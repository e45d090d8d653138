// Package config loads the controller configuration from configs/config.yml,
// AQUARIUM_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"aquarium_controller/internal/models"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "AQUARIUM"

// Transport kinds.
const (
	TransportMQTT   = "mqtt"
	TransportNATS   = "nats"
	TransportMemory = "memory"
)

type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	DB        DBConfig        `mapstructure:"db"`
	Transport TransportConfig `mapstructure:"transport"`
	Topics    Topics          `mapstructure:"topics"`
	Control   ControlConfig   `mapstructure:"control"`
	Recorder  RecorderConfig  `mapstructure:"recorder"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
	Auth      AuthConfig      `mapstructure:"auth"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type HTTPConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    string `mapstructure:"port"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type TransportConfig struct {
	Kind string     `mapstructure:"kind"` // mqtt | nats | memory
	MQTT MQTTConfig `mapstructure:"mqtt"`
	NATS NATSConfig `mapstructure:"nats"`
}

type MQTTConfig struct {
	Broker         string        `mapstructure:"broker"`
	ClientID       string        `mapstructure:"client_id"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	QoS            byte          `mapstructure:"qos"`
	KeepAlive      time.Duration `mapstructure:"keep_alive"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	Name           string        `mapstructure:"name"`
	Token          string        `mapstructure:"token"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// Topics is the pub/sub layout shared with the sensor, actuator and panel processes.
type Topics struct {
	Temperature string `mapstructure:"temperature"`
	Level       string `mapstructure:"level"`
	FeedCmd     string `mapstructure:"feed_cmd"`
	TargetCmd   string `mapstructure:"target_cmd"`
	RefillCmd   string `mapstructure:"refill_cmd"`
	Feeder      string `mapstructure:"feeder"`
	Heater      string `mapstructure:"heater"`
	Cooler      string `mapstructure:"cooler"`
	Pump        string `mapstructure:"pump"`
	Alerts      string `mapstructure:"alerts"`
}

// Inbound maps every topic the controller consumes to its message subject.
func (t Topics) Inbound() map[string]models.Subject {
	return map[string]models.Subject{
		t.Temperature: models.SubjectTemperature,
		t.Level:       models.SubjectLevel,
		t.TargetCmd:   models.SubjectTargetTemp,
		t.FeedCmd:     models.SubjectFeed,
		t.RefillCmd:   models.SubjectRefill,
	}
}

// Actuator returns the topic commands for a is published on.
func (t Topics) Actuator(a models.Actuator) string {
	switch a {
	case models.ActuatorHeater:
		return t.Heater
	case models.ActuatorCooler:
		return t.Cooler
	case models.ActuatorPump:
		return t.Pump
	case models.ActuatorFeeder:
		return t.Feeder
	default:
		return ""
	}
}

func (t Topics) all() []string {
	return []string{
		t.Temperature, t.Level, t.FeedCmd, t.TargetCmd, t.RefillCmd,
		t.Feeder, t.Heater, t.Cooler, t.Pump, t.Alerts,
	}
}

// ControlConfig holds the regulator constants.
type ControlConfig struct {
	DefaultTargetC float64 `mapstructure:"default_target_c"`
	HysteresisC    float64 `mapstructure:"hysteresis_c"`
	ColdAlertC     float64 `mapstructure:"cold_alert_c"`
	HotAlertC      float64 `mapstructure:"hot_alert_c"`
	MaxFeedSeconds int     `mapstructure:"max_feed_seconds"`
	LevelCritical  float64 `mapstructure:"level_critical"`
	LevelLow       float64 `mapstructure:"level_low"`
	LevelTarget    float64 `mapstructure:"level_target"`
	ManualMargin   float64 `mapstructure:"manual_margin"`
	StrictDecode   bool    `mapstructure:"strict_decode"`
	QueueSize      int     `mapstructure:"queue_size"`
}

type RecorderConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type SimulatorConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Tick    time.Duration `mapstructure:"tick"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

var (
	errThresholdOrder = errors.New("level thresholds must satisfy critical < low < target")
	errNoSigningKey   = errors.New("auth.signing_key must be set when the HTTP API is enabled")
)

// RegisterFlags adds the command-line overrides understood by Load.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to config file (default: configs/config.yml)")
	fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.String("http-port", "", "HTTP listen port")
	fs.String("transport", "", "transport kind: mqtt, nats, memory")
	fs.Bool("simulate", false, "run the built-in tank simulator")
}

// Load reads configuration. fs may be nil; when given, it must have been
// registered with RegisterFlags and parsed.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := ""
	if fs != nil {
		path, _ = fs.GetString("config")
		if err := bindFlags(v, fs); err != nil {
			return nil, err
		}
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicit path must exist; the default location is optional
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, flag := range map[string]string{
		"log.level":         "log-level",
		"http.port":         "http-port",
		"transport.kind":    "transport",
		"simulator.enabled": "simulate",
	} {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %q: %w", flag, err)
		}
	}
	return nil
}

// Validate checks invariants the control logic relies on.
func (c *Config) Validate() error {
	cc := c.Control
	if !(cc.LevelCritical < cc.LevelLow && cc.LevelLow < cc.LevelTarget) {
		return errThresholdOrder
	}
	if cc.HysteresisC < 0 {
		return fmt.Errorf("control.hysteresis_c must be >= 0, got %v", cc.HysteresisC)
	}
	if cc.MaxFeedSeconds <= 0 {
		return fmt.Errorf("control.max_feed_seconds must be > 0, got %d", cc.MaxFeedSeconds)
	}
	if cc.ManualMargin < 0 {
		return fmt.Errorf("control.manual_margin must be >= 0, got %v", cc.ManualMargin)
	}
	if cc.QueueSize <= 0 {
		return fmt.Errorf("control.queue_size must be > 0, got %d", cc.QueueSize)
	}
	for _, topic := range c.Topics.all() {
		if strings.TrimSpace(topic) == "" {
			return errors.New("all topics must be non-empty")
		}
	}
	if len(c.Topics.Inbound()) != 5 {
		return errors.New("inbound topics must be distinct")
	}
	switch c.Transport.Kind {
	case TransportMQTT, TransportNATS, TransportMemory:
	default:
		return fmt.Errorf("unknown transport kind %q", c.Transport.Kind)
	}
	if c.HTTP.Enabled && c.Auth.SigningKey == "" {
		return errNoSigningKey
	}
	if c.Simulator.Enabled && c.Simulator.Tick <= 0 {
		return fmt.Errorf("simulator.tick must be > 0, got %v", c.Simulator.Tick)
	}
	return nil
}
