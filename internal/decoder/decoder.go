// Package decoder turns raw pub/sub payloads into typed messages.
//
// Decoding is tolerant by default: a payload that is not a JSON object is
// treated as an empty record and missing or ill-typed fields take their
// defaults (0 for numbers, false for flags). Strict mode reports such
// payloads as models.Invalid instead.
package decoder

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"aquarium_controller/internal/models"
)

// Payload field names.
const (
	fieldTemperature = "temperature"
	fieldTempLegacy  = "temp"
	fieldLevel       = "level"
	fieldTarget      = "target"
	fieldFeed        = "feed"
	fieldSeconds     = "seconds"
	fieldRefill      = "refill"
)

// Decoder decodes payloads for a known subject.
type Decoder struct {
	Strict bool
}

// New returns a decoder; strict selects strict mode.
func New(strict bool) *Decoder {
	return &Decoder{Strict: strict}
}

// Decode never fails: it returns either a typed message or, in strict mode,
// a models.Invalid describing why the payload was rejected.
func (d *Decoder) Decode(subject models.Subject, payload []byte) models.Message {
	rec, ok := parseRecord(payload)
	if !ok && d.Strict {
		return models.Invalid{From: subject, Reason: "payload is not a JSON object"}
	}

	switch subject {
	case models.SubjectTemperature:
		v, present := rec.number(fieldTemperature)
		if !present {
			v, present = rec.number(fieldTempLegacy)
		}
		if !present && d.Strict {
			return models.Invalid{From: subject, Reason: "missing numeric temperature"}
		}
		return models.TemperatureReading{Celsius: v}

	case models.SubjectLevel:
		v, present := rec.number(fieldLevel)
		if !present && d.Strict {
			return models.Invalid{From: subject, Reason: "missing numeric level"}
		}
		return models.LevelReading{Percent: v}

	case models.SubjectTargetTemp:
		v, present := rec.number(fieldTarget)
		if !present {
			if d.Strict {
				return models.Invalid{From: subject, Reason: "missing numeric target"}
			}
			return models.SetTargetCommand{}
		}
		return models.SetTargetCommand{Target: &v}

	case models.SubjectFeed:
		cmd := models.FeedCommand{Feed: rec.flag(fieldFeed)}
		if v, present := rec.number(fieldSeconds); present {
			s := saturateInt(v)
			cmd.Seconds = &s
		} else if d.Strict && rec.has(fieldSeconds) {
			return models.Invalid{From: subject, Reason: "seconds is not numeric"}
		}
		return cmd

	case models.SubjectRefill:
		cmd := models.RefillCommand{Refill: rec.flag(fieldRefill)}
		if v, present := rec.number(fieldTarget); present {
			cmd.Target = &v
		} else if d.Strict && rec.has(fieldTarget) {
			return models.Invalid{From: subject, Reason: "target is not numeric"}
		}
		return cmd

	default:
		return models.Invalid{From: subject, Reason: "unknown subject"}
	}
}

// saturateInt truncates v toward zero, pinning values outside the int32
// range to its bounds so the conversion is always defined.
func saturateInt(v float64) int {
	switch {
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return int(v)
}

// record is a loosely typed JSON object.
type record map[string]any

func parseRecord(payload []byte) (record, bool) {
	var rec record
	if err := json.Unmarshal(payload, &rec); err != nil || rec == nil {
		return record{}, false
	}
	return rec, true
}

func (r record) has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// number returns the numeric value at key. Numeric strings are accepted;
// NaN and infinities are not.
func (r record) number(key string) (float64, bool) {
	var f float64
	switch v := r[key].(type) {
	case float64:
		f = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// flag reports whether the value at key is truthy: true, a non-zero number,
// or a string strconv.ParseBool accepts as true.
func (r record) flag(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	default:
		return false
	}
}
