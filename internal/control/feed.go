package control

import (
	"aquarium_controller/internal/logger"
	"aquarium_controller/internal/models"
)

// FeedRelay turns a feed request into a feeder command. It does not wait for
// the feed to finish; the duration is advisory for the actuator.
type FeedRelay struct {
	maxSeconds int
	out        *actuators
	alerts     *AlertEmitter
	log        *logger.Logger
}

// FeedSeconds returns the duration to send: max when unspecified, clamped to
// max when larger. Smaller values, including negative ones, pass through.
func FeedSeconds(requested *int, max int) int {
	if requested == nil || *requested > max {
		return max
	}
	return *requested
}

// OnFeed handles a feed command; a command without feed=true is ignored.
func (r *FeedRelay) OnFeed(cmd models.FeedCommand) {
	if !cmd.Feed {
		r.log.Debugw("feed_ignored", "reason", "feed flag not set")
		return
	}
	s := FeedSeconds(cmd.Seconds, r.maxSeconds)
	r.out.send(models.FeederCommand{On: true, Seconds: s})
	r.alerts.Emitf(models.AlertInfo, "Feeder ON for %ds", s)
}
