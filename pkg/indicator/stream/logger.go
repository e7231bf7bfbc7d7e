package stream

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// RejectLogger warns about the first rejected samples of a burst and drops
// to debug level once the limit is exhausted.
type RejectLogger struct {
	logger  logrus.FieldLogger
	limiter *rate.Limiter

	suppressed int
}

func NewRejectLogger(threshold int, window time.Duration, logger logrus.FieldLogger) *RejectLogger {
	return &RejectLogger{
		logger:  logger,
		limiter: rate.NewLimiter(rate.Every(window), threshold),
	}
}

func (l *RejectLogger) Reject(err error, msg string, args ...interface{}) {
	log := l.logger.WithError(err)
	if !l.limiter.Allow() {
		l.suppressed++
		log.Debugf(msg, args...)
		return
	}

	if l.suppressed > 0 {
		log = log.WithField("suppressed", l.suppressed)
		l.suppressed = 0
	}
	log.Warnf(msg, args...)
}

// Suppressed returns the number of rejections logged at debug level since the last warning.
func (l *RejectLogger) Suppressed() int { return l.suppressed }
