package logger

import (
	"errors"
	"github.com/maxaizer/gb2260/internal/metrics"
	"github.com/maxaizer/gb2260/pkg/gb2260"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const unknownErrorType = "unknown"

// errorCounterHook counts error entries per error_type. Entries without the field
// but carrying a registry error via WithError are counted as registry errors.
type errorCounterHook struct {
	counter *prometheus.CounterVec
}

func newErrorCounterHook(counter *prometheus.CounterVec) *errorCounterHook {
	return &errorCounterHook{counter: counter}
}

func (h *errorCounterHook) Fire(entry *log.Entry) error {
	h.counter.WithLabelValues(errorType(entry)).Inc()
	return nil
}

func (h *errorCounterHook) Levels() []log.Level {
	return []log.Level{
		log.ErrorLevel,
		log.FatalLevel,
		log.PanicLevel,
	}
}

func errorType(entry *log.Entry) string {
	if value, ok := entry.Data[ErrorTypeField].(string); ok && value != "" {
		return value
	}

	if err, ok := entry.Data[log.ErrorKey].(error); ok {
		if errors.Is(err, gb2260.ErrUnknownRevision) ||
			errors.Is(err, gb2260.ErrUnknownCode) ||
			errors.Is(err, gb2260.ErrUnknownSource) {
			return ErrorTypeRegistry
		}
	}

	return unknownErrorType
}

func addPrometheusHook() {
	log.AddHook(newErrorCounterHook(metrics.ErrorsCounter))
	log.Debug("error counter hook enabled")
}
