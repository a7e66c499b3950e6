package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// EventType represents the type of verification event
type EventType string

const (
	// VerificationStarted when a verification request begins
	VerificationStarted EventType = "verification_started"
	// VerificationCompleted when verification finishes with a result
	VerificationCompleted EventType = "verification_completed"
	// VerificationRejected when an input or quality gate rejects the request
	VerificationRejected EventType = "verification_rejected"
	// VerificationFailed when OCR or an internal error aborts the request
	VerificationFailed EventType = "verification_failed"
)

// VerificationEvent describes one step of a verification request's lifecycle
type VerificationEvent struct {
	EventType      EventType     `json:"event_type"`
	Timestamp      time.Time     `json:"timestamp"`
	Source         string        `json:"source"` // "upload" or "url"
	ProcessingTime time.Duration `json:"processing_time"`
	OverallMatch   bool          `json:"overall_match"`
	ErrorMessage   string        `json:"error_message,omitempty"`
}

// Observer defines the interface for verification event observers
type Observer interface {
	OnEvent(ctx context.Context, event VerificationEvent)
	GetObserverName() string
}

// LoggingObserver logs verification events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// OnEvent handles verification events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event VerificationEvent) {
	fields := logrus.Fields{
		"event_type":      event.EventType,
		"source":          event.Source,
		"processing_time": event.ProcessingTime,
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}

	switch event.EventType {
	case VerificationStarted:
		o.logger.WithFields(fields).Debug("Label verification started")
	case VerificationCompleted:
		fields["overall_match"] = event.OverallMatch
		o.logger.WithFields(fields).Info("Label verification completed")
	case VerificationRejected:
		o.logger.WithFields(fields).Warn("Label verification rejected")
	case VerificationFailed:
		o.logger.WithFields(fields).Error("Label verification failed")
	default:
		o.logger.WithFields(fields).Info("Verification event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver collects counters from verification events
type MetricsObserver struct {
	mu                  sync.RWMutex
	totalVerifications  int64
	matchedLabels       int64
	mismatchedLabels    int64
	rejectedRequests    int64
	failedRequests      int64
	totalProcessingTime time.Duration
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// OnEvent handles verification events by collecting counters
func (o *MetricsObserver) OnEvent(ctx context.Context, event VerificationEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case VerificationStarted:
		o.totalVerifications++
	case VerificationCompleted:
		if event.OverallMatch {
			o.matchedLabels++
		} else {
			o.mismatchedLabels++
		}
		o.totalProcessingTime += event.ProcessingTime
	case VerificationRejected:
		o.rejectedRequests++
	case VerificationFailed:
		o.failedRequests++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// Snapshot returns the current counters
func (o *MetricsObserver) Snapshot() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	completed := o.matchedLabels + o.mismatchedLabels
	avgProcessingMs := float64(0)
	if completed > 0 {
		avgProcessingMs = float64(o.totalProcessingTime.Milliseconds()) / float64(completed)
	}

	return map[string]interface{}{
		"total_verifications":    o.totalVerifications,
		"matched_labels":         o.matchedLabels,
		"mismatched_labels":      o.mismatchedLabels,
		"rejected_requests":      o.rejectedRequests,
		"failed_requests":        o.failedRequests,
		"avg_processing_time_ms": avgProcessingMs,
	}
}
