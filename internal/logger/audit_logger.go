// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides a dedicated audit trail for analysis runs.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogRunStarted logs the start of an analysis run.
func (al *AuditLogger) LogRunStarted(triggeredBy string, accountDays, fillCount int) {
	al.WithFields(logrus.Fields{
		"triggered_by": triggeredBy,
		"account_days": accountDays,
		"fill_count":   fillCount,
	}).Info("Analysis run started")
}

// LogRunCompleted logs the completion of an analysis run.
func (al *AuditLogger) LogRunCompleted(runID string, completedTrades, unmatchedSells, undefinedMetrics int, duration time.Duration) {
	al.WithFields(logrus.Fields{
		"run_id":            runID,
		"completed_trades":  completedTrades,
		"unmatched_sells":   unmatchedSells,
		"undefined_metrics": undefinedMetrics,
		"duration_ms":       duration.Milliseconds(),
	}).Info("Analysis run completed")
}

// LogRunFailed logs a failed analysis run.
func (al *AuditLogger) LogRunFailed(triggeredBy string, err error) {
	al.WithFields(logrus.Fields{
		"triggered_by": triggeredBy,
		"error":        err.Error(),
	}).Error("Analysis run failed")
}

// LogReportPersisted logs a report write to the database.
func (al *AuditLogger) LogReportPersisted(runID string, timestamp time.Time) {
	al.WithFields(logrus.Fields{
		"run_id":    runID,
		"timestamp": timestamp.Unix(),
	}).Info("Report persisted")
}

// LogDataQualityIssue logs rows excluded from the input data.
func (al *AuditLogger) LogDataQualityIssue(runID, kind string, count int) {
	al.WithFields(logrus.Fields{
		"run_id": runID,
		"kind":   kind,
		"count":  count,
	}).Warn("Data quality issue recorded")
}
