// Package tracing provides AWS X-Ray distributed tracing integration.
package tracing

import (
	"context"
	"fmt"

	"github.com/aws/aws-xray-sdk-go/strategy/sampling"
	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/aws/aws-xray-sdk-go/xraylog"
	"github.com/sirupsen/logrus"
)

// Config contains X-Ray configuration.
type Config struct {
	ServiceName  string
	Enabled      bool
	SamplingRate float64
	DaemonAddr   string
}

// Logger adapter for X-Ray SDK.
type xrayLoggerAdapter struct {
	logger *logrus.Logger
}

func (l *xrayLoggerAdapter) Log(level xraylog.LogLevel, msg fmt.Stringer) {
	switch level {
	case xraylog.LogLevelDebug:
		l.logger.Debug(msg)
	case xraylog.LogLevelInfo:
		l.logger.Info(msg)
	case xraylog.LogLevelWarn:
		l.logger.Warn(msg)
	case xraylog.LogLevelError:
		l.logger.Error(msg)
	}
}

var enabled bool

// Initialize initializes AWS X-Ray with the given configuration.
func Initialize(cfg Config, logger *logrus.Logger) error {
	if !cfg.Enabled {
		return nil
	}
	enabled = true

	xray.SetLogger(&xrayLoggerAdapter{logger: logger})

	rules := fmt.Sprintf(`{"version": 2, "default": {"fixed_target": 1, "rate": %g}}`, cfg.SamplingRate)
	strategy, err := sampling.NewLocalizedStrategyFromJSONBytes([]byte(rules))
	if err != nil {
		return fmt.Errorf("failed to build sampling strategy: %w", err)
	}
	if err := xray.Configure(xray.Config{
		DaemonAddr:       cfg.DaemonAddr,
		SamplingStrategy: strategy,
	}); err != nil {
		return fmt.Errorf("failed to configure X-Ray: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"daemon_addr":   cfg.DaemonAddr,
		"sampling_rate": cfg.SamplingRate,
		"service_name":  cfg.ServiceName,
	}).Info("AWS X-Ray initialized")

	return nil
}

// Segment wraps an X-Ray segment so callers can close unconditionally
// even when tracing is disabled.
type Segment struct {
	seg *xray.Segment
}

// Close closes the underlying segment, recording the error if any.
func (s *Segment) Close(err error) {
	if s != nil && s.seg != nil {
		s.seg.Close(err)
	}
}

// StartRun opens a segment covering one full analysis run.
func StartRun(ctx context.Context, runName string) (context.Context, *Segment) {
	if !enabled {
		return ctx, nil
	}
	segCtx, seg := xray.BeginSegment(ctx, runName)
	return segCtx, &Segment{seg: seg}
}

// StartStage opens a subsegment for one pipeline stage, such as loading
// the ledger or reconstructing trades.
func StartStage(ctx context.Context, stageName string) (context.Context, *Segment) {
	if !enabled {
		return ctx, nil
	}
	segCtx, seg := xray.BeginSubsegment(ctx, stageName)
	return segCtx, &Segment{seg: seg}
}

// AddRunAnnotation annotates the current segment with a run attribute.
func AddRunAnnotation(ctx context.Context, key string, value interface{}) {
	if !enabled {
		return
	}
	if seg := xray.GetSegment(ctx); seg != nil {
		seg.AddAnnotation(key, value)
	}
}

// AddError adds an error to the current segment.
func AddError(ctx context.Context, err error) {
	if !enabled {
		return
	}
	if seg := xray.GetSegment(ctx); seg != nil {
		seg.AddError(err)
	}
}
