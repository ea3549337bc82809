package gamemetrics

import (
	"context"
	"time"
)

// NoOpMetrics discards everything. Used by tests and tools that run without a
// registry.
type NoOpMetrics struct{}

func NewNoop() GameMetrics { return NoOpMetrics{} }

func (NoOpMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (NoOpMetrics) RecordHandAppended(context.Context, string, bool)                       {}
func (NoOpMetrics) RecordGameFinished(context.Context)                                     {}
func (NoOpMetrics) RecordGameReopened(context.Context)                                     {}
func (NoOpMetrics) RecordUnresolvableCall(context.Context)                                 {}
func (NoOpMetrics) RecordLedgerRepair(context.Context, int)                                {}
func (NoOpMetrics) RecordEventPublishFailure(context.Context, string)                      {}
