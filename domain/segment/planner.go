package segment

import "flashcut/domain/event"

// Spec is a bounded time interval handed to the slicing collaborator.
type Spec struct {
	// StartTime is the interval start in seconds, clamped to >= 0
	StartTime float64

	// EndTime is the interval end in seconds
	EndTime float64

	// Duration is always lead + trail, even when StartTime was clamped;
	// the slicer seeks to StartTime and cuts Duration seconds at most
	Duration float64
}

// Plan derives the extraction interval for one event: lead seconds of
// context before the timestamp and trail seconds after. Total function;
// negative lead/trail are rejected at configuration time, not here.
func Plan(rec event.Record, leadSeconds, trailSeconds float64) Spec {
	return Spec{
		StartTime: max(0, rec.Timestamp-leadSeconds),
		EndTime:   rec.Timestamp + trailSeconds,
		Duration:  leadSeconds + trailSeconds,
	}
}
