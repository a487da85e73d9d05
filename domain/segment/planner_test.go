package segment

import (
	"testing"

	"flashcut/domain/event"
)

func TestPlan(t *testing.T) {
	t.Run("centers the window on the event", func(t *testing.T) {
		spec := Plan(event.Record{Timestamp: 100.0}, 3, 2)

		if spec.StartTime != 97.0 {
			t.Errorf("start = %f, expected 97.0", spec.StartTime)
		}
		if spec.EndTime != 102.0 {
			t.Errorf("end = %f, expected 102.0", spec.EndTime)
		}
		if spec.Duration != 5.0 {
			t.Errorf("duration = %f, expected 5.0", spec.Duration)
		}
	})

	t.Run("clamps start to zero near the beginning", func(t *testing.T) {
		spec := Plan(event.Record{Timestamp: 1.0}, 3, 2)

		if spec.StartTime != 0 {
			t.Errorf("start = %f, expected clamp to 0", spec.StartTime)
		}
		if spec.EndTime != 3.0 {
			t.Errorf("end = %f, expected 3.0", spec.EndTime)
		}
		// Duration stays lead + trail even when the start was clamped.
		if spec.Duration != 5.0 {
			t.Errorf("duration = %f, expected 5.0", spec.Duration)
		}
	})

	t.Run("zero lead and trail collapse to the timestamp", func(t *testing.T) {
		spec := Plan(event.Record{Timestamp: 42.0}, 0, 0)

		if spec.StartTime != 42.0 || spec.EndTime != 42.0 || spec.Duration != 0 {
			t.Errorf("expected degenerate interval at 42.0, got %+v", spec)
		}
	})
}
