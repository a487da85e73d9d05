package event

// Record is one detected kill-screen event. ID, Timestamp, FrameIndex, and
// Confidence are write-once at creation; Enabled and Note may be edited by
// an operator between a detection run and a generation run.
type Record struct {
	// ID is assigned 1..N in ascending timestamp order
	ID int

	// Timestamp is the representative frame's position in seconds
	Timestamp float64

	// FrameIndex is the representative frame's index
	FrameIndex int

	// Confidence is the representative confidence plus the continuity bonus, in [0, 1]
	Confidence float64

	// Enabled controls whether the event contributes a segment on generation
	Enabled bool

	// Note is free-form operator text
	Note string
}
