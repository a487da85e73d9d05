package event

import "flashcut/domain/frame"

// DiagnosticWindowSeconds is the merge window used by Diagnose. It is
// deliberately fixed at 2 seconds and independent of a Clusterer's
// configured MergeWindowSeconds: the diagnostics characterize raw
// detection density on a stable scale, so they must not shift when the
// production window is tuned. Do not unify the two.
const DiagnosticWindowSeconds = 2.0

// Diagnostics summarizes raw detection density before any size filtering.
type Diagnostics struct {
	Clusters  int
	MeanSize  float64
	MaxSize   int
	TotalHits int
}

// Diagnose runs the same greedy partition as Clusterer.Cluster, always
// with DiagnosticWindowSeconds, and reports cluster counts and sizes.
// Read-only: no records are produced and no clusters are dropped.
func Diagnose(samples []frame.Sample) Diagnostics {
	clusters := partition(samples, DiagnosticWindowSeconds)
	if len(clusters) == 0 {
		return Diagnostics{}
	}

	d := Diagnostics{
		Clusters:  len(clusters),
		TotalHits: len(samples),
	}
	for _, cl := range clusters {
		if cl.Size() > d.MaxSize {
			d.MaxSize = cl.Size()
		}
	}
	d.MeanSize = float64(len(samples)) / float64(len(clusters))

	return d
}
