package event

import "flashcut/domain/frame"

// Continuity bonus constants: sustained multi-frame detections earn a
// capped confidence increment over an isolated spike.
const (
	bonusPerSample = 0.02
	bonusCap       = 0.1
)

// Clusterer collapses threshold-filtered frame samples into deduplicated
// event records. It is a single left-to-right scan; cluster boundaries
// depend on the preceding cluster's end time, so it runs sequentially.
type Clusterer struct {
	// MergeWindowSeconds is the maximum gap between consecutive samples
	// folded into one cluster
	MergeWindowSeconds float64

	// MinClusterSize drops clusters with fewer samples
	MinClusterSize int
}

// Result carries the emitted records plus the per-stage counts that feed
// the project summary. Dropped clusters are counted here, never silent.
type Result struct {
	Records []Record

	// RawSamples is the number of input samples
	RawSamples int

	// Clusters is the number of clusters formed before the size filter
	Clusters int

	// Dropped is the number of clusters discarded by MinClusterSize
	Dropped int
}

// Cluster partitions the samples, drops undersized clusters, and emits one
// record per survivor in chronological order with ids starting at 1.
// Unsorted input is sorted by timestamp before partitioning. An empty
// input yields an empty result, not an error.
func (c *Clusterer) Cluster(samples []frame.Sample) Result {
	clusters := partition(samples, c.MergeWindowSeconds)

	result := Result{
		RawSamples: len(samples),
		Clusters:   len(clusters),
	}

	for _, cl := range clusters {
		if cl.Size() < c.MinClusterSize {
			result.Dropped++
			continue
		}

		rep := cl.Representative()
		result.Records = append(result.Records, Record{
			ID:         len(result.Records) + 1,
			Timestamp:  rep.Timestamp,
			FrameIndex: rep.Index,
			Confidence: enhance(rep.Confidence, cl.Size()),
			Enabled:    true,
		})
	}

	return result
}

// enhance applies the continuity bonus, monotonic in cluster size and
// capped so confidence never leaves [0, 1].
func enhance(confidence float64, size int) float64 {
	return min(1, confidence+min(bonusCap, float64(size)*bonusPerSample))
}
