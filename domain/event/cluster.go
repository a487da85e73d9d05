package event

import (
	"sort"

	"flashcut/domain/frame"
)

// Cluster is a transient, time-ordered run of samples whose consecutive
// gaps all fit within one merge window. It is discarded once a
// representative has been extracted.
type Cluster struct {
	Samples []frame.Sample
	Start   float64
	End     float64
}

// Size returns the number of samples in the cluster.
func (c *Cluster) Size() int { return len(c.Samples) }

// Representative returns the highest-confidence sample. Ties are broken by
// the earliest timestamp: only a strictly greater confidence replaces the
// current pick.
func (c *Cluster) Representative() frame.Sample {
	best := c.Samples[0]
	for _, s := range c.Samples[1:] {
		if s.Confidence > best.Confidence {
			best = s
		}
	}
	return best
}

// partition runs the greedy interval merge: a new cluster starts whenever
// the gap from the current cluster's end to the next sample exceeds the
// window. Input order is preserved; the caller's slice is not mutated.
func partition(samples []frame.Sample, windowSeconds float64) []Cluster {
	if len(samples) == 0 {
		return nil
	}

	ordered := make([]frame.Sample, len(samples))
	copy(ordered, samples)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp < ordered[j].Timestamp
	})

	var clusters []Cluster
	current := Cluster{
		Samples: ordered[:1:1],
		Start:   ordered[0].Timestamp,
		End:     ordered[0].Timestamp,
	}

	for _, s := range ordered[1:] {
		if s.Timestamp-current.End > windowSeconds {
			clusters = append(clusters, current)
			current = Cluster{Samples: nil, Start: s.Timestamp, End: s.Timestamp}
		}
		current.Samples = append(current.Samples, s)
		current.End = s.Timestamp
	}

	return append(clusters, current)
}
