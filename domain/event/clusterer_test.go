package event

import (
	"math"
	"testing"

	"flashcut/domain/frame"
)

func samplesAt(pairs ...[2]float64) []frame.Sample {
	out := make([]frame.Sample, len(pairs))
	for i, p := range pairs {
		out[i] = frame.Sample{
			Index:      int(p[0] * 30),
			Timestamp:  p[0],
			Confidence: p[1],
		}
	}
	return out
}

func TestClustererMergeWindow(t *testing.T) {
	c := &Clusterer{MergeWindowSeconds: 2, MinClusterSize: 1}

	t.Run("gap within window merges", func(t *testing.T) {
		result := c.Cluster(samplesAt([2]float64{10.0, 0.9}, [2]float64{11.5, 0.85}))
		if len(result.Records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(result.Records))
		}
		if result.Clusters != 1 {
			t.Errorf("expected 1 cluster, got %d", result.Clusters)
		}
	})

	t.Run("gap beyond window splits", func(t *testing.T) {
		result := c.Cluster(samplesAt([2]float64{10.0, 0.9}, [2]float64{13.5, 0.85}))
		if len(result.Records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(result.Records))
		}
	})

	t.Run("gap exactly at window merges", func(t *testing.T) {
		result := c.Cluster(samplesAt([2]float64{10.0, 0.9}, [2]float64{12.0, 0.85}))
		if len(result.Records) != 1 {
			t.Fatalf("expected 1 record for a gap of exactly the window, got %d", len(result.Records))
		}
	})
}

func TestClustererMinClusterSize(t *testing.T) {
	samples := samplesAt([2]float64{10.0, 0.9})

	t.Run("singleton dropped at size 2", func(t *testing.T) {
		c := &Clusterer{MergeWindowSeconds: 2, MinClusterSize: 2}
		result := c.Cluster(samples)
		if len(result.Records) != 0 {
			t.Errorf("expected no records, got %d", len(result.Records))
		}
		if result.Dropped != 1 {
			t.Errorf("expected dropped count 1, got %d", result.Dropped)
		}
		if result.Clusters != 1 {
			t.Errorf("expected cluster count 1 before filtering, got %d", result.Clusters)
		}
	})

	t.Run("singleton retained at size 1", func(t *testing.T) {
		c := &Clusterer{MergeWindowSeconds: 2, MinClusterSize: 1}
		result := c.Cluster(samples)
		if len(result.Records) != 1 {
			t.Errorf("expected 1 record, got %d", len(result.Records))
		}
		if result.Dropped != 0 {
			t.Errorf("expected dropped count 0, got %d", result.Dropped)
		}
	})
}

func TestClustererRepresentativeAndBonus(t *testing.T) {
	// The worked example: three samples 0.2s apart, peak 0.85 in the
	// middle, cluster size 3 earns a 0.06 bonus.
	c := &Clusterer{MergeWindowSeconds: 2, MinClusterSize: 2}
	result := c.Cluster(samplesAt(
		[2]float64{100.0, 0.82},
		[2]float64{100.2, 0.85},
		[2]float64{100.4, 0.79},
	))

	if len(result.Records) != 1 {
		t.Fatalf("expected exactly 1 record, got %d", len(result.Records))
	}

	rec := result.Records[0]
	if rec.Timestamp != 100.2 {
		t.Errorf("timestamp = %f, expected 100.2", rec.Timestamp)
	}
	if math.Abs(rec.Confidence-0.91) > 1e-9 {
		t.Errorf("confidence = %f, expected 0.91", rec.Confidence)
	}
	if rec.ID != 1 {
		t.Errorf("id = %d, expected 1", rec.ID)
	}
	if !rec.Enabled {
		t.Error("expected new record to be enabled")
	}
}

func TestClustererTieBreaksEarliest(t *testing.T) {
	c := &Clusterer{MergeWindowSeconds: 2, MinClusterSize: 1}
	result := c.Cluster(samplesAt(
		[2]float64{50.0, 0.9},
		[2]float64{50.5, 0.9},
	))

	if len(result.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(result.Records))
	}
	if result.Records[0].Timestamp != 50.0 {
		t.Errorf("timestamp = %f, expected the earlier 50.0 on a confidence tie", result.Records[0].Timestamp)
	}
}

func TestClustererBonusMonotonicAndCapped(t *testing.T) {
	prev := 0.0
	for size := 1; size <= 12; size++ {
		got := enhance(0.85, size)
		if got < prev {
			t.Errorf("bonus not monotonic: size %d gives %f, below %f", size, got, prev)
		}
		if got > 1.0 {
			t.Errorf("size %d drives confidence to %f, above 1.0", size, got)
		}
		prev = got
	}

	if got := enhance(0.85, 100); got != 0.95 {
		t.Errorf("enhance(0.85, 100) = %f, expected bonus capped at 0.1", got)
	}
	if got := enhance(0.99, 10); got != 1.0 {
		t.Errorf("enhance(0.99, 10) = %f, expected clamp at 1.0", got)
	}
}

func TestClustererEmptyInput(t *testing.T) {
	c := &Clusterer{MergeWindowSeconds: 2, MinClusterSize: 1}
	result := c.Cluster(nil)

	if len(result.Records) != 0 || result.Clusters != 0 || result.RawSamples != 0 {
		t.Errorf("expected empty result for empty input, got %+v", result)
	}
}

func TestClustererUnsortedInput(t *testing.T) {
	c := &Clusterer{MergeWindowSeconds: 2, MinClusterSize: 1}
	result := c.Cluster(samplesAt(
		[2]float64{20.0, 0.9},
		[2]float64{5.0, 0.85},
		[2]float64{21.0, 0.8},
	))

	if len(result.Records) != 2 {
		t.Fatalf("expected 2 records from unsorted input, got %d", len(result.Records))
	}
	if result.Records[0].Timestamp != 5.0 {
		t.Errorf("first record at %f, expected 5.0", result.Records[0].Timestamp)
	}
	if result.Records[0].ID != 1 || result.Records[1].ID != 2 {
		t.Errorf("ids = %d, %d, expected 1, 2", result.Records[0].ID, result.Records[1].ID)
	}
}

func TestClustererIdempotentOnOwnOutput(t *testing.T) {
	// Records already one-per-cluster and separated by more than the
	// window must come back unchanged in count when re-clustered.
	c := &Clusterer{MergeWindowSeconds: 2, MinClusterSize: 1}
	first := c.Cluster(samplesAt(
		[2]float64{10.0, 0.9},
		[2]float64{20.0, 0.85},
		[2]float64{30.0, 0.8},
	))

	var asSamples []frame.Sample
	for _, rec := range first.Records {
		asSamples = append(asSamples, frame.Sample{
			Index:      rec.FrameIndex,
			Timestamp:  rec.Timestamp,
			Confidence: rec.Confidence,
		})
	}

	second := c.Cluster(asSamples)
	if len(second.Records) != len(first.Records) {
		t.Errorf("re-clustering merged records: %d became %d", len(first.Records), len(second.Records))
	}
}
