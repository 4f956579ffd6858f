package logging

// ProgressSampler thins per-item progress down to a handful of log lines: the
// first item, each time completion crosses a bucket boundary, and the last
// item.
type ProgressSampler struct {
	bucketPercent float64
	lastBucket    int
}

// NewProgressSampler constructs a sampler with buckets of bucketPercent
// (default 5).
func NewProgressSampler(bucketPercent float64) *ProgressSampler {
	if bucketPercent <= 0 || bucketPercent > 100 {
		bucketPercent = 5
	}
	return &ProgressSampler{bucketPercent: bucketPercent, lastBucket: -1}
}

// Observe records that done of total items are complete and reports the
// completion percentage and whether it deserves a log line. A nil sampler
// logs everything.
func (s *ProgressSampler) Observe(done, total int) (float64, bool) {
	if total <= 0 {
		return 100, s == nil
	}
	done = min(max(done, 0), total)
	percent := float64(done) * 100 / float64(total)
	if s == nil {
		return percent, true
	}
	bucket := int(percent / s.bucketPercent)
	if done == total {
		bucket = int(100/s.bucketPercent) + 1
	}
	if bucket <= s.lastBucket {
		return percent, false
	}
	s.lastBucket = bucket
	return percent, true
}

// Reset forgets previously observed progress.
func (s *ProgressSampler) Reset() {
	if s == nil {
		return
	}
	s.lastBucket = -1
}
