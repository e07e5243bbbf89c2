package models

// BucketAggregate accumulates session metrics for one calendar period. It is
// mutable while a fold is in progress and read-only once the fold completes.
// Gap-filled periods are synthesized as zero aggregates with empty sets.
type BucketAggregate struct {
	Key               BucketKey
	TotalPages        int
	TotalMinutes      float64
	SessionCount      int
	SpeedSum          float64
	DistinctBooks     map[string]struct{}
	DistinctChapters  map[string]struct{}
	CompletedChapters map[string]struct{}
	PerBookPages      map[string]int
}

// NewBucketAggregate returns a zero-valued aggregate for key.
func NewBucketAggregate(key BucketKey) *BucketAggregate {
	return &BucketAggregate{
		Key:               key,
		DistinctBooks:     make(map[string]struct{}),
		DistinctChapters:  make(map[string]struct{}),
		CompletedChapters: make(map[string]struct{}),
		PerBookPages:      make(map[string]int),
	}
}

// MeanSpeed returns the mean of per-session speeds for the period. This is a
// different figure from TotalPages/TotalMinutes, which weights by duration;
// both are tracked because they answer different questions.
func (b *BucketAggregate) MeanSpeed() float64 {
	if b.SessionCount == 0 {
		return 0
	}
	return b.SpeedSum / float64(b.SessionCount)
}

// StatCard is one summary card for the most recent period.
type StatCard struct {
	Label  string
	Value  string
	Change string // signed percent vs the previous period, "" when no baseline
	Avg    string // optional whole-window reference average
}

// PieSlice is one share of the per-book page breakdown.
type PieSlice struct {
	Label string
	Value int
}

// RecentItem is one entry in the recent-sessions list.
type RecentItem struct {
	ID       string
	Label    string
	Subtitle string
	Value    string
	Status   string
}

// ComputedBundle is the complete output of one aggregation pass for a
// (dataset version, interval) pair. Entries are immutable once built.
type ComputedBundle struct {
	Version    string
	Interval   Interval
	ChartData  []*BucketAggregate // dense, truncated to the display window
	StatsData  []StatCard
	PieData    []PieSlice
	RecentData []RecentItem
}

// Empty reports whether the bundle carries no chart data.
func (b *ComputedBundle) Empty() bool {
	return b == nil || len(b.ChartData) == 0
}
