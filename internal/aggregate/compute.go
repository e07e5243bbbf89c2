package aggregate

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/a-mhatre/studylog-tui/internal/models"
)

// DatasetVersion derives a content hash for a raw snapshot. Two snapshots
// with equal rows share a version; any row change produces a new one. Row
// count alone is not used because two different datasets of equal length
// would collide.
func DatasetVersion(sheet *models.Sheet) string {
	if sheet.Empty() {
		return "empty"
	}
	raw, err := json.Marshal(sheet.Rows)
	if err != nil {
		// Cell marshaling cannot fail in practice; degrade to a length tag.
		return hex.EncodeToString([]byte{byte(len(sheet.Rows))})
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:16])
}

// Compute runs one full aggregation pass: normalize, fold, gap-fill,
// truncate, derive. It is pure aside from reading now; every call with the
// same inputs yields an identical bundle.
func Compute(
	sheet *models.Sheet,
	interval models.Interval,
	now time.Time,
) *models.ComputedBundle {
	records := NormalizeRows(sheet)
	grouped := Fold(records, interval)
	window := TruncateWindow(FillGaps(grouped, interval, now))

	titles := make(map[string]string)
	for _, rec := range records {
		if rec.BookID != "" && rec.BookTitle != "" {
			titles[rec.BookID] = rec.BookTitle
		}
	}

	return &models.ComputedBundle{
		Version:    DatasetVersion(sheet),
		Interval:   interval,
		ChartData:  window,
		StatsData:  DeriveStats(window),
		PieData:    BuildPie(window, titles),
		RecentData: Recent(records),
	}
}

type bundleKey struct {
	version  string
	interval models.Interval
}

// Cache memoizes computed bundles by (dataset version, interval) and book
// rollups by dataset version. Entries live for the process lifetime; the
// version key changes whenever the underlying dataset does, so there is no
// timer-based invalidation. Reads are safe concurrently and writes are
// idempotent: results for the same key are deterministic, so last-write-wins
// is harmless.
type Cache struct {
	mu      sync.RWMutex
	bundles map[bundleKey]*models.ComputedBundle
	rollups map[string][]models.BookRollup
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		bundles: make(map[bundleKey]*models.ComputedBundle),
		rollups: make(map[string][]models.BookRollup),
	}
}

// Get returns the cached bundle for a (version, interval) pair.
func (c *Cache) Get(version string, interval models.Interval) (*models.ComputedBundle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.bundles[bundleKey{version, interval}]
	return b, ok
}

// Put stores a computed bundle under its own version and interval.
func (c *Cache) Put(bundle *models.ComputedBundle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bundles[bundleKey{bundle.Version, bundle.Interval}] = bundle
}

// Bundle returns the memoized bundle for the snapshot and interval, running
// at most one computation per distinct (dataset version, interval) pair.
func (c *Cache) Bundle(sheet *models.Sheet, interval models.Interval, now time.Time) *models.ComputedBundle {
	version := DatasetVersion(sheet)
	if b, ok := c.Get(version, interval); ok {
		return b
	}
	bundle := Compute(sheet, interval, now)
	c.Put(bundle)
	return bundle
}

// masterVersion hashes the book master so a master refresh invalidates the
// rollup cache the same way a dataset change does. Map marshaling is
// key-sorted, so equal masters hash equally.
func masterVersion(master map[string]models.BookMaster) string {
	if len(master) == 0 {
		return "none"
	}
	raw, err := json.Marshal(master)
	if err != nil {
		return "none"
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:8])
}

// Rollups returns the memoized book rollups for the snapshot. The rollup
// path ignores the interval, so it is keyed by the dataset and master
// versions alone.
func (c *Cache) Rollups(sheet *models.Sheet, master map[string]models.BookMaster) []models.BookRollup {
	version := DatasetVersion(sheet) + ":" + masterVersion(master)

	c.mu.RLock()
	cached, ok := c.rollups[version]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	rollups := BuildRollups(NormalizeRows(sheet), master)

	c.mu.Lock()
	c.rollups[version] = rollups
	c.mu.Unlock()
	return rollups
}
