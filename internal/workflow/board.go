package workflow

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"feedbackhub/internal/model"
)

// Board is the item set currently held by a view. Filters and aggregates run on
// it as-is; only an explicit reload brings it in line with the remote.
type Board struct {
	mu    sync.RWMutex
	items []model.Feedback
}

// NewBoard creates a board holding items.
func NewBoard(items []model.Feedback) *Board {
	b := &Board{}
	b.Replace(items)
	return b
}

// Replace swaps the held items.
func (b *Board) Replace(items []model.Feedback) {
	cp := make([]model.Feedback, len(items))
	copy(cp, items)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = cp
}

// Items returns a copy of the held items.
func (b *Board) Items() []model.Feedback {
	b.mu.RLock()
	defer b.mu.RUnlock()
	cp := make([]model.Feedback, len(b.items))
	copy(cp, b.items)
	return cp
}

// Len returns the number of held items.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}

// Get returns the held item with id.
func (b *Board) Get(id int64) (model.Feedback, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, it := range b.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.Feedback{}, false
}

// SetStatus changes the status of a held item in place and returns the previous
// status. It does not talk to the remote.
func (b *Board) SetStatus(id int64, status model.FeedbackStatus) (model.FeedbackStatus, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].ID == id {
			prev := b.items[i].Status
			b.items[i].Status = status
			return prev, true
		}
	}
	return "", false
}

// SetCategory replaces the category of a held item.
func (b *Board) SetCategory(id int64, category *model.CategoryRef) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].ID == id {
			b.items[i].Category = category
			return true
		}
	}
	return false
}

// Remove drops a held item.
func (b *Board) Remove(id int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].ID == id {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return true
		}
	}
	return false
}

// Criteria narrows the held items. Zero fields match everything.
type Criteria struct {
	// Query matches submitter name or email, case-insensitively.
	Query      string
	Status     model.FeedbackStatus
	Rating     int
	CategoryID int64
}

// Matches reports whether f satisfies every set field of c.
func (c Criteria) Matches(f model.Feedback) bool {
	if q := strings.ToLower(strings.TrimSpace(c.Query)); q != "" {
		if !strings.Contains(strings.ToLower(f.SubmitterName), q) &&
			!strings.Contains(strings.ToLower(f.SubmitterEmail), q) {
			return false
		}
	}
	if c.Status != "" && f.Status != c.Status {
		return false
	}
	if c.Rating != 0 && f.Rating != c.Rating {
		return false
	}
	if c.CategoryID != 0 && (f.Category == nil || f.Category.ID != c.CategoryID) {
		return false
	}
	return true
}

// Filter returns the held items matching c, in held order.
func (b *Board) Filter(c Criteria) []model.Feedback {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]model.Feedback, 0, len(b.items))
	for _, it := range b.items {
		if c.Matches(it) {
			out = append(out, it)
		}
	}
	return out
}

// CategoryCount is one bar of the category chart.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// GroupByCategory counts items per category name, in first-seen order.
func GroupByCategory(items []model.Feedback) []CategoryCount {
	index := map[string]int{}
	out := []CategoryCount{}
	for _, it := range items {
		name := it.CategoryName()
		if i, ok := index[name]; ok {
			out[i].Count++
			continue
		}
		index[name] = len(out)
		out = append(out, CategoryCount{Name: name, Count: 1})
	}
	return out
}

// GroupByCategory counts the held items per category.
func (b *Board) GroupByCategory() []CategoryCount {
	return GroupByCategory(b.Items())
}

// RatingBuckets counts items per rating 1..5. Index 0 holds ratings 1.
func RatingBuckets(items []model.Feedback) [5]int {
	var buckets [5]int
	for _, it := range items {
		if it.Rating >= 1 && it.Rating <= 5 {
			buckets[it.Rating-1]++
		}
	}
	return buckets
}

// StatusCounts counts items per status. Every status has an entry.
func StatusCounts(items []model.Feedback) map[model.FeedbackStatus]int {
	counts := make(map[model.FeedbackStatus]int, len(model.Statuses))
	for _, s := range model.Statuses {
		counts[s] = 0
	}
	for _, it := range items {
		counts[it.Status]++
	}
	return counts
}

// MonthlyPoint is one month of the trend chart.
type MonthlyPoint struct {
	Month     string `json:"month"`
	Label     string `json:"label"`
	Submitted int    `json:"submitted"`
	Resolved  int    `json:"resolved"`
}

// Stats is the dashboard aggregate.
type Stats struct {
	Total         int                          `json:"total"`
	ByStatus      map[model.FeedbackStatus]int `json:"byStatus"`
	AverageRating decimal.Decimal              `json:"averageRating"`
	Recent        []model.Feedback             `json:"recentActivity"`
	ByCategory    []CategoryCount              `json:"byCategory"`
	RatingBuckets [5]int                       `json:"ratingBuckets"`
	Trend         []MonthlyPoint               `json:"monthlyTrend"`
}

// RecentLimit is how many items the recent activity list shows.
const RecentLimit = 5

// ComputeStats aggregates items.
func ComputeStats(items []model.Feedback) Stats {
	stats := Stats{
		Total:         len(items),
		ByStatus:      StatusCounts(items),
		AverageRating: AverageRating(items),
		Recent:        Recent(items, RecentLimit),
		ByCategory:    GroupByCategory(items),
		RatingBuckets: RatingBuckets(items),
		Trend:         MonthlyTrend(items),
	}
	return stats
}

// Stats aggregates the held items.
func (b *Board) Stats() Stats {
	return ComputeStats(b.Items())
}

// AverageRating is the mean rating rounded to two places, zero for no items.
func AverageRating(items []model.Feedback) decimal.Decimal {
	if len(items) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(decimal.NewFromInt(int64(it.Rating)))
	}
	return sum.Div(decimal.NewFromInt(int64(len(items)))).Round(2)
}

// Recent returns up to limit items, newest first.
func Recent(items []model.Feedback, limit int) []model.Feedback {
	cp := make([]model.Feedback, len(items))
	copy(cp, items)
	sort.SliceStable(cp, func(i, j int) bool {
		return cp[i].CreatedAt.After(cp[j].CreatedAt.Time)
	})
	if len(cp) > limit {
		cp = cp[:limit]
	}
	return cp
}

// MonthlyTrend counts submitted and resolved (approved or rejected) items per
// calendar month of creation, oldest month first. Items without a timestamp are skipped.
func MonthlyTrend(items []model.Feedback) []MonthlyPoint {
	points := map[string]*MonthlyPoint{}
	for _, it := range items {
		if it.CreatedAt.IsZero() {
			continue
		}
		month := time.Date(it.CreatedAt.Year(), it.CreatedAt.Month(), 1, 0, 0, 0, 0, time.UTC)
		key := month.Format("2006-01")
		p, ok := points[key]
		if !ok {
			p = &MonthlyPoint{Month: key, Label: month.Format("Jan")}
			points[key] = p
		}
		p.Submitted++
		if it.Status == model.StatusApproved || it.Status == model.StatusRejected {
			p.Resolved++
		}
	}

	out := make([]MonthlyPoint, 0, len(points))
	for _, p := range points {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
