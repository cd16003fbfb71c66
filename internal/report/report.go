package report

import (
	"encoding/json"
	"fmt"

	"github.com/frahmantamala/cost-manager/internal/expense"
)

// CanonicalCategories always appear in every report, in this order, even
// when empty, so clients can render a stable table.
var CanonicalCategories = []string{"food", "health", "housing", "sports", "education"}

// CostItem is one expense as it appears inside a report bucket.
type CostItem struct {
	Sum         float64 `json:"sum"`
	Description string  `json:"description"`
	Day         int     `json:"day"`
}

// Bucket holds the items of one category. It marshals as a single-key
// object so the report serializes as an ordered category list.
type Bucket struct {
	Category string
	Items    []CostItem
}

func (b Bucket) MarshalJSON() ([]byte, error) {
	items := b.Items
	if items == nil {
		items = []CostItem{}
	}
	return json.Marshal(map[string][]CostItem{b.Category: items})
}

func (b *Bucket) UnmarshalJSON(data []byte) error {
	var raw map[string][]CostItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return fmt.Errorf("report bucket must have exactly one category, got %d", len(raw))
	}
	for category, items := range raw {
		b.Category = category
		b.Items = items
	}
	return nil
}

// CategorizedReport is the ordered sequence of category buckets.
type CategorizedReport []Bucket

// Build computes the categorized report for one user-month from the raw
// records of that period. Pure and deterministic: canonical categories
// first, then any extra categories in first-seen order.
func Build(records []expense.Expense) CategorizedReport {
	order := make([]string, 0, len(CanonicalCategories))
	index := make(map[string]int, len(CanonicalCategories))

	addCategory := func(category string) int {
		if i, ok := index[category]; ok {
			return i
		}
		index[category] = len(order)
		order = append(order, category)
		return index[category]
	}

	for _, category := range CanonicalCategories {
		addCategory(category)
	}
	for _, rec := range records {
		addCategory(rec.Category)
	}

	buckets := make(CategorizedReport, len(order))
	for i, category := range order {
		buckets[i] = Bucket{Category: category, Items: []CostItem{}}
	}

	for _, rec := range records {
		i, ok := index[rec.Category]
		if !ok {
			// unreachable given the scan above, but create on demand anyway
			i = len(buckets)
			index[rec.Category] = i
			buckets = append(buckets, Bucket{Category: rec.Category, Items: []CostItem{}})
		}
		buckets[i].Items = append(buckets[i].Items, CostItem{
			Sum:         rec.Sum,
			Description: rec.Description,
			Day:         rec.CreatedAt.Day(),
		})
	}

	return buckets
}
