package usecase

import (
	"strings"
	"time"

	"github.com/elnathantransportes-ai/troca/services/catalog/internal/entity"
)

// PageSize is the fixed window the feed grows by on each request.
const PageSize = 5

// AssembleFeed runs the full feed pipeline over a candidate set: visibility,
// text search, structural filters, ranking, pagination. pageIndex starts at 1
// and each page returns the whole prefix [0, PageSize*pageIndex), so earlier
// items never shift as the viewer scrolls.
func AssembleFeed(listings []*entity.Listing, term string, filters entity.FeedFilters, viewerCity string, pageIndex int, now time.Time) entity.FeedPage {
	filtered := make([]*entity.Listing, 0, len(listings))
	for _, l := range listings {
		if l.Status != entity.StatusActive {
			continue
		}
		if !matchesTerm(l, term) {
			continue
		}
		if !matchesFilters(l, filters) {
			continue
		}
		filtered = append(filtered, l)
	}

	SortByScore(filtered, viewerCity, now)

	if pageIndex < 1 {
		pageIndex = 1
	}
	end := PageSize * pageIndex
	hasMore := true
	if end >= len(filtered) {
		end = len(filtered)
		hasMore = false
	}

	return entity.FeedPage{
		Items:   filtered[:end],
		HasMore: hasMore,
		Total:   len(filtered),
	}
}

// matchesTerm OR-matches the search term against title, description, trade
// interest and category. An empty term matches everything.
func matchesTerm(l *entity.Listing, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(l.Title), term) ||
		strings.Contains(strings.ToLower(l.Description), term) ||
		strings.Contains(strings.ToLower(l.TradeInterest), term) ||
		strings.Contains(strings.ToLower(l.Category), term)
}

// matchesFilters applies the structural filters as a conjunction. A listing
// of type BOTH satisfies either a TRADE or a SELL filter.
func matchesFilters(l *entity.Listing, f entity.FeedFilters) bool {
	if f.Type != "" && l.Type != f.Type && l.Type != entity.TypeBoth {
		return false
	}
	if f.Condition != "" && l.Condition != f.Condition {
		return false
	}
	if f.Category != "" && !strings.EqualFold(l.Category, f.Category) {
		return false
	}
	if f.Region != "" &&
		!strings.Contains(strings.ToLower(l.OwnerRegion), strings.ToLower(f.Region)) {
		return false
	}
	if f.MinPrice != nil && l.Value < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && l.Value > *f.MaxPrice {
		return false
	}
	return true
}
