package usecase

import (
	"sort"
	"strings"
	"time"

	"github.com/elnathantransportes-ai/troca/services/catalog/internal/entity"
)

// Ranking weights. Highlight dominates everything, locality beats engagement,
// and age bleeds score at 2 points per hour so the feed keeps rotating.
const (
	highlightBoost = 5000
	localityBoost  = 2000
	ratingWeight   = 500
	likeWeight     = 10
	viewWeight     = 1
	ageDecayPerHr  = 2
)

// Score ranks a listing for a viewer at a given instant. A created_at in the
// future yields negative age and therefore a higher score; callers pass
// whatever timestamp the row carries.
func Score(l *entity.Listing, viewerCity string, now time.Time) float64 {
	score := 0.0

	if l.IsHighlight {
		score += highlightBoost
	}

	if viewerCity != "" &&
		strings.Contains(strings.ToLower(l.OwnerRegion), strings.ToLower(viewerCity)) {
		score += localityBoost
	}

	score += l.Rating * ratingWeight
	score += float64(l.Likes) * likeWeight
	score += float64(l.Views) * viewWeight

	hours := now.Sub(l.CreatedAt).Hours()
	score -= hours * ageDecayPerHr

	return score
}

// SortByScore orders listings by descending score. The sort is stable so
// listings with equal scores keep their input order.
func SortByScore(listings []*entity.Listing, viewerCity string, now time.Time) {
	scores := make(map[string]float64, len(listings))
	for _, l := range listings {
		scores[l.ID] = Score(l, viewerCity, now)
	}
	sort.SliceStable(listings, func(i, j int) bool {
		return scores[listings[i].ID] > scores[listings[j].ID]
	})
}
