package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/elnathantransportes-ai/troca/services/catalog/internal/entity"
)

func baseListing(id string) *entity.Listing {
	return &entity.Listing{
		ID:          id,
		Status:      entity.StatusActive,
		OwnerRegion: "Curitiba - PR",
		CreatedAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestScore_HighlightDominates(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	plain := baseListing("a")
	plain.Likes = 100
	plain.Views = 300
	plain.Rating = 4.5

	highlighted := baseListing("b")
	highlighted.IsHighlight = true

	assert.Greater(t, Score(highlighted, "", now), Score(plain, "", now))
}

func TestScore_LocalityBoost(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	local := baseListing("a")
	remote := baseListing("b")
	remote.OwnerRegion = "Manaus - AM"

	assert.Equal(t, float64(localityBoost), Score(local, "curitiba", now)-Score(remote, "curitiba", now))
	assert.Equal(t, Score(local, "", now), Score(remote, "", now))
}

func TestScore_EngagementMonotonic(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	a := baseListing("a")
	b := baseListing("b")
	b.Likes = a.Likes + 1

	assert.Greater(t, Score(b, "", now), Score(a, "", now))

	c := baseListing("c")
	c.Views = a.Views + 1
	assert.Greater(t, Score(c, "", now), Score(a, "", now))

	d := baseListing("d")
	d.Rating = a.Rating + 0.5
	assert.Greater(t, Score(d, "", now), Score(a, "", now))
}

func TestScore_AgeDecay(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	fresh := baseListing("a")
	stale := baseListing("b")
	stale.CreatedAt = fresh.CreatedAt.Add(-10 * time.Hour)

	assert.Equal(t, float64(10*ageDecayPerHr), Score(fresh, "", now)-Score(stale, "", now))
}

func TestScore_FutureCreatedAtBoosts(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	present := baseListing("a")
	future := baseListing("b")
	future.CreatedAt = now.Add(3 * time.Hour)

	assert.Greater(t, Score(future, "", now), Score(present, "", now))
}

func TestSortByScore_StableOnTies(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	first := baseListing("first")
	second := baseListing("second")
	third := baseListing("third")
	listings := []*entity.Listing{first, second, third}

	SortByScore(listings, "", now)

	assert.Equal(t, []string{"first", "second", "third"},
		[]string{listings[0].ID, listings[1].ID, listings[2].ID})
}
