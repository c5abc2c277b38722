package personalize

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Zubair-hussain/xovato-tech/internal/domain"
)

// reviewTemplate is one of the canned reviews used when a country has no
// approved submissions yet.
type reviewTemplate struct {
	title   string
	comment string
	rating  int
}

var reviewTemplates = []reviewTemplate{
	{
		title:   "Premium UI & smooth flow",
		comment: "Animations feel clean and modern. The layout is fast, responsive, and the overall experience feels premium.",
		rating:  5,
	},
	{
		title:   "Super professional delivery",
		comment: "Communication was clear, changes were handled quickly, and the final result looked exactly as expected.",
		rating:  5,
	},
	{
		title:   "Solid work & great support",
		comment: "A couple of tweaks were needed, but everything was fixed fast and the project was delivered on time.",
		rating:  4,
	},
	{
		title:   "Highly recommended",
		comment: "Design is modern, performance is strong, and the attention to detail is excellent. Would work again.",
		rating:  5,
	},
}

// Engine synthesizes demo reviews for countries that have no approved
// submissions yet.
type Engine struct {
	rng *rand.Rand
	now func() time.Time
}

// NewEngine creates an engine with a randomized people shuffle.
func NewEngine() *Engine {
	return &Engine{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now: time.Now,
	}
}

// pickPeople selects count distinct people matching the country, falling back
// to the whole dataset when the country has no entries.
func (e *Engine) pickPeople(countryCode string, count int) []Person {
	target := CountryName(countryCode)

	var pool []Person
	for _, p := range people {
		if p.Country == target {
			pool = append(pool, p)
		}
	}
	if len(pool) == 0 {
		pool = people
	}

	shuffled := make([]Person, len(pool))
	copy(shuffled, pool)
	e.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if len(shuffled) > count {
		shuffled = shuffled[:count]
	}
	return shuffled
}

// DemoReviews builds the four canned reviews for a country. Each carries a
// synthetic id, an approved status, and a creation time staggered one day
// apart so the cards read as recent history.
func (e *Engine) DemoReviews(countryCode, category string) []domain.Review {
	persons := e.pickPeople(countryCode, len(reviewTemplates))
	now := e.now().UTC()

	reviews := make([]domain.Review, 0, len(reviewTemplates))
	for i, t := range reviewTemplates {
		name := "Guest User"
		image := ""
		if i < len(persons) {
			name = persons[i].Name
			image = persons[i].Image
		}

		reviews = append(reviews, domain.Review{
			ID:          fmt.Sprintf("demo-%s-%d", countryCode, i),
			CountryCode: countryCode,
			Category:    category,
			Rating:      t.rating,
			Title:       t.title,
			Comment:     t.comment,
			Status:      domain.StatusApproved,
			CreatedAt:   now.Add(-time.Duration(i+1) * 24 * time.Hour),
			DisplayName: name,
			Image:       image,
		})
	}
	return reviews
}
