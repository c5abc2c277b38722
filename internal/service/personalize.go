package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Zubair-hussain/xovato-tech/internal/domain"
	"github.com/Zubair-hussain/xovato-tech/internal/personalize"
	"github.com/Zubair-hussain/xovato-tech/internal/repository"
)

// PersonalizeService assembles the regional review wall for the landing
// globe: which region is active, which country to show, and the reviews for
// it, falling back to demo cards when the store has nothing approved.
type PersonalizeService struct {
	repo   repository.ReviewRepository
	engine *personalize.Engine
	logger *slog.Logger
}

// NewPersonalizeService creates a new personalization service.
func NewPersonalizeService(repo repository.ReviewRepository, engine *personalize.Engine, logger *slog.Logger) *PersonalizeService {
	return &PersonalizeService{
		repo:   repo,
		engine: engine,
		logger: logger,
	}
}

// PersonalizeInput holds the visitor state driving personalization. Progress
// is the scroll position in [0, 1]; a negative value means the visitor has
// not scrolled yet and the region is picked from their country instead.
type PersonalizeInput struct {
	CountryCode string
	Category    string
	Progress    float64
}

// Review sources.
const (
	SourceStore = "store"
	SourceDemo  = "demo"
)

// PersonalizeResult is the assembled wall state.
type PersonalizeResult struct {
	RegionIndex  int                `json:"region_index"`
	Region       personalize.Region `json:"region"`
	CountryCode  string             `json:"country_code"`
	Source       string             `json:"source"`
	Reviews      []domain.Review    `json:"reviews"`
	VisibleCards [4]bool            `json:"visible_cards"`
	ActiveCard   int                `json:"active_card"`
}

// Personalize resolves the active region and its reviews. A store failure is
// not surfaced to the visitor; the demo cards stand in so the wall always
// renders.
func (s *PersonalizeService) Personalize(ctx context.Context, in PersonalizeInput) *PersonalizeResult {
	countryCode := strings.ToUpper(strings.TrimSpace(in.CountryCode))
	if countryCode == "" {
		countryCode = "PK"
	}

	var regionIndex int
	if in.Progress < 0 {
		regionIndex = personalize.RegionIndexForCountry(countryCode)
	} else {
		regionIndex = personalize.RegionIndexForProgress(in.Progress)
	}

	country := personalize.CountryForRegion(regionIndex, countryCode)

	source := SourceStore
	reviews, err := s.repo.SelectApproved(ctx, country, in.Category, 50)
	if err != nil {
		s.logger.WarnContext(ctx, "approved review fetch failed, serving demo cards",
			slog.String("country_code", country),
			slog.String("error", err.Error()),
		)
		reviews = nil
	}
	if len(reviews) == 0 {
		source = SourceDemo
		reviews = s.engine.DemoReviews(country, in.Category)
	}

	progress := in.Progress
	if progress < 0 {
		progress = 0
	}

	return &PersonalizeResult{
		RegionIndex:  regionIndex,
		Region:       personalize.Regions[regionIndex],
		CountryCode:  country,
		Source:       source,
		Reviews:      reviews,
		VisibleCards: personalize.CardVisibility(progress),
		ActiveCard:   personalize.ActiveCardIndex(progress),
	}
}
