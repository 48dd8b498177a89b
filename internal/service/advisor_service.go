package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dom/hero-companion/internal/domain"
	"github.com/dom/hero-companion/internal/engine"
	"github.com/dom/hero-companion/internal/repository"
	"github.com/google/uuid"
)

var ErrInvalidSpendProfile = errors.New("invalid spend profile")

const maxSimulationDays = 365

// AdvisorService runs the engine over a user's stored profile and the catalog
type AdvisorService struct {
	catalog  repository.CatalogProvider
	profiles *ProfileService
	clock    engine.Clock
}

func NewAdvisorService(catalog repository.CatalogProvider, profiles *ProfileService, clock engine.Clock) *AdvisorService {
	return &AdvisorService{
		catalog:  catalog,
		profiles: profiles,
		clock:    clock,
	}
}

// QueueInfluence is the influence of one formation
type QueueInfluence struct {
	QueueID   string `json:"queueId"`
	Name      string `json:"name"`
	Influence int    `json:"influence"`
}

// InfluenceSummary breaks total influence down by formation
type InfluenceSummary struct {
	Queues       []QueueInfluence `json:"queues"`
	Total        int              `json:"total"`
	TrendPercent float64          `json:"trendPercent"`
}

// EventView is a catalog event with its live state
type EventView struct {
	domain.GameEvent
	State     engine.EventState `json:"state"`
	Countdown string            `json:"countdown"`
}

func (s *AdvisorService) calculator(ctx context.Context) (*engine.InfluenceCalculator, error) {
	equipment, err := s.catalog.GetEquipment(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load equipment: %w", err)
	}
	return engine.NewInfluenceCalculator(engine.NewEquipmentCatalog(equipment.Pets, equipment.Relics, equipment.Skins)), nil
}

func (s *AdvisorService) Influence(ctx context.Context, userID uuid.UUID) (*InfluenceSummary, error) {
	data, err := s.profiles.GetUserData(ctx, userID)
	if err != nil {
		return nil, err
	}
	calc, err := s.calculator(ctx)
	if err != nil {
		return nil, err
	}
	history, err := s.profiles.History(ctx, userID, data)
	if err != nil {
		return nil, err
	}

	summary := &InfluenceSummary{
		Queues:       make([]QueueInfluence, 0, len(data.Queues)),
		Total:        calc.TotalInfluence(data),
		TrendPercent: engine.ProgressTrendPercent(history),
	}
	for i := range data.Queues {
		q := &data.Queues[i]
		summary.Queues = append(summary.Queues, QueueInfluence{
			QueueID:   q.ID,
			Name:      q.Name,
			Influence: calc.QueueInfluence(q, data.Roster),
		})
	}
	return summary, nil
}

func (s *AdvisorService) Upgrades(ctx context.Context, userID uuid.UUID, limit int) ([]engine.UpgradeRecommendation, error) {
	data, err := s.profiles.GetUserData(ctx, userID)
	if err != nil {
		return nil, err
	}
	return engine.RecommendUpgrades(data, limit), nil
}

func (s *AdvisorService) Resources(ctx context.Context, userID uuid.UUID) (*engine.ResourcePlan, error) {
	data, err := s.profiles.GetUserData(ctx, userID)
	if err != nil {
		return nil, err
	}
	plan := engine.BuildResourcePlan(data)
	return &plan, nil
}

// Simulate projects influence days ahead. An empty profile uses the stored one;
// anything else must name a known spend profile.
func (s *AdvisorService) Simulate(ctx context.Context, userID uuid.UUID, days int, profile string) (*engine.SimulationResult, error) {
	var target *domain.SpendProfile
	if profile != "" {
		p, ok := domain.ParseSpendProfile(profile)
		if !ok {
			return nil, ErrInvalidSpendProfile
		}
		target = &p
	}
	if days > maxSimulationDays {
		days = maxSimulationDays
	}

	data, err := s.profiles.GetUserData(ctx, userID)
	if err != nil {
		return nil, err
	}
	calc, err := s.calculator(ctx)
	if err != nil {
		return nil, err
	}

	result := engine.Simulate(calc, engine.SimulationInput{
		Days:               days,
		UserData:           data,
		TargetSpendProfile: target,
	})
	return &result, nil
}

func (s *AdvisorService) EventStrategies(ctx context.Context, userID uuid.UUID) ([]engine.EventStrategy, error) {
	data, err := s.profiles.GetUserData(ctx, userID)
	if err != nil {
		return nil, err
	}
	events, err := s.catalog.GetEvents(ctx)
	if err != nil {
		return nil, err
	}
	return engine.RecommendEventStrategies(data, engine.SortByNextOccurrence(events), s.clock.Now()), nil
}

// EventBoard lists catalog events by next occurrence with their live state
func (s *AdvisorService) EventBoard(ctx context.Context) ([]EventView, error) {
	events, err := s.catalog.GetEvents(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	sorted := engine.SortByNextOccurrence(events)
	views := make([]EventView, len(sorted))
	for i, e := range sorted {
		views[i] = EventView{
			GameEvent: e,
			State:     engine.ComputeEventState(e, now),
			Countdown: engine.TimeUntilEvent(e.NextOccurrence, now),
		}
	}
	return views, nil
}

// Event returns one catalog event with its live state
func (s *AdvisorService) Event(ctx context.Context, id string) (*EventView, error) {
	events, err := s.catalog.GetEvents(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	for _, e := range events {
		if e.ID == id {
			return &EventView{
				GameEvent: e,
				State:     engine.ComputeEventState(e, now),
				Countdown: engine.TimeUntilEvent(e.NextOccurrence, now),
			}, nil
		}
	}
	return nil, ErrEventNotFound
}

// ResetCountdown formats the time left until the next daily reset
func (s *AdvisorService) ResetCountdown() string {
	return engine.TimeUntilReset(s.clock.Now())
}
