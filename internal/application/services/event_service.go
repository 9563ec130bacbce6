package services

import (
	"fmt"
	"time"

	"github.com/VRCMedia/vrcsite-go/internal/domain/entities/content"
	"github.com/VRCMedia/vrcsite-go/internal/domain/repositories"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/security"
)

// EventService orchestrates event operations with cache-first repository pattern
type EventService struct {
	repo   repositories.EventRepository
	logger *logging.ChanneledLogger
}

// NewEventService creates a new event service singleton
func NewEventService(repo repositories.EventRepository, logger *logging.ChanneledLogger) *EventService {
	return &EventService{
		repo:   repo,
		logger: logger,
	}
}

// GetAll returns all events
func (s *EventService) GetAll() ([]*content.EventNode, error) {
	start := time.Now()

	events, err := s.repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	s.logger.Content().Info("Successfully retrieved events", "count", len(events), "duration", time.Since(start))
	return events, nil
}

// GetByID returns an event by ID, nil when not found
func (s *EventService) GetByID(id string) (*content.EventNode, error) {
	if id == "" {
		return nil, fmt.Errorf("event ID cannot be empty")
	}
	return s.repo.FindByID(id)
}

// GetBySlug returns an event by slug, nil when not found
func (s *EventService) GetBySlug(slug string) (*content.EventNode, error) {
	if slug == "" {
		return nil, fmt.Errorf("event slug cannot be empty")
	}
	return s.repo.FindBySlug(slug)
}

// Create stores a new event, assigning an ID when absent
func (s *EventService) Create(event *content.EventNode) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.ID == "" {
		event.ID = security.GenerateULID()
	}
	if event.Status == "" {
		event.Status = "draft"
	}
	event.Created = time.Now().UTC()
	event.NodeType = "Event"

	if err := s.repo.Store(event); err != nil {
		return err
	}

	s.logger.Content().Info("Event created", "id", event.ID, "slug", event.Slug)
	return nil
}

// Update persists changes to an existing event
func (s *EventService) Update(event *content.EventNode) error {
	if event == nil || event.ID == "" {
		return fmt.Errorf("event ID cannot be empty")
	}
	existing, err := s.repo.FindByID(event.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("event %s not found", event.ID)
	}
	now := time.Now().UTC()
	event.Changed = &now

	if err := s.repo.Update(event); err != nil {
		return err
	}

	s.logger.Content().Info("Event updated", "id", event.ID)
	return nil
}
