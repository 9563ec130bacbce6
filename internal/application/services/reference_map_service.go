package services

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/VRCMedia/vrcsite-go/internal/domain/relationships"
	"github.com/VRCMedia/vrcsite-go/internal/domain/repositories"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
)

// ReferenceMapPayload maps, per collection, each document ID to the IDs of
// the documents that reference it. Documents nobody references map to an
// empty list, which is how the admin UI spots orphans.
type ReferenceMapPayload struct {
	Products     map[string][]string `json:"products"`
	Events       map[string][]string `json:"events"`
	Posts        map[string][]string `json:"posts"`
	Technologies map[string][]string `json:"technologies"`
	Status       string              `json:"status"`
}

// ReferenceMapService builds the inbound-reference map across every
// collection that can be the target of a relationship field.
type ReferenceMapService struct {
	products     repositories.ProductRepository
	events       repositories.EventRepository
	posts        repositories.PostRepository
	projects     repositories.ProjectRepository
	technologies repositories.TechnologyRepository
	logger       *logging.ChanneledLogger
}

// NewReferenceMapService creates a new reference map service singleton
func NewReferenceMapService(
	products repositories.ProductRepository,
	events repositories.EventRepository,
	posts repositories.PostRepository,
	projects repositories.ProjectRepository,
	technologies repositories.TechnologyRepository,
	logger *logging.ChanneledLogger,
) *ReferenceMapService {
	return &ReferenceMapService{
		products:     products,
		events:       events,
		posts:        posts,
		projects:     projects,
		technologies: technologies,
		logger:       logger,
	}
}

// GetReferenceMap computes the full inbound-reference map and its ETag.
func (s *ReferenceMapService) GetReferenceMap() (*ReferenceMapPayload, string, error) {
	start := time.Now()

	payload := &ReferenceMapPayload{
		Products:     make(map[string][]string),
		Events:       make(map[string][]string),
		Posts:        make(map[string][]string),
		Technologies: make(map[string][]string),
		Status:       "complete",
	}

	products, err := s.products.FindAll()
	if err != nil {
		return nil, "", fmt.Errorf("failed to scan product references: %w", err)
	}
	for _, p := range products {
		ensureEntry(payload.Products, p.ID)
		addInbound(payload.Products, p.ID, relationships.IDs(p.RelatedProducts))
	}

	events, err := s.events.FindAll()
	if err != nil {
		return nil, "", fmt.Errorf("failed to scan event references: %w", err)
	}
	for _, e := range events {
		ensureEntry(payload.Events, e.ID)
		addInbound(payload.Events, e.ID, relationships.IDs(e.RelatedEvents))
	}

	posts, err := s.posts.FindAll()
	if err != nil {
		return nil, "", fmt.Errorf("failed to scan post references: %w", err)
	}
	for _, p := range posts {
		ensureEntry(payload.Posts, p.ID)
		addInbound(payload.Posts, p.ID, relationships.IDs(p.RelatedPosts))
	}

	technologies, err := s.technologies.FindAll()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list technologies: %w", err)
	}
	for _, t := range technologies {
		ensureEntry(payload.Technologies, t.ID)
	}
	projects, err := s.projects.FindAll()
	if err != nil {
		return nil, "", fmt.Errorf("failed to scan project references: %w", err)
	}
	for _, p := range projects {
		addInbound(payload.Technologies, p.ID, relationships.IDs(p.Technologies))
	}

	sortReferenceLists(payload)
	etag := generateReferenceMapETag(payload)

	s.logger.Content().Info("Successfully computed reference map",
		"products", len(payload.Products), "events", len(payload.Events),
		"posts", len(payload.Posts), "technologies", len(payload.Technologies),
		"etag", etag, "duration", time.Since(start))

	return payload, etag, nil
}

func ensureEntry(m map[string][]string, id string) {
	if _, ok := m[id]; !ok {
		m[id] = []string{}
	}
}

// addInbound records sourceID as a referrer of every target it points at.
func addInbound(m map[string][]string, sourceID string, targets []string) {
	for _, target := range targets {
		if target == "" || target == sourceID {
			continue
		}
		m[target] = append(m[target], sourceID)
	}
}

func sortReferenceLists(payload *ReferenceMapPayload) {
	for _, m := range []map[string][]string{payload.Products, payload.Events, payload.Posts, payload.Technologies} {
		for id := range m {
			sort.Strings(m[id])
		}
	}
}

func generateReferenceMapETag(payload *ReferenceMapPayload) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%q", time.Now().UnixNano())
	}
	return fmt.Sprintf("%q", fmt.Sprintf("%x", md5.Sum(data)))
}
