package services

import (
	"fmt"
	"time"

	"github.com/VRCMedia/vrcsite-go/internal/domain/entities/content"
	"github.com/VRCMedia/vrcsite-go/internal/domain/repositories"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/security"
)

// PostService orchestrates blog post operations. Posts are the one
// collection that supports unpublishing instead of hard deletion.
type PostService struct {
	repo   repositories.PostRepository
	logger *logging.ChanneledLogger
}

// NewPostService creates a new post service singleton
func NewPostService(repo repositories.PostRepository, logger *logging.ChanneledLogger) *PostService {
	return &PostService{
		repo:   repo,
		logger: logger,
	}
}

// GetAll returns all posts
func (s *PostService) GetAll() ([]*content.PostNode, error) {
	start := time.Now()

	posts, err := s.repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}

	s.logger.Content().Info("Successfully retrieved posts", "count", len(posts), "duration", time.Since(start))
	return posts, nil
}

// GetByID returns a post by ID, nil when not found
func (s *PostService) GetByID(id string) (*content.PostNode, error) {
	if id == "" {
		return nil, fmt.Errorf("post ID cannot be empty")
	}
	return s.repo.FindByID(id)
}

// GetBySlug returns a post by slug, nil when not found
func (s *PostService) GetBySlug(slug string) (*content.PostNode, error) {
	if slug == "" {
		return nil, fmt.Errorf("post slug cannot be empty")
	}
	return s.repo.FindBySlug(slug)
}

// Create stores a new post, assigning an ID when absent
func (s *PostService) Create(post *content.PostNode) error {
	if post == nil {
		return fmt.Errorf("post cannot be nil")
	}
	if post.ID == "" {
		post.ID = security.GenerateULID()
	}
	if post.Status == "" {
		post.Status = "draft"
	}
	post.Created = time.Now().UTC()
	post.NodeType = "Post"

	if err := s.repo.Store(post); err != nil {
		return err
	}

	s.logger.Content().Info("Post created", "id", post.ID, "slug", post.Slug)
	return nil
}

// Update persists changes to an existing post
func (s *PostService) Update(post *content.PostNode) error {
	if post == nil || post.ID == "" {
		return fmt.Errorf("post ID cannot be empty")
	}
	existing, err := s.repo.FindByID(post.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("post %s not found", post.ID)
	}
	now := time.Now().UTC()
	post.Changed = &now

	if err := s.repo.Update(post); err != nil {
		return err
	}

	s.logger.Content().Info("Post updated", "id", post.ID)
	return nil
}

// Unpublish flips a post back to draft. The row and its relationship
// fields stay intact, so other posts that point at it keep their links.
func (s *PostService) Unpublish(id string) error {
	if id == "" {
		return fmt.Errorf("post ID cannot be empty")
	}

	if err := s.repo.SetStatus(id, "draft"); err != nil {
		return err
	}

	s.logger.Content().Info("Post unpublished", "id", id)
	return nil
}
