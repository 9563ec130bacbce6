// Package repositories defines the repository interfaces for content entities.
// These repositories abstract the data persistence details, ensuring the core
// application is clean and decoupled from the database.
package repositories

import (
	"github.com/VRCMedia/vrcsite-go/internal/domain/entities/content"
	"github.com/VRCMedia/vrcsite-go/internal/domain/relationships"
)

type ProductRepository interface {
	FindByID(id string) (*content.ProductNode, error)
	FindBySlug(slug string) (*content.ProductNode, error)
	FindAll() ([]*content.ProductNode, error)
	FindByIDs(ids []string) ([]*content.ProductNode, error)
	Store(product *content.ProductNode) error
	Update(product *content.ProductNode) error
}

type EventRepository interface {
	FindByID(id string) (*content.EventNode, error)
	FindBySlug(slug string) (*content.EventNode, error)
	FindAll() ([]*content.EventNode, error)
	FindByIDs(ids []string) ([]*content.EventNode, error)
	Store(event *content.EventNode) error
	Update(event *content.EventNode) error
}

type PostRepository interface {
	FindByID(id string) (*content.PostNode, error)
	FindBySlug(slug string) (*content.PostNode, error)
	FindAll() ([]*content.PostNode, error)
	FindByIDs(ids []string) ([]*content.PostNode, error)
	Store(post *content.PostNode) error
	Update(post *content.PostNode) error
	SetStatus(id, status string) error
}

type ProjectRepository interface {
	FindByID(id string) (*content.ProjectNode, error)
	FindBySlug(slug string) (*content.ProjectNode, error)
	FindAll() ([]*content.ProjectNode, error)
	Store(project *content.ProjectNode) error
	Update(project *content.ProjectNode) error
}

type ServiceRepository interface {
	FindByID(id string) (*content.ServiceNode, error)
	FindBySlug(slug string) (*content.ServiceNode, error)
	FindAll() ([]*content.ServiceNode, error)
	Store(service *content.ServiceNode) error
	Update(service *content.ServiceNode) error
}

type TechnologyRepository interface {
	FindByID(id string) (*content.TechnologyNode, error)
	FindBySlug(slug string) (*content.TechnologyNode, error)
	FindAll() ([]*content.TechnologyNode, error)
	Store(technology *content.TechnologyNode) error
	Update(technology *content.TechnologyNode) error
}

type PartnerRepository interface {
	FindByID(id string) (*content.PartnerNode, error)
	FindAll() ([]*content.PartnerNode, error)
	Store(partner *content.PartnerNode) error
	Update(partner *content.PartnerNode) error
}

type MenuRepository interface {
	FindByID(id string) (*content.MenuNode, error)
	FindAll() ([]*content.MenuNode, error)
	Store(menu *content.MenuNode) error
	Update(menu *content.MenuNode) error
}

type CompanyInfoRepository interface {
	Get() (*content.CompanyInfoNode, error)
	Put(info *content.CompanyInfoNode) error
}

// ReferenceHit is one document whose relationship field currently holds the
// scanned-for target ID, together with the field's raw stored value.
type ReferenceHit struct {
	ID    string
	Value any
}

// DeletionStore is the storage surface the delete workflow runs against. It
// is collection-generic so one orchestrator serves every collection that
// supports hard deletes.
type DeletionStore interface {
	// DisplayName resolves a document's human-readable name. found is false
	// when no document with that ID exists.
	DisplayName(collection, id string) (name string, found bool, err error)

	// Delete removes a document. found is false when the ID did not exist,
	// which callers report as a not-found failure rather than an error.
	Delete(collection, id string) (found bool, err error)

	// FindReferencing returns every other document whose relationship field
	// named by link still contains targetID, deduplicated by document ID.
	FindReferencing(link relationships.Link, targetID string) ([]ReferenceHit, error)

	// UpdateReference persists a rewritten relationship value on one
	// referencing document.
	UpdateReference(link relationships.Link, docID string, value any) error
}
