// Package content defines the application's core content-related domain entities.
package content

import (
	"time"

	"github.com/VRCMedia/vrcsite-go/internal/domain/relationships"
)

type ProductNode struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	NodeType        string               `json:"nodeType"`
	Slug            string               `json:"slug"`
	Excerpt         *string              `json:"excerpt,omitempty"`
	Description     map[string]any       `json:"description,omitempty"`
	Category        *string              `json:"category,omitempty"`
	Featured        bool                 `json:"featured"`
	Status          string               `json:"status"`
	RelatedProducts []*relationships.Ref `json:"relatedProducts"`
	Created         time.Time            `json:"created"`
	Changed         *time.Time           `json:"changed,omitempty"`
}

type EventNode struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	NodeType      string               `json:"nodeType"`
	Slug          string               `json:"slug"`
	Summary       *string              `json:"summary,omitempty"`
	Location      *string              `json:"location,omitempty"`
	StartDate     *time.Time           `json:"startDate,omitempty"`
	EndDate       *time.Time           `json:"endDate,omitempty"`
	Status        string               `json:"status"`
	RelatedEvents []*relationships.Ref `json:"relatedEvents"`
	Created       time.Time            `json:"created"`
	Changed       *time.Time           `json:"changed,omitempty"`
}

type PostNode struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	NodeType     string               `json:"nodeType"`
	Slug         string               `json:"slug"`
	Excerpt      *string              `json:"excerpt,omitempty"`
	Body         map[string]any       `json:"body,omitempty"`
	Status       string               `json:"status"`
	RelatedPosts []*relationships.Ref `json:"relatedPosts"`
	PublishedAt  *time.Time           `json:"publishedAt,omitempty"`
	Created      time.Time            `json:"created"`
	Changed      *time.Time           `json:"changed,omitempty"`
}

type ProjectNode struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	NodeType     string               `json:"nodeType"`
	Slug         string               `json:"slug"`
	Summary      *string              `json:"summary,omitempty"`
	Client       *string              `json:"client,omitempty"`
	Year         *int                 `json:"year,omitempty"`
	Status       string               `json:"status"`
	Technologies []*relationships.Ref `json:"technologies"`
	Created      time.Time            `json:"created"`
	Changed      *time.Time           `json:"changed,omitempty"`
}

type ServiceNode struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	NodeType string         `json:"nodeType"`
	Slug     string         `json:"slug"`
	Summary  *string        `json:"summary,omitempty"`
	Body     map[string]any `json:"body,omitempty"`
	Featured bool           `json:"featured"`
	Status   string         `json:"status"`
	Created  time.Time      `json:"created"`
	Changed  *time.Time     `json:"changed,omitempty"`
}

type TechnologyNode struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	NodeType string  `json:"nodeType"`
	Slug     string  `json:"slug"`
	Website  *string `json:"website,omitempty"`
}

type PartnerNode struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	NodeType string  `json:"nodeType"`
	Slug     string  `json:"slug"`
	Website  *string `json:"website,omitempty"`
	LogoURL  *string `json:"logoUrl,omitempty"`
}

type MenuNode struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	NodeType string      `json:"nodeType"`
	Links    []*MenuLink `json:"links,omitempty"`
}

type MenuLink struct {
	Label    string      `json:"label"`
	URL      string      `json:"url"`
	Featured bool        `json:"featured"`
	Children []*MenuLink `json:"children,omitempty"`
}

// CompanyInfoNode is the single-document global holding company-wide settings.
type CompanyInfoNode struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	NodeType    string            `json:"nodeType"`
	Tagline     *string           `json:"tagline,omitempty"`
	Address     *string           `json:"address,omitempty"`
	Phone       *string           `json:"phone,omitempty"`
	Email       *string           `json:"email,omitempty"`
	SocialLinks map[string]string `json:"socialLinks,omitempty"`
	Changed     *time.Time        `json:"changed,omitempty"`
}

// ContactMessage is a contact-form submission relayed to the company inbox.
type ContactMessage struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}
