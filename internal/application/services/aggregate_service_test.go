package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VRCMedia/vrcsite-go/internal/domain/entities/content"
)

type fakeCompanyInfoRepo struct{ info *content.CompanyInfoNode }

func (f *fakeCompanyInfoRepo) Get() (*content.CompanyInfoNode, error)  { return f.info, nil }
func (f *fakeCompanyInfoRepo) Put(info *content.CompanyInfoNode) error { return nil }

type fakeMenuRepo struct{ items []*content.MenuNode }

func (f *fakeMenuRepo) FindByID(id string) (*content.MenuNode, error) { return nil, nil }
func (f *fakeMenuRepo) FindAll() ([]*content.MenuNode, error)         { return f.items, nil }
func (f *fakeMenuRepo) Store(menu *content.MenuNode) error            { return nil }
func (f *fakeMenuRepo) Update(menu *content.MenuNode) error           { return nil }

type fakeProductRepo struct{ items []*content.ProductNode }

func (f *fakeProductRepo) FindByID(id string) (*content.ProductNode, error)       { return nil, nil }
func (f *fakeProductRepo) FindBySlug(slug string) (*content.ProductNode, error)   { return nil, nil }
func (f *fakeProductRepo) FindAll() ([]*content.ProductNode, error)               { return f.items, nil }
func (f *fakeProductRepo) FindByIDs(ids []string) ([]*content.ProductNode, error) { return nil, nil }
func (f *fakeProductRepo) Store(product *content.ProductNode) error               { return nil }
func (f *fakeProductRepo) Update(product *content.ProductNode) error              { return nil }

type fakeServiceRepo struct{ items []*content.ServiceNode }

func (f *fakeServiceRepo) FindByID(id string) (*content.ServiceNode, error)     { return nil, nil }
func (f *fakeServiceRepo) FindBySlug(slug string) (*content.ServiceNode, error) { return nil, nil }
func (f *fakeServiceRepo) FindAll() ([]*content.ServiceNode, error)             { return f.items, nil }
func (f *fakeServiceRepo) Store(service *content.ServiceNode) error             { return nil }
func (f *fakeServiceRepo) Update(service *content.ServiceNode) error            { return nil }

type fakeProjectRepo struct{ items []*content.ProjectNode }

func (f *fakeProjectRepo) FindByID(id string) (*content.ProjectNode, error)     { return nil, nil }
func (f *fakeProjectRepo) FindBySlug(slug string) (*content.ProjectNode, error) { return nil, nil }
func (f *fakeProjectRepo) FindAll() ([]*content.ProjectNode, error)             { return f.items, nil }
func (f *fakeProjectRepo) Store(project *content.ProjectNode) error             { return nil }
func (f *fakeProjectRepo) Update(project *content.ProjectNode) error            { return nil }

type fakeTechnologyRepo struct{ items []*content.TechnologyNode }

func (f *fakeTechnologyRepo) FindByID(id string) (*content.TechnologyNode, error) {
	return nil, nil
}
func (f *fakeTechnologyRepo) FindBySlug(slug string) (*content.TechnologyNode, error) {
	return nil, nil
}
func (f *fakeTechnologyRepo) FindAll() ([]*content.TechnologyNode, error)  { return f.items, nil }
func (f *fakeTechnologyRepo) Store(tech *content.TechnologyNode) error     { return nil }
func (f *fakeTechnologyRepo) Update(tech *content.TechnologyNode) error    { return nil }

type fakePostRepo struct{ items []*content.PostNode }

func (f *fakePostRepo) FindByID(id string) (*content.PostNode, error)       { return nil, nil }
func (f *fakePostRepo) FindBySlug(slug string) (*content.PostNode, error)   { return nil, nil }
func (f *fakePostRepo) FindAll() ([]*content.PostNode, error)               { return f.items, nil }
func (f *fakePostRepo) FindByIDs(ids []string) ([]*content.PostNode, error) { return nil, nil }
func (f *fakePostRepo) Store(post *content.PostNode) error                  { return nil }
func (f *fakePostRepo) Update(post *content.PostNode) error                 { return nil }
func (f *fakePostRepo) SetStatus(id, status string) error                   { return nil }

func newAggregateFixture(t *testing.T) (*AggregateService, *fakeProductRepo, *fakePostRepo, *fakeMenuRepo) {
	t.Helper()
	companyInfo := &fakeCompanyInfoRepo{info: &content.CompanyInfoNode{
		ID:    "company-info",
		Name:  "VRC",
		Phone: strPtr("0123456789"),
		SocialLinks: map[string]string{
			"facebook": "https://facebook.com/vrc",
		},
	}}
	menus := &fakeMenuRepo{items: []*content.MenuNode{
		{ID: "M1", Title: "Main Navigation", Links: []*content.MenuLink{
			{Label: "Trang chủ", URL: "/"},
			{Label: "Sản phẩm", URL: "/products"},
		}},
		{ID: "M2", Title: "Footer"},
	}}
	products := &fakeProductRepo{}
	posts := &fakePostRepo{}

	svc := NewAggregateService(
		companyInfo, menus, products,
		&fakeServiceRepo{}, &fakeProjectRepo{}, &fakeTechnologyRepo{}, posts,
		newTestLogger(t))
	return svc, products, posts, menus
}

func strPtr(s string) *string { return &s }

func TestGetHomepageFiltersFeaturedPublished(t *testing.T) {
	svc, products, _, _ := newAggregateFixture(t)
	products.items = []*content.ProductNode{
		{ID: "P1", Name: "Máy nén khí", Featured: true, Status: "published"},
		{ID: "P2", Name: "Bản nháp", Featured: true, Status: "draft"},
		{ID: "P3", Name: "Không nổi bật", Featured: false, Status: "published"},
	}

	payload, err := svc.GetHomepage()
	require.NoError(t, err)
	require.Len(t, payload.FeaturedProducts, 1)
	assert.Equal(t, "P1", payload.FeaturedProducts[0].ID)
	assert.Equal(t, "VRC", payload.CompanyInfo.Name)
	assert.Len(t, payload.Navigation, 2)
}

func TestGetHomepageCapsFeaturedProducts(t *testing.T) {
	svc, products, _, _ := newAggregateFixture(t)
	for i := 0; i < 10; i++ {
		products.items = append(products.items, &content.ProductNode{
			ID: fmt.Sprintf("P%d", i), Featured: true, Status: "published",
		})
	}

	payload, err := svc.GetHomepage()
	require.NoError(t, err)
	assert.Len(t, payload.FeaturedProducts, homepageProductLimit)
}

func TestGetHomepageRecentPostsNewestFirst(t *testing.T) {
	svc, _, posts, _ := newAggregateFixture(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		posts.items = append(posts.items, &content.PostNode{
			ID:      fmt.Sprintf("B%d", i),
			Status:  "published",
			Created: base.AddDate(0, 0, i),
		})
	}
	posts.items = append(posts.items, &content.PostNode{
		ID: "draft", Status: "draft", Created: base.AddDate(0, 1, 0),
	})

	payload, err := svc.GetHomepage()
	require.NoError(t, err)
	require.Len(t, payload.RecentPosts, homepagePostLimit)
	assert.Equal(t, "B4", payload.RecentPosts[0].ID)
	assert.Equal(t, "B3", payload.RecentPosts[1].ID)
	assert.Equal(t, "B2", payload.RecentPosts[2].ID)
}

func TestGetHeaderInfo(t *testing.T) {
	svc, _, _, _ := newAggregateFixture(t)

	payload, err := svc.GetHeaderInfo()
	require.NoError(t, err)
	assert.Equal(t, "VRC", payload.CompanyName)
	require.NotNil(t, payload.Phone)
	assert.Equal(t, "0123456789", *payload.Phone)
	assert.Equal(t, "https://facebook.com/vrc", payload.SocialLinks["facebook"])
	require.Len(t, payload.Navigation, 2)
	assert.Equal(t, "Trang chủ", payload.Navigation[0].Label)
}
