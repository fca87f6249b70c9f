package provider

import (
	"testing"
	"time"

	serviceRepo "karigar/database/repository/service"
	"karigar/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProviderRepo struct {
	infos []models.ProviderInfo
}

func (f *fakeProviderRepo) Create(*models.ProviderInfo) error { return nil }
func (f *fakeProviderRepo) GetByUserID(userID string) (*models.ProviderInfo, error) {
	for i := range f.infos {
		if f.infos[i].UserID == userID {
			return &f.infos[i], nil
		}
	}
	return nil, nil
}
func (f *fakeProviderRepo) GetByUserIDs([]string) ([]models.ProviderInfo, error) { return nil, nil }
func (f *fakeProviderRepo) ListActive() ([]models.ProviderInfo, error) {
	var out []models.ProviderInfo
	for _, info := range f.infos {
		if info.IsActive {
			out = append(out, info)
		}
	}
	return out, nil
}
func (f *fakeProviderRepo) ListAllUserIDs() ([]string, error) { return nil, nil }
func (f *fakeProviderRepo) Update(*models.ProviderInfo) error { return nil }
func (f *fakeProviderRepo) SetActive(string, bool) error { return nil }
func (f *fakeProviderRepo) SetVerificationStatus(string, models.VerificationStatus) error { return nil }
func (f *fakeProviderRepo) ListTopRated(int) ([]models.ProviderInfo, error) { return nil, nil }
func (f *fakeProviderRepo) CountPendingVerifications() (int64, error) { return 0, nil }

type fakeUserRepo struct {
	users []models.User
}

func (f *fakeUserRepo) Create(*models.User) error { return nil }
func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) GetByEmail(string) (*models.User, error) { return nil, nil }
func (f *fakeUserRepo) GetByIDs(ids []string) ([]models.User, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []models.User
	for _, u := range f.users {
		if want[u.ID] {
			out = append(out, u)
		}
	}
	return out, nil
}
func (f *fakeUserRepo) Update(*models.User) error { return nil }
func (f *fakeUserRepo) UpdateProfile(string, models.Profile) error { return nil }
func (f *fakeUserRepo) List(models.UserRole, string, int, int) ([]models.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Count() (int64, error) { return 0, nil }
func (f *fakeUserRepo) CountByRole(models.UserRole) (int64, error) { return 0, nil }
func (f *fakeUserRepo) CountSince(time.Time) (int64, error) { return 0, nil }

type fakeServiceRepo struct {
	services []models.Service
}

func (f *fakeServiceRepo) Create(*models.Service) error { return nil }
func (f *fakeServiceRepo) Update(*models.Service) error { return nil }
func (f *fakeServiceRepo) GetByID(string) (*models.Service, error) { return nil, nil }
func (f *fakeServiceRepo) ListByProvider(string, bool) ([]models.Service, error) {
	return nil, nil
}
func (f *fakeServiceRepo) ListActiveByProviders(providerIDs []string, categoryID string) ([]models.Service, error) {
	want := make(map[string]bool, len(providerIDs))
	for _, id := range providerIDs {
		want[id] = true
	}
	var out []models.Service
	for _, svc := range f.services {
		if !svc.IsActive || !want[svc.ProviderID] {
			continue
		}
		if categoryID != "" && svc.CategoryID != categoryID {
			continue
		}
		out = append(out, svc)
	}
	return out, nil
}
func (f *fakeServiceRepo) Deactivate(string) error { return nil }
func (f *fakeServiceRepo) CountByCategory(int) ([]serviceRepo.CategoryCount, error) {
	return nil, nil
}

func newSearchService() *DefaultProviderService {
	// Two Lahore providers a few km apart and one in Karachi.
	providers := &fakeProviderRepo{infos: []models.ProviderInfo{
		{UserID: "p1", IsActive: true, AverageRating: 4.5, TotalReviews: 20, CompletedJobs: 30,
			VerificationStatus: models.VerificationVerified},
		{UserID: "p2", IsActive: true, AverageRating: 3.0, TotalReviews: 4, CompletedJobs: 50},
		{UserID: "p3", IsActive: true, AverageRating: 5.0, TotalReviews: 2, CompletedJobs: 5},
		{UserID: "p4", IsActive: false, AverageRating: 4.9, TotalReviews: 90, CompletedJobs: 200},
	}}
	users := &fakeUserRepo{users: []models.User{
		{ID: "p1", Name: "Ahmed", Profile: models.Profile{City: "Lahore", Area: "Gulberg", Latitude: 31.52, Longitude: 74.35}},
		{ID: "p2", Name: "Bilal", Profile: models.Profile{City: "Lahore", Area: "Johar Town", Latitude: 31.47, Longitude: 74.26}},
		{ID: "p3", Name: "Sana", Profile: models.Profile{City: "Karachi", Latitude: 24.86, Longitude: 67.00}},
		{ID: "p4", Name: "Tariq", Profile: models.Profile{City: "Lahore"}},
	}}
	services := &fakeServiceRepo{services: []models.Service{
		{ID: "s1", ProviderID: "p1", CategoryID: "plumbing", IsActive: true,
			PriceType: models.PriceFixed, PriceMin: 2000, PriceMax: 2000},
		{ID: "s2", ProviderID: "p2", CategoryID: "electrical", IsActive: true,
			PriceType: models.PriceRange, PriceMin: 500, PriceMax: 1500},
		{ID: "s3", ProviderID: "p3", CategoryID: "plumbing", IsActive: true,
			PriceType: models.PriceQuote},
	}}
	return &DefaultProviderService{
		Providers: providers,
		Users:     users,
		Services:  services,
	}
}

func TestSearchDefaultSortsByRating(t *testing.T) {
	svc := newSearchService()

	results, err := svc.Search(SearchInput{})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "p3", results[0].UserID)
	assert.Equal(t, "p1", results[1].UserID)
	assert.Equal(t, "p2", results[2].UserID)
	assert.True(t, results[1].Verified)
}

func TestSearchExcludesInactiveProviders(t *testing.T) {
	svc := newSearchService()

	results, err := svc.Search(SearchInput{})
	require.NoError(t, err)
	for _, r := range results {
		assert.NotEqual(t, "p4", r.UserID)
	}
}

func TestSearchByCategory(t *testing.T) {
	svc := newSearchService()

	results, err := svc.Search(SearchInput{CategoryID: "plumbing"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Contains(t, []string{"p1", "p3"}, r.UserID)
	}
}

func TestSearchByCity(t *testing.T) {
	svc := newSearchService()

	results, err := svc.Search(SearchInput{City: "lahore"})
	require.NoError(t, err)
	require.Len(t, results, 2)
}

func TestSearchByDistance(t *testing.T) {
	svc := newSearchService()

	// From central Lahore with a 30km radius, Karachi drops out.
	results, err := svc.Search(SearchInput{
		Latitude: 31.52, Longitude: 74.35, RadiusKm: 30, SortBy: "distance",
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "p1", results[0].UserID)
	assert.Equal(t, "p2", results[1].UserID)
	assert.Less(t, results[0].DistanceKm, results[1].DistanceKm)
}

func TestSearchMinRating(t *testing.T) {
	svc := newSearchService()

	results, err := svc.Search(SearchInput{MinRating: 4.0})
	require.NoError(t, err)
	require.Len(t, results, 2)
}

func TestSearchPagination(t *testing.T) {
	svc := newSearchService()

	page, err := svc.Search(SearchInput{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := svc.Search(SearchInput{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, rest, 1)

	none, err := svc.Search(SearchInput{Offset: 99})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearchByArea(t *testing.T) {
	svc := newSearchService()

	results, err := svc.Search(SearchInput{City: "Lahore", Area: "gulberg"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "p1", results[0].UserID)
}

func TestSearchByPriceRange(t *testing.T) {
	svc := newSearchService()

	// Quote-only listings never match a price window.
	results, err := svc.Search(SearchInput{PriceMax: 1500})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "p2", results[0].UserID)

	results, err = svc.Search(SearchInput{PriceMin: 1800})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "p1", results[0].UserID)
}

func TestSearchSortByPrice(t *testing.T) {
	svc := newSearchService()

	results, err := svc.Search(SearchInput{SortBy: "price_low"})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "p2", results[0].UserID)
	assert.Equal(t, "p1", results[1].UserID)
	assert.Equal(t, "p3", results[2].UserID)

	results, err = svc.Search(SearchInput{SortBy: "price_high"})
	require.NoError(t, err)
	assert.Equal(t, "p1", results[0].UserID)
}

func TestSearchSortByJobs(t *testing.T) {
	svc := newSearchService()

	results, err := svc.Search(SearchInput{SortBy: "jobs"})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "p2", results[0].UserID)
}
