package provider

import (
	"sort"
	"strings"

	"karigar/models"
	"karigar/utils"

	"go.uber.org/zap"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// Search returns active providers matching the filters, enriched with their
// listings and, when the query carries coordinates, their distance from the
// caller. Filtering and sorting happen in-app over the active provider set.
func (s *DefaultProviderService) Search(in SearchInput) ([]SearchResult, error) {
	if in.Limit <= 0 {
		in.Limit = defaultSearchLimit
	}
	if in.Limit > maxSearchLimit {
		in.Limit = maxSearchLimit
	}
	if in.Offset < 0 {
		in.Offset = 0
	}

	infos, err := s.Providers.ListActive()
	if err != nil {
		utils.GetLogger().Error("Search: failed to list providers", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not search providers")
	}
	if len(infos) == 0 {
		return []SearchResult{}, nil
	}

	ids := make([]string, 0, len(infos))
	for _, info := range infos {
		ids = append(ids, info.UserID)
	}

	services, err := s.Services.ListActiveByProviders(ids, in.CategoryID)
	if err != nil {
		utils.GetLogger().Error("Search: failed to list services", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not search providers")
	}
	servicesByProvider := make(map[string][]models.Service)
	for _, svc := range services {
		servicesByProvider[svc.ProviderID] = append(servicesByProvider[svc.ProviderID], svc)
	}

	users, err := s.Users.GetByIDs(ids)
	if err != nil {
		utils.GetLogger().Error("Search: failed to load provider accounts", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not search providers")
	}
	usersByID := make(map[string]models.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	hasOrigin := in.Latitude != 0 || in.Longitude != 0

	var results []SearchResult
	for _, info := range infos {
		// A category filter drops providers with no matching listing.
		listed := servicesByProvider[info.UserID]
		if in.CategoryID != "" && len(listed) == 0 {
			continue
		}
		if (in.PriceMin > 0 || in.PriceMax > 0) && !anyListingInRange(listed, in.PriceMin, in.PriceMax) {
			continue
		}
		if info.AverageRating < in.MinRating {
			continue
		}
		u, ok := usersByID[info.UserID]
		if !ok {
			continue
		}
		if in.City != "" && !strings.EqualFold(u.Profile.City, in.City) {
			continue
		}
		if in.Area != "" && !strings.EqualFold(u.Profile.Area, in.Area) {
			continue
		}

		res := SearchResult{
			UserID:        info.UserID,
			Name:          u.Name,
			BusinessName:  info.BusinessName,
			City:          u.Profile.City,
			Area:          u.Profile.Area,
			AverageRating: info.AverageRating,
			TotalReviews:  info.TotalReviews,
			CompletedJobs: info.CompletedJobs,
			Verified:      info.VerificationStatus == models.VerificationVerified,
			Services:      listed,
		}
		if hasOrigin && (u.Profile.Latitude != 0 || u.Profile.Longitude != 0) {
			res.DistanceKm = utils.HaversineDistance(
				in.Latitude, in.Longitude, u.Profile.Latitude, u.Profile.Longitude)
			if in.RadiusKm > 0 && res.DistanceKm > in.RadiusKm {
				continue
			}
		} else if in.RadiusKm > 0 && hasOrigin {
			// Radius filter can only keep providers with a known location.
			continue
		}
		results = append(results, res)
	}

	sortResults(results, in.SortBy, hasOrigin)

	if in.Offset >= len(results) {
		return []SearchResult{}, nil
	}
	end := in.Offset + in.Limit
	if end > len(results) {
		end = len(results)
	}
	return results[in.Offset:end], nil
}

// anyListingInRange reports whether at least one priced listing overlaps the
// requested price window. Quote-only listings carry no price and never match.
func anyListingInRange(listed []models.Service, min, max float64) bool {
	for _, svc := range listed {
		if svc.PriceType == models.PriceQuote {
			continue
		}
		if max > 0 && svc.PriceMin > max {
			continue
		}
		if min > 0 && svc.PriceMax < min {
			continue
		}
		return true
	}
	return false
}

// cheapestListing returns the lowest advertised price among a provider's
// listings, or 0 when every listing is quote-only.
func cheapestListing(listed []models.Service) float64 {
	var cheapest float64
	for _, svc := range listed {
		if svc.PriceType == models.PriceQuote || svc.PriceMin <= 0 {
			continue
		}
		if cheapest == 0 || svc.PriceMin < cheapest {
			cheapest = svc.PriceMin
		}
	}
	return cheapest
}

func sortResults(results []SearchResult, sortBy string, hasOrigin bool) {
	switch {
	case sortBy == "distance" && hasOrigin:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].DistanceKm < results[j].DistanceKm
		})
	case sortBy == "jobs":
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].CompletedJobs > results[j].CompletedJobs
		})
	case sortBy == "reviews":
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].TotalReviews > results[j].TotalReviews
		})
	case sortBy == "price_low":
		sort.SliceStable(results, func(i, j int) bool {
			pi, pj := cheapestListing(results[i].Services), cheapestListing(results[j].Services)
			if pi == 0 || pj == 0 {
				return pj == 0 && pi != 0
			}
			return pi < pj
		})
	case sortBy == "price_high":
		sort.SliceStable(results, func(i, j int) bool {
			return cheapestListing(results[i].Services) > cheapestListing(results[j].Services)
		})
	default:
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].AverageRating != results[j].AverageRating {
				return results[i].AverageRating > results[j].AverageRating
			}
			return results[i].TotalReviews > results[j].TotalReviews
		})
	}
}
