package provider

import (
	"context"
	"encoding/json"
	"time"

	"karigar/models"
	"karigar/utils"

	"go.uber.org/zap"
)

// ListCategories returns the active category tree, served from Redis when
// possible. A cache miss or a broken cache falls through to the store.
func (s *DefaultProviderService) ListCategories() ([]models.Category, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cache := utils.GetCacheClient()
	if cached, err := cache.Get(ctx, utils.CategoriesCacheKey).Result(); err == nil {
		var categories []models.Category
		if err := json.Unmarshal([]byte(cached), &categories); err == nil {
			return categories, nil
		}
	}

	categories, err := s.Categories.ListActive()
	if err != nil {
		utils.GetLogger().Error("ListCategories: failed to list categories", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not list categories")
	}

	if encoded, err := json.Marshal(categories); err == nil {
		if err := cache.Set(ctx, utils.CategoriesCacheKey, encoded, utils.CategoriesCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("failed to cache categories", zap.Error(err))
		}
	}
	return categories, nil
}
