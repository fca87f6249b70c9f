package handlers

import (
	"net/http"

	"karigar/middleware"
	providerSvc "karigar/services/provider"
	"karigar/utils"

	"github.com/gin-gonic/gin"
)

// SearchProvidersHandler searches active providers by category, city,
// distance and rating.
func (hb *HandlerBundle) SearchProvidersHandler(c *gin.Context) {
	var in providerSvc.SearchInput
	if err := c.ShouldBindQuery(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "details": err.Error()})
		return
	}
	results, err := hb.Providers.Search(in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": results, "count": len(results)})
}

// GetProviderProfileHandler returns a provider's public page.
func (hb *HandlerBundle) GetProviderProfileHandler(c *gin.Context) {
	profile, err := hb.Providers.GetPublicProfile(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateBusinessInfoHandler lets a provider edit their business details.
func (hb *HandlerBundle) UpdateBusinessInfoHandler(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	var in struct {
		BusinessName    string `json:"businessName"`
		Description     string `json:"description"`
		ExperienceYears int    `json:"experienceYears"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	info, err := hb.Providers.UpdateBusinessInfo(session, in.BusinessName, in.Description, in.ExperienceYears)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// ListCategoriesHandler returns the active service categories.
func (hb *HandlerBundle) ListCategoriesHandler(c *gin.Context) {
	categories, err := hb.Providers.ListCategories()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
