package handlers

import (
	"net/http"

	"karigar/middleware"
	providerSvc "karigar/services/provider"
	"karigar/utils"

	"github.com/gin-gonic/gin"
)

// CreateServiceHandler adds a listing under the acting provider.
func (hb *HandlerBundle) CreateServiceHandler(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	var in providerSvc.ServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	svc, err := hb.Providers.CreateService(session, in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// UpdateServiceHandler edits an existing listing.
func (hb *HandlerBundle) UpdateServiceHandler(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	var in providerSvc.ServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	svc, err := hb.Providers.UpdateService(session, c.Param("id"), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// DeactivateServiceHandler hides a listing from search.
func (hb *HandlerBundle) DeactivateServiceHandler(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	if err := hb.Providers.DeactivateService(session, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

// ListOwnServicesHandler returns the acting provider's listings.
func (hb *HandlerBundle) ListOwnServicesHandler(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	services, err := hb.Providers.ListOwnServices(session)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}
