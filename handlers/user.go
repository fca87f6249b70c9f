package handlers

import (
	"net/http"

	"karigar/middleware"
	userSvc "karigar/services/user"
	"karigar/utils"

	"github.com/gin-gonic/gin"
)

// GetMeHandler returns the authenticated account's profile.
func (hb *HandlerBundle) GetMeHandler(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	u, err := hb.Users.GetProfile(session.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateProfileHandler applies a partial edit to the authenticated account.
func (hb *HandlerBundle) UpdateProfileHandler(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	var in userSvc.UpdateProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	u, err := hb.Users.UpdateProfile(session, in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
