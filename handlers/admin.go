package handlers

import (
	"net/http"
	"strconv"

	"karigar/middleware"
	"karigar/models"
	"karigar/utils"

	"github.com/gin-gonic/gin"
)

// AdminDashboardHandler returns the analytics snapshot.
func (hb *HandlerBundle) AdminDashboardHandler(c *gin.Context) {
	analytics, err := hb.Admin.Dashboard()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}

// AdminListUsersHandler pages through accounts.
func (hb *HandlerBundle) AdminListUsersHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	role := models.UserRole(c.Query("role"))
	users, err := hb.Admin.ListUsers(role, c.Query("search"), limit, skip)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// AdminSetProviderActiveHandler suspends or reinstates a provider.
func (hb *HandlerBundle) AdminSetProviderActiveHandler(c *gin.Context) {
	var in struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := hb.Admin.SetProviderActive(c.Param("id"), *in.Active); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// AdminSetVerificationHandler records a verification decision.
func (hb *HandlerBundle) AdminSetVerificationHandler(c *gin.Context) {
	var in struct {
		Status models.VerificationStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := hb.Admin.SetVerificationStatus(c.Param("id"), in.Status); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// AdminListReviewsHandler returns the moderation queue.
func (hb *HandlerBundle) AdminListReviewsHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	includeHidden := c.DefaultQuery("includeHidden", "false") == "true"
	reviews, err := hb.Admin.ListReviews(includeHidden, limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "count": len(reviews)})
}

// AdminHideReviewHandler hides a review from public listings.
func (hb *HandlerBundle) AdminHideReviewHandler(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	if err := hb.Reviews.HideReview(session, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "hidden"})
}

// AdminReconcileHandler triggers an on-demand aggregate reconciliation.
func (hb *HandlerBundle) AdminReconcileHandler(c *gin.Context) {
	if err := hb.Admin.ReconcileAggregates(); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reconciled"})
}
