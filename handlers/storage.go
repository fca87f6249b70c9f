package handlers

import (
	"net/http"

	"karigar/middleware"
	"karigar/utils"

	"github.com/gin-gonic/gin"
)

const profilePictureFolder = "karigar/profile-pictures"

// UploadProfilePictureHandler accepts a multipart image, pushes it to storage
// and saves its URL on the account.
func (hb *HandlerBundle) UploadProfilePictureHandler(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	if hb.Storage == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "Image storage is not configured", "")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image file", "details": err.Error()})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image file"})
		return
	}
	defer file.Close()

	url, err := hb.Storage.UploadImage(c.Request.Context(), file, profilePictureFolder)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "upload failed", err.Error())
		return
	}

	if err := hb.Users.SetProfilePicture(session, url); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
