package handlers

import (
	"net/http"

	userSvc "karigar/services/user"
	"karigar/utils"

	"github.com/gin-gonic/gin"
)

// SignupHandler registers a new customer or provider account.
func (hb *HandlerBundle) SignupHandler(c *gin.Context) {
	var in userSvc.SignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	resp, err := hb.Users.Signup(in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SigninHandler authenticates an account and returns a fresh token.
func (hb *HandlerBundle) SigninHandler(c *gin.Context) {
	var in userSvc.SigninInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	resp, err := hb.Users.Signin(in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
