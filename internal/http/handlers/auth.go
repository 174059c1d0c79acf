package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourmate/internal/http/middleware"
	"tourmate/internal/services"
)

// Login issues a session token for valid credentials.
func (h Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}

	token, user, err := h.auth(c).Login(req.Username, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// RegisterUser creates an operator account. Admin only.
func (h Handler) RegisterUser(c *gin.Context) {
	var req services.RegisterInput
	if !BindJSONOrError(c, &req) {
		return
	}

	user, err := h.auth(c).Register(middleware.GetActor(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}
