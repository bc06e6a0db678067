package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wookrail/trainbooking/internal/service/auth"
)

type AuthHandler struct {
	service    auth.AuthUseCase
	cookieName string
	cookieTTL  int
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewAuthHandler(service auth.AuthUseCase, cookieName string, cookieTTLSeconds int) *AuthHandler {
	return &AuthHandler{service: service, cookieName: cookieName, cookieTTL: cookieTTLSeconds}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.POST("/logout", h.logout)
	router.GET("/me", h.me)
}

func (h *AuthHandler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.service.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Registered successfully!"})
}

func (h *AuthHandler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.SetCookie(h.cookieName, token, h.cookieTTL, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token})
}

func (h *AuthHandler) logout(c *gin.Context) {
	token := sessionToken(c, h.cookieName)
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		writeError(c, err)
		return
	}
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) me(c *gin.Context) {
	token := sessionToken(c, h.cookieName)
	owner, err := h.service.Whoami(c.Request.Context(), token)
	if err != nil {
		// Matches the anonymous response of the original endpoint.
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": owner})
}
