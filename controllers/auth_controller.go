package controllers

import (
	"net/http"

	"github.com/JeffersonNayron/Turma-B/middleware"
	"github.com/JeffersonNayron/Turma-B/models"
	"github.com/JeffersonNayron/Turma-B/services"

	"github.com/gin-gonic/gin"
)

// AuthController handles login and logout.
type AuthController struct {
	auth   *services.AuthService
	secure bool
}

// NewAuthController builds the controller; secure marks the session cookie
// as HTTPS-only.
func NewAuthController(auth *services.AuthService, secure bool) *AuthController {
	return &AuthController{auth: auth, secure: secure}
}

// Login opens a session for the account matching the posted password.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	token, session, err := ac.auth.Login(c.Request.Context(), req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.WriteSessionCookie(c, token, session.ExpiresAt, ac.secure)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"session": models.SessionResponse{Role: session.Role, ExpiresAt: session.ExpiresAt},
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	if token, ok := middleware.ReadSessionToken(c); ok {
		if err := ac.auth.Logout(c.Request.Context(), token); err != nil {
			respondError(c, err)
			return
		}
	}

	middleware.ClearSessionCookie(c, ac.secure)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Session reports the caller's login; it sits behind the session middleware.
func (ac *AuthController) Session(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}
	c.JSON(http.StatusOK, models.SessionResponse{Role: session.Role, ExpiresAt: session.ExpiresAt})
}
