package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/JeffersonNayron/Turma-B/config"
	"github.com/JeffersonNayron/Turma-B/services"
	"github.com/JeffersonNayron/Turma-B/store"

	"github.com/gin-gonic/gin"
)

// respondError maps service and store errors to a status code and an
// {"error": ...} body.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": strings.TrimPrefix(err.Error(), services.ErrValidation.Error()+": ")})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "person not found"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	default:
		config.Logger.Errorw("request failed",
			"error", err,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
