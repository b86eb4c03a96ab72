package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/atelierhq/internal/service"
	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// respondServiceError maps the service error taxonomy onto status codes:
// validation and slug conflicts are the caller's fault, absent records are
// 404, anything else is logged and reported generically.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPostSlugTaken),
		errors.Is(err, service.ErrProjectSlugTaken),
		errors.Is(err, service.ErrEmailTaken):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrAdminNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	default:
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		respondError(c, http.StatusInternalServerError, "an unexpected error occurred")
	}
}
