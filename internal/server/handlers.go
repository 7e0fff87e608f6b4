package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/matteflyt/internal/auth"
	"github.com/abhisek/matteflyt/internal/diploma"
	"github.com/abhisek/matteflyt/internal/logger"
)

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

type diplomaHandler struct {
	svc DiplomaService
	log *logger.Logger
}

func (h *diplomaHandler) submit(c *gin.Context) {
	var sub diploma.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		h.log.Debug("diploma body rejected", "error", err)
		respondError(c, http.StatusBadRequest, "Invalid diploma data")
		return
	}
	id, err := h.svc.Submit(c.Request.Context(), sub)
	if err != nil {
		if errors.Is(err, diploma.ErrInvalidSubmission) {
			respondError(c, http.StatusBadRequest, "Invalid diploma data")
			return
		}
		h.log.Error("diploma submit failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to store diploma")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

func (h *diplomaHandler) list(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.log.Error("diploma list failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch diplomas")
		return
	}
	if list == nil {
		list = []diploma.Diploma{}
	}
	c.JSON(http.StatusOK, list)
}

type adminHandler struct {
	issuer       *auth.Issuer
	passwordHash string
	log          *logger.Logger
}

type verifyRequest struct {
	Password string `json:"password"`
}

func (h *adminHandler) verify(c *gin.Context) {
	if h.passwordHash == "" || h.issuer == nil {
		respondError(c, http.StatusServiceUnavailable, "Admin login disabled")
		return
	}
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		respondError(c, http.StatusBadRequest, "Password required")
		return
	}
	if err := auth.CheckPassword(h.passwordHash, req.Password); err != nil {
		h.log.Warn("admin login rejected", "client_ip", c.ClientIP())
		respondError(c, http.StatusUnauthorized, "Invalid password")
		return
	}
	token, exp, err := h.issuer.Issue()
	if err != nil {
		h.log.Error("issue admin token", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expiresAt": exp.UTC().Format(time.RFC3339)})
}

// requireAdmin rejects requests without a valid Bearer admin token.
func requireAdmin(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" || issuer == nil || issuer.Verify(token) != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
