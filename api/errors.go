package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skyline-air/booking/internal/domain"
)

// writeError maps domain error kinds onto HTTP statuses. Seat conflicts
// include the conflicting seats so the client can refresh its seat map.
func writeError(c *gin.Context, err error) {
	var (
		validation *domain.ValidationError
		conflict   *domain.SeatConflictError
	)
	switch {
	case errors.As(err, &validation),
		errors.Is(err, domain.ErrSeatCountMismatch),
		errors.Is(err, domain.ErrSelectionFull):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "seats": conflict.Seats})
	case errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrFlightHasDependents):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// Session identity is supplied by the fronting session layer through
// headers; this service does not manage login state itself.
const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"
)

func sessionUser(c *gin.Context) (int64, domain.Role, bool) {
	id, err := strconv.ParseInt(c.GetHeader(headerUserID), 10, 64)
	if err != nil || id <= 0 {
		return 0, "", false
	}
	role := domain.Role(c.GetHeader(headerUserRole))
	if !role.Valid() {
		return 0, "", false
	}
	return id, role, true
}

// requireUser aborts with 401 when no session identity is present.
func requireUser(c *gin.Context) (int64, domain.Role, bool) {
	id, role, ok := sessionUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return 0, "", false
	}
	return id, role, true
}

// requireAdmin aborts with 403 unless the session belongs to an admin.
func requireAdmin(c *gin.Context) bool {
	_, role, ok := requireUser(c)
	if !ok {
		return false
	}
	if role != domain.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return false
	}
	return true
}
