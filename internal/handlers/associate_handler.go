package handlers

import (
	"net/http"
	"strconv"

	"github.com/archnet-io/backend/internal/models"
	"github.com/archnet-io/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// AssociateHandler handles HTTP requests for the one-directional saved
// contact relation. Associates are independent of connections: a user may be
// both at once, and neither relation consults the other.
type AssociateHandler struct {
	associateRepository repositories.AssociateRepository
	userRepository      repositories.UserRepository
}

// NewAssociateHandler creates a new AssociateHandler
func NewAssociateHandler(associateRepo repositories.AssociateRepository, userRepo repositories.UserRepository) *AssociateHandler {
	return &AssociateHandler{
		associateRepository: associateRepo,
		userRepository:      userRepo,
	}
}

// RegisterAssociateRoutes registers associate-related routes
func (h *AssociateHandler) RegisterAssociateRoutes(g *echo.Group) {
	g.POST("/associates", h.AddAssociate)
	g.DELETE("/associates/:id", h.RemoveAssociate)
	g.GET("/associates", h.ListAssociates)
}

// AddAssociate saves another user into the caller's associate list. No
// approval step; the target is not notified and their own list is untouched.
func (h *AssociateHandler) AddAssociate(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.AddAssociateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if currentUserID == req.TargetID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot add yourself as an associate")
	}

	// Check if target exists
	if _, err := h.userRepository.GetUserByID(req.TargetID); err != nil {
		return httpError(err)
	}

	// Explicit duplicate add is an error, not a silent no-op
	isAssociate, err := h.associateRepository.IsAssociate(currentUserID, req.TargetID)
	if err != nil {
		return httpError(err)
	}
	if isAssociate {
		return echo.NewHTTPError(http.StatusBadRequest, repositories.ErrAlreadyAssociate.Error())
	}

	assoc := &models.Associate{
		OwnerID:  currentUserID,
		TargetID: req.TargetID,
	}
	if err := h.associateRepository.AddAssociate(assoc); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, assoc)
}

// RemoveAssociate removes a user from the caller's associate list. Idempotent.
func (h *AssociateHandler) RemoveAssociate(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.associateRepository.RemoveAssociate(currentUserID, uint(targetID)); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"removed": true})
}

// ListAssociates retrieves the caller's associates resolved to public profile
// summaries
func (h *AssociateHandler) ListAssociates(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if _, err := h.userRepository.GetUserByID(currentUserID); err != nil {
		return httpError(err)
	}

	edges, err := h.associateRepository.ListAssociates(currentUserID)
	if err != nil {
		return httpError(err)
	}

	profiles := make([]models.UserSummary, 0, len(edges))
	for _, edge := range edges {
		if target, err := h.userRepository.GetUserByID(edge.TargetID); err == nil {
			profiles = append(profiles, target.ToSummary())
		}
	}

	return c.JSON(http.StatusOK, profiles)
}
