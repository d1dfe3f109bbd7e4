package handlers

import (
	"net/http"
	"strconv"

	"github.com/archnet-io/backend/internal/identity"
	"github.com/archnet-io/backend/internal/models"
	"github.com/archnet-io/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserHandler handles the profile surface the graph UIs need: own profile,
// profile by id for pickers, and search.
type UserHandler struct {
	userRepository repositories.UserRepository
	resolver       *identity.Resolver
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, resolver *identity.Resolver) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		resolver:       resolver,
	}
}

// RegisterProfileRoutes registers profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/me", h.GetMe)
	g.PUT("/me", h.UpdateMe)
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/search", h.SearchUsers)
}

// GetMe returns the authenticated caller's resolved identity
func (h *UserHandler) GetMe(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	actor, err := h.resolver.Resolve(currentUserID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, actor)
}

// UpdateMe updates the caller's profile fields
func (h *UserHandler) UpdateMe(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return httpError(err)
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Headline != "" {
		user.Headline = req.Headline
	}
	if req.Category != "" {
		user.Category = req.Category
	}
	if req.ImageURL != "" {
		user.ImageURL = req.ImageURL
	}
	if req.Location != "" {
		user.Location = req.Location
	}
	if req.Company != "" {
		user.Company = req.Company
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, user)
}

// GetUser returns another user's public profile summary
func (h *UserHandler) GetUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.userRepository.GetUserByID(uint(userID))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, user.ToSummary())
}

// SearchUsers searches users by name, email or trade category
func (h *UserHandler) SearchUsers(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing search query")
	}

	users, err := h.userRepository.SearchUsers(query)
	if err != nil {
		return httpError(err)
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, user.ToSummary())
	}

	return c.JSON(http.StatusOK, summaries)
}
