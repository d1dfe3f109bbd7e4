package handlers

import (
	"net/http"

	"github.com/archnet-io/backend/internal/models"
	"github.com/archnet-io/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// NotificationHandler serves the aggregated badge counter: unread messages
// plus pending incoming connection requests. Clients poll it every few
// seconds, so both underlying queries run off indexed counts.
type NotificationHandler struct {
	messageRepository    repositories.MessageRepository
	connectionRepository repositories.ConnectionRepository
	userRepository       repositories.UserRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(messageRepo repositories.MessageRepository, connectionRepo repositories.ConnectionRepository, userRepo repositories.UserRepository) *NotificationHandler {
	return &NotificationHandler{
		messageRepository:    messageRepo,
		connectionRepository: connectionRepo,
		userRepository:       userRepo,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications/counts", h.GetCounts)
}

// GetCounts returns the caller's unread-message and pending-request counts.
// When the caller record cannot be resolved it degrades to zero counts
// instead of failing, since this backs a constantly polled UI badge.
func (h *NotificationHandler) GetCounts(c echo.Context) error {
	counts := models.NotificationCounts{}

	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return c.JSON(http.StatusOK, counts)
	}
	if _, err := h.userRepository.GetUserByID(currentUserID); err != nil {
		return c.JSON(http.StatusOK, counts)
	}

	unread, err := h.messageRepository.CountUnread(c.Request().Context(), currentUserID)
	if err != nil {
		return httpError(err)
	}

	pending, err := h.connectionRepository.CountPendingForRecipient(currentUserID)
	if err != nil {
		return httpError(err)
	}

	counts.UnreadMessages = unread
	counts.PendingConnections = pending
	counts.Total = unread + pending

	return c.JSON(http.StatusOK, counts)
}
