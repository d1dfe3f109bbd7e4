package handlers

import (
	"net/http"
	"strconv"

	"github.com/archnet-io/backend/internal/models"
	"github.com/archnet-io/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// MessageHandler handles direct-messaging HTTP requests. Messaging is gated
// to confirmed connections, the one hard rule tying it to the graph.
type MessageHandler struct {
	messageRepository    repositories.MessageRepository
	connectionRepository repositories.ConnectionRepository
	userRepository       repositories.UserRepository
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageRepo repositories.MessageRepository, connectionRepo repositories.ConnectionRepository, userRepo repositories.UserRepository) *MessageHandler {
	return &MessageHandler{
		messageRepository:    messageRepo,
		connectionRepository: connectionRepo,
		userRepository:       userRepo,
	}
}

// RegisterMessageRoutes registers messaging-related routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages", h.SendMessage)
	g.GET("/messages/:id", h.GetConversation)
	g.PUT("/messages/:id/read", h.MarkRead)
	g.GET("/conversations", h.ListConversations)
}

// SendMessage sends a direct message to a connected user
func (h *MessageHandler) SendMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if currentUserID == req.RecipientID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot send a message to yourself")
	}

	// Check if recipient exists
	if _, err := h.userRepository.GetUserByID(req.RecipientID); err != nil {
		return httpError(err)
	}

	// Messaging is only open between confirmed connections
	connected, err := h.connectionRepository.AreConnected(currentUserID, req.RecipientID)
	if err != nil {
		return httpError(err)
	}
	if !connected {
		return echo.NewHTTPError(http.StatusForbidden, repositories.ErrNotConnected.Error())
	}

	message := &models.Message{
		SenderID:    currentUserID,
		RecipientID: req.RecipientID,
		Content:     req.Content,
	}
	if err := h.messageRepository.CreateMessage(c.Request().Context(), message); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, message)
}

// GetConversation retrieves the full message thread between the caller and a
// counterpart, oldest first. Symmetric: either party sees the same thread.
func (h *MessageHandler) GetConversation(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	counterpartID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	messages, err := h.messageRepository.GetConversation(c.Request().Context(), currentUserID, uint(counterpartID))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, messages)
}

// MarkRead marks every unread message from the counterpart to the caller as
// read and returns the number of messages mutated. Idempotent.
func (h *MessageHandler) MarkRead(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	counterpartID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	count, err := h.messageRepository.MarkRead(c.Request().Context(), currentUserID, uint(counterpartID))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"marked_read": count})
}

// ListConversations retrieves the caller's conversations: one entry per
// counterpart carrying their profile and the latest message, newest first
func (h *MessageHandler) ListConversations(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if _, err := h.userRepository.GetUserByID(currentUserID); err != nil {
		return httpError(err)
	}

	latest, err := h.messageRepository.LatestPerCounterpart(c.Request().Context(), currentUserID)
	if err != nil {
		return httpError(err)
	}

	conversations := make([]models.Conversation, 0, len(latest))
	for _, msg := range latest {
		counterpartID := msg.SenderID
		if msg.SenderID == currentUserID {
			counterpartID = msg.RecipientID
		}
		counterpart, err := h.userRepository.GetUserByID(counterpartID)
		if err != nil {
			// Counterpart record no longer resolvable; skip rather than fail the list
			continue
		}
		conversations = append(conversations, models.Conversation{
			Counterpart: counterpart.ToSummary(),
			LastMessage: msg,
		})
	}

	return c.JSON(http.StatusOK, conversations)
}
