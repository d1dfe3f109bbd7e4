package handlers

import (
	"net/http"
	"strconv"

	"github.com/archnet-io/backend/internal/models"
	"github.com/archnet-io/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ConnectionHandler handles HTTP requests for the connection-request workflow
type ConnectionHandler struct {
	connectionRepository repositories.ConnectionRepository
	userRepository       repositories.UserRepository // To enrich requests and connection lists with profiles
}

// NewConnectionHandler creates a new ConnectionHandler
func NewConnectionHandler(connectionRepo repositories.ConnectionRepository, userRepo repositories.UserRepository) *ConnectionHandler {
	return &ConnectionHandler{
		connectionRepository: connectionRepo,
		userRepository:       userRepo,
	}
}

// RegisterConnectionRoutes registers connection-related routes
func (h *ConnectionHandler) RegisterConnectionRoutes(g *echo.Group) {
	g.POST("/connections/request", h.SendRequest)
	g.GET("/connections/requests/incoming", h.ListIncoming)
	g.PUT("/connections/request/:id", h.Respond)
	g.GET("/connections", h.ListConnections)
	g.DELETE("/connections/:id", h.RemoveConnection)
}

// SendRequest handles sending a connection request
func (h *ConnectionHandler) SendRequest(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateConnectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if currentUserID == req.RecipientID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot send a connection request to yourself")
	}

	// Check if recipient exists
	if _, err := h.userRepository.GetUserByID(req.RecipientID); err != nil {
		return httpError(err)
	}

	connectionRequest := &models.ConnectionRequest{
		SenderID:    currentUserID,
		RecipientID: req.RecipientID,
	}
	if err := h.connectionRepository.CreateRequest(connectionRequest); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, connectionRequest)
}

// ListIncoming retrieves pending connection requests addressed to the
// authenticated user, enriched with each sender's public profile
func (h *ConnectionHandler) ListIncoming(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	requests, err := h.connectionRepository.GetPendingForRecipient(currentUserID)
	if err != nil {
		return httpError(err)
	}

	enriched := make([]models.IncomingRequest, 0, len(requests))
	for _, req := range requests {
		item := models.IncomingRequest{ConnectionRequest: req}
		if sender, err := h.userRepository.GetUserByID(req.SenderID); err == nil {
			item.Sender = sender.ToSummary()
		}
		enriched = append(enriched, item)
	}

	return c.JSON(http.StatusOK, enriched)
}

// Respond accepts or rejects a pending connection request. Only the recipient
// may respond; accepting connects both users symmetrically.
func (h *ConnectionHandler) Respond(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request ID")
	}

	var req models.RespondConnectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	connectionRequest, err := h.connectionRepository.GetRequestByID(uint(requestID))
	if err != nil {
		return httpError(err)
	}

	// Ensure the authenticated user is the recipient of the request
	if connectionRequest.RecipientID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to respond to this connection request")
	}

	switch req.Action {
	case "accept":
		err = h.connectionRepository.AcceptRequest(uint(requestID))
		connectionRequest.Status = models.RequestStatusAccepted
	case "reject":
		err = h.connectionRepository.RejectRequest(uint(requestID))
		connectionRequest.Status = models.RequestStatusRejected
	}
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, connectionRequest)
}

// ListConnections retrieves the authenticated user's connections resolved to
// public profile summaries
func (h *ConnectionHandler) ListConnections(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if _, err := h.userRepository.GetUserByID(currentUserID); err != nil {
		return httpError(err)
	}

	edges, err := h.connectionRepository.ListConnections(currentUserID)
	if err != nil {
		return httpError(err)
	}

	profiles := make([]models.UserSummary, 0, len(edges))
	for _, edge := range edges {
		if peer, err := h.userRepository.GetUserByID(edge.PeerID); err == nil {
			profiles = append(profiles, peer.ToSummary())
		}
	}

	return c.JSON(http.StatusOK, profiles)
}

// RemoveConnection removes an established connection in both directions.
// Idempotent: removing an absent connection still succeeds.
func (h *ConnectionHandler) RemoveConnection(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	peerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.connectionRepository.RemoveConnection(currentUserID, uint(peerID)); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
