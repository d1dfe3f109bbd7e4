package handlers

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/archnet-io/backend/internal/models"
	"github.com/archnet-io/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes mirroring the documented store semantics so the
// handlers can be exercised without Postgres or MongoDB.

type memUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *memUserRepo) addUser(name string) *models.User {
	user := &models.User{
		ID:       r.nextID,
		Name:     name,
		Email:    strings.ToLower(name) + "@example.com",
		Headline: name + " headline",
		Category: "architect",
	}
	r.users[user.ID] = user
	r.nextID++
	return user
}

func (r *memUserRepo) CreateUser(user *models.User) error {
	user.ID = r.nextID
	r.users[user.ID] = user
	r.nextID++
	return nil
}

func (r *memUserRepo) GetUserByID(id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (r *memUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memUserRepo) GetUserByFirebaseUID(uid string) (*models.User, error) {
	for _, user := range r.users {
		if user.FirebaseUID == uid {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memUserRepo) UpdateUser(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) SearchUsers(query string) ([]models.User, error) {
	var out []models.User
	q := strings.ToLower(query)
	for _, user := range r.users {
		if strings.Contains(strings.ToLower(user.Name), q) ||
			strings.Contains(strings.ToLower(user.Email), q) ||
			strings.Contains(strings.ToLower(user.Category), q) {
			out = append(out, *user)
		}
	}
	return out, nil
}

type memConnectionRepo struct {
	requests map[uint]*models.ConnectionRequest
	edges    map[[2]uint]time.Time
	nextID   uint
	now      time.Time
}

func newMemConnectionRepo() *memConnectionRepo {
	return &memConnectionRepo{
		requests: make(map[uint]*models.ConnectionRequest),
		edges:    make(map[[2]uint]time.Time),
		nextID:   1,
		now:      time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (r *memConnectionRepo) tick() time.Time {
	r.now = r.now.Add(time.Second)
	return r.now
}

func (r *memConnectionRepo) CreateRequest(req *models.ConnectionRequest) error {
	if req.SenderID == req.RecipientID {
		return repositories.ErrInvalidTarget
	}
	if _, ok := r.edges[[2]uint{req.SenderID, req.RecipientID}]; ok {
		return repositories.ErrAlreadyConnected
	}
	for _, existing := range r.requests {
		if existing.Status != models.RequestStatusPending {
			continue
		}
		samePair := (existing.SenderID == req.SenderID && existing.RecipientID == req.RecipientID) ||
			(existing.SenderID == req.RecipientID && existing.RecipientID == req.SenderID)
		if samePair {
			return repositories.ErrDuplicatePending
		}
	}
	req.ID = r.nextID
	req.Status = models.RequestStatusPending
	req.CreatedAt = r.tick()
	r.requests[req.ID] = req
	r.nextID++
	return nil
}

func (r *memConnectionRepo) GetRequestByID(id uint) (*models.ConnectionRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *req
	return &clone, nil
}

func (r *memConnectionRepo) GetPendingForRecipient(userID uint) ([]models.ConnectionRequest, error) {
	var out []models.ConnectionRequest
	for _, req := range r.requests {
		if req.RecipientID == userID && req.Status == models.RequestStatusPending {
			out = append(out, *req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memConnectionRepo) CountPendingForRecipient(userID uint) (int64, error) {
	pending, _ := r.GetPendingForRecipient(userID)
	return int64(len(pending)), nil
}

func (r *memConnectionRepo) AcceptRequest(id uint) error {
	req, ok := r.requests[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if req.Status != models.RequestStatusPending {
		return repositories.ErrAlreadyProcessed
	}
	req.Status = models.RequestStatusAccepted
	now := r.tick()
	r.edges[[2]uint{req.SenderID, req.RecipientID}] = now
	r.edges[[2]uint{req.RecipientID, req.SenderID}] = now
	return nil
}

func (r *memConnectionRepo) RejectRequest(id uint) error {
	req, ok := r.requests[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if req.Status != models.RequestStatusPending {
		return repositories.ErrAlreadyProcessed
	}
	req.Status = models.RequestStatusRejected
	return nil
}

func (r *memConnectionRepo) ListConnections(userID uint) ([]models.Connection, error) {
	var out []models.Connection
	for pair, created := range r.edges {
		if pair[0] == userID {
			out = append(out, models.Connection{UserID: pair[0], PeerID: pair[1], CreatedAt: created})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memConnectionRepo) AreConnected(userID, peerID uint) (bool, error) {
	_, ok := r.edges[[2]uint{userID, peerID}]
	return ok, nil
}

func (r *memConnectionRepo) RemoveConnection(userID, peerID uint) error {
	delete(r.edges, [2]uint{userID, peerID})
	delete(r.edges, [2]uint{peerID, userID})
	return nil
}

// connect wires two users directly, bypassing the request workflow.
func (r *memConnectionRepo) connect(a, b uint) {
	now := r.tick()
	r.edges[[2]uint{a, b}] = now
	r.edges[[2]uint{b, a}] = now
}

type memAssociateRepo struct {
	edges map[[2]uint]time.Time
	now   time.Time
}

func newMemAssociateRepo() *memAssociateRepo {
	return &memAssociateRepo{
		edges: make(map[[2]uint]time.Time),
		now:   time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (r *memAssociateRepo) AddAssociate(assoc *models.Associate) error {
	if assoc.OwnerID == assoc.TargetID {
		return repositories.ErrInvalidTarget
	}
	key := [2]uint{assoc.OwnerID, assoc.TargetID}
	if _, ok := r.edges[key]; ok {
		return repositories.ErrAlreadyAssociate
	}
	r.now = r.now.Add(time.Second)
	assoc.CreatedAt = r.now
	r.edges[key] = r.now
	return nil
}

func (r *memAssociateRepo) RemoveAssociate(ownerID, targetID uint) error {
	delete(r.edges, [2]uint{ownerID, targetID})
	return nil
}

func (r *memAssociateRepo) IsAssociate(ownerID, targetID uint) (bool, error) {
	_, ok := r.edges[[2]uint{ownerID, targetID}]
	return ok, nil
}

func (r *memAssociateRepo) ListAssociates(ownerID uint) ([]models.Associate, error) {
	var out []models.Associate
	for pair, created := range r.edges {
		if pair[0] == ownerID {
			out = append(out, models.Associate{OwnerID: pair[0], TargetID: pair[1], CreatedAt: created})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type memMessageRepo struct {
	messages []models.Message
	now      time.Time
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{now: time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)}
}

func (r *memMessageRepo) CreateMessage(_ context.Context, msg *models.Message) error {
	if strings.TrimSpace(msg.Content) == "" {
		return repositories.ErrEmptyContent
	}
	r.now = r.now.Add(time.Second)
	msg.ID = primitive.NewObjectID()
	msg.Read = false
	msg.CreatedAt = r.now
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *memMessageRepo) GetConversation(_ context.Context, userA, userB uint) ([]models.Message, error) {
	var out []models.Message
	for _, msg := range r.messages {
		if (msg.SenderID == userA && msg.RecipientID == userB) ||
			(msg.SenderID == userB && msg.RecipientID == userA) {
			out = append(out, msg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memMessageRepo) MarkRead(_ context.Context, recipientID, senderID uint) (int64, error) {
	var count int64
	for i := range r.messages {
		msg := &r.messages[i]
		if msg.SenderID == senderID && msg.RecipientID == recipientID && !msg.Read {
			msg.Read = true
			count++
		}
	}
	return count, nil
}

func (r *memMessageRepo) LatestPerCounterpart(_ context.Context, userID uint) ([]models.Message, error) {
	latest := make(map[uint]models.Message)
	for _, msg := range r.messages {
		var counterpart uint
		switch userID {
		case msg.SenderID:
			counterpart = msg.RecipientID
		case msg.RecipientID:
			counterpart = msg.SenderID
		default:
			continue
		}
		if existing, ok := latest[counterpart]; !ok || msg.CreatedAt.After(existing.CreatedAt) {
			latest[counterpart] = msg
		}
	}
	out := make([]models.Message, 0, len(latest))
	for _, msg := range latest {
		out = append(out, msg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memMessageRepo) CountUnread(_ context.Context, recipientID uint) (int64, error) {
	var count int64
	for _, msg := range r.messages {
		if msg.RecipientID == recipientID && !msg.Read {
			count++
		}
	}
	return count, nil
}

func (r *memMessageRepo) EnsureIndexes(context.Context) error { return nil }
