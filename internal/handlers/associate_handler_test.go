package handlers

import (
	"net/http"
	"testing"

	"github.com/archnet-io/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssociateFixture() (*AssociateHandler, *memUserRepo, *memAssociateRepo) {
	users := newMemUserRepo()
	associates := newMemAssociateRepo()
	return NewAssociateHandler(associates, users), users, associates
}

func TestAddAssociateIsOneDirectional(t *testing.T) {
	e := newTestEcho()
	handler, users, _ := newAssociateFixture()
	alice := users.addUser("Alice")
	bob := users.addUser("Bob")

	c, rec := newTestContext(t, e, http.MethodPost, "/api/v1/associates",
		models.AddAssociateRequest{TargetID: bob.ID}, alice.ID)
	require.NoError(t, handler.AddAssociate(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// Alice lists Bob
	c, rec = newTestContext(t, e, http.MethodGet, "/api/v1/associates", nil, alice.ID)
	require.NoError(t, handler.ListAssociates(c))
	var aliceList []models.UserSummary
	decodeBody(t, rec, &aliceList)
	require.Len(t, aliceList, 1)
	assert.Equal(t, bob.ID, aliceList[0].ID)

	// Bob's list stays empty
	c, rec = newTestContext(t, e, http.MethodGet, "/api/v1/associates", nil, bob.ID)
	require.NoError(t, handler.ListAssociates(c))
	var bobList []models.UserSummary
	decodeBody(t, rec, &bobList)
	assert.Empty(t, bobList)
}

func TestAddAssociateFailures(t *testing.T) {
	e := newTestEcho()
	handler, users, associates := newAssociateFixture()
	alice := users.addUser("Alice")
	bob := users.addUser("Bob")

	require.NoError(t, associates.AddAssociate(&models.Associate{OwnerID: alice.ID, TargetID: bob.ID}))

	cases := []struct {
		name       string
		targetID   uint
		wantStatus int
	}{
		{"self target", alice.ID, http.StatusBadRequest},
		{"target missing", 404, http.StatusNotFound},
		{"already an associate", bob.ID, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestContext(t, e, http.MethodPost, "/api/v1/associates",
				models.AddAssociateRequest{TargetID: tc.targetID}, alice.ID)
			assert.Equal(t, tc.wantStatus, httpStatus(handler.AddAssociate(c)))
		})
	}
}

func TestRemoveAssociateIdempotent(t *testing.T) {
	e := newTestEcho()
	handler, users, associates := newAssociateFixture()
	alice := users.addUser("Alice")
	bob := users.addUser("Bob")

	require.NoError(t, associates.AddAssociate(&models.Associate{OwnerID: alice.ID, TargetID: bob.ID}))

	// Removing twice succeeds both times
	for i := 0; i < 2; i++ {
		c, rec := newTestContext(t, e, http.MethodDelete, "/api/v1/associates/2", nil, alice.ID)
		c.SetParamNames("id")
		c.SetParamValues("2")
		require.NoError(t, handler.RemoveAssociate(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	still, _ := associates.IsAssociate(alice.ID, bob.ID)
	assert.False(t, still)
}

func TestListAssociatesCallerMissing(t *testing.T) {
	e := newTestEcho()
	handler, _, _ := newAssociateFixture()

	c, _ := newTestContext(t, e, http.MethodGet, "/api/v1/associates", nil, 99)
	assert.Equal(t, http.StatusNotFound, httpStatus(handler.ListAssociates(c)))
}

// A user can be a connection and an associate at the same time; the two
// relations never consult each other.
func TestAssociateIndependentOfConnections(t *testing.T) {
	e := newTestEcho()
	users := newMemUserRepo()
	associates := newMemAssociateRepo()
	connections := newMemConnectionRepo()
	handler := NewAssociateHandler(associates, users)
	alice := users.addUser("Alice")
	bob := users.addUser("Bob")

	connections.connect(alice.ID, bob.ID)

	c, rec := newTestContext(t, e, http.MethodPost, "/api/v1/associates",
		models.AddAssociateRequest{TargetID: bob.ID}, alice.ID)
	require.NoError(t, handler.AddAssociate(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
