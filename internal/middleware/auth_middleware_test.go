package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clouddrop/server/internal/apperr"
	"github.com/clouddrop/server/internal/models"
	"github.com/clouddrop/server/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memUserStore struct {
	users map[string]models.User
}

func (m *memUserStore) Create(_ context.Context, user models.User) error {
	m.users[user.ID.Hex()] = user
	return nil
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, apperr.New(apperr.NotFound, "User not found")
}

func (m *memUserStore) FindByID(_ context.Context, id string) (models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return models.User{}, apperr.New(apperr.NotFound, "User not found")
	}
	return u, nil
}

func newTestApp(t *testing.T, ttl time.Duration) (*fiber.App, *services.TokenService, *memUserStore) {
	t.Helper()

	tokens, err := services.NewTokenService("test-secret", ttl)
	require.NoError(t, err)
	store := &memUserStore{users: make(map[string]models.User)}
	auth := services.NewAuthService(store, tokens)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(apperr.KindOf(err).Status()).JSON(fiber.Map{"message": apperr.MessageOf(err)})
		},
	})
	app.Get("/protected", NewAuthMiddleware(auth), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("user_id"),
			"email":   c.Locals("email"),
		})
	})

	return app, tokens, store
}

func addUser(store *memUserStore) models.User {
	user := models.User{
		ID:        primitive.NewObjectID(),
		Email:     "a@x.com",
		Name:      "Alice",
		CreatedAt: time.Now(),
	}
	store.users[user.ID.Hex()] = user
	return user
}

func request(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestMissingToken(t *testing.T) {
	app, _, _ := newTestApp(t, time.Hour)

	resp := request(t, app, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMalformedHeader(t *testing.T) {
	app, tokens, store := newTestApp(t, time.Hour)
	user := addUser(store)
	token, err := tokens.Issue(user.ID.Hex())
	require.NoError(t, err)

	for _, header := range []string{"Token " + token, "Bearer", "Bearer "} {
		resp := request(t, app, header)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}

func TestValidTokenAttachesIdentity(t *testing.T) {
	app, tokens, store := newTestApp(t, time.Hour)
	user := addUser(store)
	token, err := tokens.Issue(user.ID.Hex())
	require.NoError(t, err)

	resp := request(t, app, "Bearer "+token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	require.Equal(t, user.ID.Hex(), body["user_id"])
	require.Equal(t, user.Email, body["email"])
}

func TestExpiredToken(t *testing.T) {
	app, tokens, store := newTestApp(t, time.Millisecond)
	user := addUser(store)
	token, err := tokens.Issue(user.ID.Hex())
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	resp := request(t, app, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTokenForDeletedUser(t *testing.T) {
	app, tokens, store := newTestApp(t, time.Hour)
	user := addUser(store)
	token, err := tokens.Issue(user.ID.Hex())
	require.NoError(t, err)

	delete(store.users, user.ID.Hex())

	resp := request(t, app, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
