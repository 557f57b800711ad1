package services

import (
	"context"
	"errors"
	"time"

	"github.com/clouddrop/server/internal/apperr"
	"github.com/clouddrop/server/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the credential store the auth service runs on.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
}

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// TokenService issues and verifies signed, expiring bearer tokens.
// Stateless: no revocation list, sign-out is purely client-side.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService fails closed on an empty secret; the server must
// never run in a state where it could issue unsigned tokens.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token signing secret is empty")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

func (t *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "Failed to sign token", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded user id.
// Both failure modes surface as Unauthenticated; the wrapped jwt error
// keeps them distinguishable.
func (t *TokenService) Verify(tokenString string) (string, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tk *jwt.Token) (interface{}, error) {
		if tk.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method: " + tk.Method.Alg())
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperr.Wrap(apperr.Unauthenticated, "Token expired", err)
		}
		return "", apperr.Wrap(apperr.Unauthenticated, "Invalid token", err)
	}
	if !token.Valid || claims.UserID == "" {
		return "", apperr.New(apperr.Unauthenticated, "Invalid token")
	}
	return claims.UserID, nil
}

// AuthService handles registration, login and token resolution.
type AuthService struct {
	users  UserStore
	tokens *TokenService
}

func NewAuthService(users UserStore, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a user with a bcrypt-hashed password and issues a
// token for the fresh account.
func (a *AuthService) Register(ctx context.Context, email, password, name string) (models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, "", apperr.Wrap(apperr.Internal, "Failed to hash password", err)
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Password:  string(hash),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := a.users.Create(ctx, user); err != nil {
		return models.User{}, "", err
	}

	token, err := a.tokens.Issue(user.ID.Hex())
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Login verifies credentials and issues a token. Unknown email and
// wrong password produce the same answer so the response never reveals
// whether an account exists.
func (a *AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	user, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return models.User{}, "", apperr.New(apperr.Unauthenticated, "Invalid credentials")
		}
		return models.User{}, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return models.User{}, "", apperr.New(apperr.Unauthenticated, "Invalid credentials")
	}

	token, err := a.tokens.Issue(user.ID.Hex())
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Authenticate resolves a bearer token to its user. A valid token for
// a vanished account still fails: possession of a signature is not
// identity.
func (a *AuthService) Authenticate(ctx context.Context, token string) (models.User, error) {
	userID, err := a.tokens.Verify(token)
	if err != nil {
		return models.User{}, err
	}

	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return models.User{}, apperr.New(apperr.Unauthenticated, "User not found")
		}
		return models.User{}, err
	}
	return user, nil
}

// GetUser fetches a user by id for profile reads.
func (a *AuthService) GetUser(ctx context.Context, id string) (models.User, error) {
	return a.users.FindByID(ctx, id)
}
