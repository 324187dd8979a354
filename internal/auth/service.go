package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"msgboard/internal/models"
	"msgboard/internal/session"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

// Bearer tokens expire one hour after issuance.
const TokenTTL = time.Hour

// Service establishes and destroys login sessions and mints bearer tokens.
type Service struct {
	sessions   session.Store
	secret     []byte
	cookieName string
	sessionTTL time.Duration
}

// NewService constructs an auth service over the supplied session store.
func NewService(store session.Store, secret string, sessionTTL time.Duration) *Service {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &Service{
		sessions:   store,
		secret:     []byte(secret),
		cookieName: "session_token",
		sessionTTL: sessionTTL,
	}
}

// Establish creates a server-side session for the user and sets the session
// cookie on the response.
func (s *Service) Establish(c *gin.Context, user *models.User) error {
	if user == nil || user.ID <= 0 {
		return errors.New("invalid user")
	}
	token, err := s.sessions.Create(c.Request.Context(), session.Session{
		User: session.Identity{ID: user.ID, Username: user.Username},
		Role: user.Role,
	})
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	s.setSessionCookie(c, token, int(s.sessionTTL.Seconds()))
	return nil
}

// Clear destroys the current session, if any, and expires the cookie.
// Clearing when no session exists behaves as a successful no-op.
func (s *Service) Clear(c *gin.Context) error {
	if token, err := c.Cookie(s.cookieName); err == nil && token != "" {
		if err := s.sessions.Destroy(c.Request.Context(), token); err != nil {
			return fmt.Errorf("destroy session: %w", err)
		}
	}
	s.setSessionCookie(c, "", -1)
	return nil
}

type tokenClaims struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken mints a signed bearer token carrying the user's identity and
// role. Tokens are returned to the client at login; no route consumes them.
func (s *Service) IssueToken(user *models.User) (string, error) {
	if user == nil || user.ID <= 0 {
		return "", errors.New("invalid user")
	}
	now := time.Now().UTC()
	claims := tokenClaims{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// CookieName returns the session cookie name.
func (s *Service) CookieName() string {
	return s.cookieName
}

func (s *Service) setSessionCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     s.cookieName,
		Value:    value,
		MaxAge:   maxAge,
		Path:     "/",
		Secure:   gin.Mode() == gin.ReleaseMode,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
