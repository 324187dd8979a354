package api

import (
	"errors"
	"html"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"msgboard/internal/auth"
	"msgboard/internal/service/board"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
	maxMessageLen  = 255
)

// Handler wires HTTP routes to the board and auth services.
type Handler struct {
	board     *board.Service
	auth      *auth.Service
	publicDir string
}

// NewHandler constructs a Handler instance.
func NewHandler(boardService *board.Service, authService *auth.Service, publicDir string) *Handler {
	return &Handler{
		board:     boardService,
		auth:      authService,
		publicDir: publicDir,
	}
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(securityHeaders())

	api := router.Group("/api")
	api.POST("/register", h.register)
	api.POST("/login", h.login)

	sessionMW := h.auth.RequireSession()
	api.POST("/logout", sessionMW, h.logout)
	api.GET("/profile", sessionMW, h.profile)
	api.POST("/message", sessionMW, h.postMessage)
	api.GET("/messages", sessionMW, h.listMessages)

	adminMW := h.auth.RequireRole("admin")
	api.GET("/users", sessionMW, adminMW, h.listUsers)
	api.DELETE("/users/:id", sessionMW, adminMW, h.deleteUser)

	router.GET("/dashboard", sessionMW, h.dashboard)
	router.GET("/", h.serveIndex)
	router.NoRoute(h.serveStatic)
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	username := html.EscapeString(strings.TrimSpace(req.Username))

	var errs []fieldError
	if utf8.RuneCountInString(username) < minUsernameLen {
		errs = append(errs, fieldError{Field: "username", Message: "must be at least 3 characters"})
	}
	if len(req.Password) < minPasswordLen {
		errs = append(errs, fieldError{Field: "password", Message: "must be at least 6 characters"})
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if _, err := h.board.RegisterUser(c.Request.Context(), username, req.Password); err != nil {
		// Duplicate usernames are not distinguished from other store errors.
		log.Printf("register user: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "user already exists or database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "user registered"})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	user, err := h.board.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, board.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		log.Printf("login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if err := h.auth.Establish(c, user); err != nil {
		log.Printf("establish session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	token, err := h.auth.IssueToken(user)
	if err != nil {
		log.Printf("issue token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token})
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.auth.Clear(c); err != nil {
		log.Printf("logout: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not log out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) dashboard(c *gin.Context) {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, "Welcome %s, this is your private area.", sess.User.Username)
}

func (h *Handler) profile(c *gin.Context) {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": sess.User, "role": sess.Role})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.board.ListUsers(c.Request.Context())
	if err != nil {
		log.Printf("list users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	// No existence check: deleting an unknown id still succeeds.
	if err := h.board.DeleteUser(c.Request.Context(), id); err != nil {
		log.Printf("delete user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type messageRequest struct {
	Text string `json:"text"`
}

func (h *Handler) postMessage(c *gin.Context) {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	texto := html.EscapeString(strings.TrimSpace(req.Text))

	var errs []fieldError
	if texto == "" {
		errs = append(errs, fieldError{Field: "text", Message: "is required"})
	}
	if utf8.RuneCountInString(texto) > maxMessageLen {
		errs = append(errs, fieldError{Field: "text", Message: "must be at most 255 characters"})
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if _, err := h.board.AddMessage(c.Request.Context(), sess.User.ID, texto); err != nil {
		log.Printf("add message: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) listMessages(c *gin.Context) {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	messages, err := h.board.ListMessages(c.Request.Context(), sess.User.ID)
	if err != nil {
		log.Printf("list messages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *Handler) serveIndex(c *gin.Context) {
	c.File(filepath.Join(h.publicDir, "index.html"))
}

// serveStatic is the catch-all fallback: GET requests resolve against the
// public directory, everything else is a JSON 404.
func (h *Handler) serveStatic(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	reqPath := c.Request.URL.Path
	if strings.Contains(reqPath, "..") {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	http.ServeFile(c.Writer, c.Request, filepath.Join(h.publicDir, filepath.Clean("/"+reqPath)))
}
