package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/service"
	"taskboard/internal/session"
	"taskboard/pkg/metrics"
)

// User-visible messages. The credential failure message is deliberately the
// same for unknown usernames and wrong passwords.
const (
	msgFieldsRequired = "Username and password are required!"
	msgBadCredentials = "Account doesn't exist or password is wrong!"
	msgAccountExists  = "Account already exists!"
	msgTaskAdded      = "Task successfully added!"
	msgTaskNotAdded   = "Task could not be added!"
)

// PageHandler serves the browser-facing HTML surface.
type PageHandler struct {
	accounts *service.AccountService
	tasks    *service.TaskService
	sessions *session.Manager
	logger   *zap.Logger
}

func NewPageHandler(
	accounts *service.AccountService,
	tasks *service.TaskService,
	sessions *session.Manager,
	logger *zap.Logger,
) *PageHandler {
	return &PageHandler{
		accounts: accounts,
		tasks:    tasks,
		sessions: sessions,
		logger:   logger,
	}
}

// Home handles GET /.
func (h *PageHandler) Home(c *gin.Context) {
	_, loggedIn := currentUsername(c)
	c.HTML(http.StatusOK, "index.html", gin.H{"login": loggedIn})
}

// ShowLogin handles GET /login.
func (h *PageHandler) ShowLogin(c *gin.Context) {
	if _, loggedIn := currentUsername(c); loggedIn {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{"login": false})
}

// Login handles POST /login.
func (h *PageHandler) Login(c *gin.Context) {
	if _, loggedIn := currentUsername(c); loggedIn {
		c.Redirect(http.StatusFound, "/")
		return
	}

	username := c.PostForm("uname")
	password := c.PostForm("pwd")

	if username == "" || password == "" {
		c.HTML(http.StatusOK, "login.html", gin.H{"message": msgFieldsRequired, "login": false})
		return
	}

	ok, err := h.accounts.VerifyCredentials(c.Request.Context(), username, password)
	if err != nil {
		h.serverError(c, "login: failed to verify credentials", err)
		return
	}
	if !ok {
		metrics.IncrementLogin("failed")
		c.HTML(http.StatusOK, "login.html", gin.H{"message": msgBadCredentials, "login": false})
		return
	}

	if err := h.startSession(c, username); err != nil {
		h.serverError(c, "login: failed to start session", err)
		return
	}
	metrics.IncrementLogin("success")
	c.Redirect(http.StatusFound, "/")
}

// ShowRegister handles GET /register.
func (h *PageHandler) ShowRegister(c *gin.Context) {
	if _, loggedIn := currentUsername(c); loggedIn {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "register.html", gin.H{"login": false})
}

// Register handles POST /register.
func (h *PageHandler) Register(c *gin.Context) {
	if _, loggedIn := currentUsername(c); loggedIn {
		c.Redirect(http.StatusFound, "/")
		return
	}

	username := c.PostForm("uname")
	password := c.PostForm("pwd")

	if username == "" || password == "" {
		c.HTML(http.StatusOK, "register.html", gin.H{"message": msgFieldsRequired, "login": false})
		return
	}

	_, err := h.accounts.Register(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.HTML(http.StatusOK, "register.html", gin.H{"message": msgAccountExists, "login": false})
			return
		}
		h.serverError(c, "register: failed to create account", err)
		return
	}

	if err := h.startSession(c, username); err != nil {
		h.serverError(c, "register: failed to start session", err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Logout handles GET /logout.
func (h *PageHandler) Logout(c *gin.Context) {
	if v, ok := c.Get("session_token"); ok {
		if token, ok := v.(string); ok {
			if err := h.sessions.Destroy(c.Request.Context(), token); err != nil {
				h.logger.Error("logout: failed to destroy session", zap.Error(err))
			}
		}
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (h *PageHandler) startSession(c *gin.Context, username string) error {
	token, err := h.sessions.Start(c.Request.Context(), username)
	if err != nil {
		return err
	}
	c.SetCookie(sessionCookie, token, 0, "/", "", false, true)
	return nil
}

func (h *PageHandler) serverError(c *gin.Context, msg string, err error) {
	h.logger.Error(msg, zap.Error(err))
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{})
}
