package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/service"
	"taskboard/internal/util"
	"taskboard/pkg/metrics"
)

// APIHandler serves the JSON surface. Bearer tokens are stateless; the owner
// id for every write comes from the verified token, never from the payload.
type APIHandler struct {
	accounts  *service.AccountService
	tasks     *service.TaskService
	jwtSecret string
	logger    *zap.Logger
}

func NewAPIHandler(
	accounts *service.AccountService,
	tasks *service.TaskService,
	jwtSecret string,
	logger *zap.Logger,
) *APIHandler {
	return &APIHandler{
		accounts:  accounts,
		tasks:     tasks,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// Register handles POST /api/register.
func (h *APIHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	a, err := h.accounts.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "account already exists"})
			return
		}
		h.logger.Error("api register failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	token, err := util.GenerateJWT(a.ID, h.jwtSecret)
	if err != nil {
		h.logger.Error("api register: failed to sign token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// Login handles POST /api/login.
func (h *APIHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	ok, err := h.accounts.VerifyCredentials(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Error("api login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in"})
		return
	}
	if !ok {
		metrics.IncrementLogin("failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	accountID, err := h.accounts.IDOf(c.Request.Context(), req.Username)
	if err != nil {
		h.logger.Error("api login: failed to resolve account id", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in"})
		return
	}

	token, err := util.GenerateJWT(accountID, h.jwtSecret)
	if err != nil {
		h.logger.Error("api login: failed to sign token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in"})
		return
	}
	metrics.IncrementLogin("success")
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// ListTasks handles GET /api/tasks.
func (h *APIHandler) ListTasks(c *gin.Context) {
	accountID, exists := c.Get("account_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	tasks, err := h.tasks.ListByOwner(c.Request.Context(), accountID.(int))
	if err != nil {
		h.logger.Error("api list tasks failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tasks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// CreateTask handles POST /api/tasks.
func (h *APIHandler) CreateTask(c *gin.Context) {
	accountID, exists := c.Get("account_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	t, err := h.tasks.Create(c.Request.Context(), accountID.(int), req.Title, req.Description)
	if err != nil {
		h.logger.Error("api create task failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": t})
}

// DeleteTask handles DELETE /api/tasks/:id. A denied delete answers exactly
// like a successful one; only a missing task is distinguishable.
func (h *APIHandler) DeleteTask(c *gin.Context) {
	accountID, exists := c.Get("account_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	result, err := h.tasks.Delete(c.Request.Context(), taskID, accountID.(int))
	if err != nil {
		h.logger.Error("api delete task failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete task"})
		return
	}

	switch result {
	case service.DeleteResultNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
	default:
		c.Status(http.StatusNoContent)
	}
}
