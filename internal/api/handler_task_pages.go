package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ShowAddTask handles GET /add-task.
func (h *PageHandler) ShowAddTask(c *gin.Context) {
	username, loggedIn := currentUsername(c)
	if !loggedIn {
		c.Redirect(http.StatusFound, "/")
		return
	}

	accountID, err := h.accounts.IDOf(c.Request.Context(), username)
	if err != nil {
		h.serverError(c, "add-task: failed to resolve account id", err)
		return
	}
	c.HTML(http.StatusOK, "add-task.html", gin.H{"user_id": accountID, "login": true})
}

// AddTask handles POST /add-task/:id. The path id is only a cross-check: the
// task is written against the session-derived account id, and only when the
// two ids agree.
func (h *PageHandler) AddTask(c *gin.Context) {
	username, loggedIn := currentUsername(c)
	if !loggedIn {
		c.Redirect(http.StatusFound, "/")
		return
	}

	pathID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	accountID, err := h.accounts.IDOf(c.Request.Context(), username)
	if err != nil {
		h.serverError(c, "add-task: failed to resolve account id", err)
		return
	}

	if pathID != accountID {
		h.logger.Warn("add-task: path id does not match session account",
			zap.Int("path_id", pathID),
			zap.Int("account_id", accountID),
		)
		c.HTML(http.StatusOK, "add-task.html", gin.H{
			"message": msgTaskNotAdded,
			"user_id": pathID,
			"login":   true,
		})
		return
	}

	// The only input gate is field presence; empty values are insertable.
	title, hasTitle := c.GetPostForm("title")
	description, hasDescription := c.GetPostForm("description")
	if !hasTitle || !hasDescription {
		c.HTML(http.StatusOK, "add-task.html", gin.H{
			"message": msgTaskNotAdded,
			"user_id": pathID,
			"login":   true,
		})
		return
	}

	if _, err := h.tasks.Create(c.Request.Context(), accountID, title, description); err != nil {
		h.serverError(c, "add-task: failed to create task", err)
		return
	}
	c.HTML(http.StatusOK, "add-task.html", gin.H{
		"message": msgTaskAdded,
		"user_id": pathID,
		"login":   true,
	})
}

// Tasks handles GET /tasks.
func (h *PageHandler) Tasks(c *gin.Context) {
	username, loggedIn := currentUsername(c)
	if !loggedIn {
		c.Redirect(http.StatusFound, "/")
		return
	}

	accountID, err := h.accounts.IDOf(c.Request.Context(), username)
	if err != nil {
		h.serverError(c, "tasks: failed to resolve account id", err)
		return
	}

	tasks, err := h.tasks.ListByOwner(c.Request.Context(), accountID)
	if err != nil {
		h.serverError(c, "tasks: failed to list tasks", err)
		return
	}
	c.HTML(http.StatusOK, "tasks.html", gin.H{"tasks_list": tasks, "login": true})
}

// DeleteTask handles GET /delete/:id. A non-owner request is a silent no-op;
// the redirect is identical either way.
func (h *PageHandler) DeleteTask(c *gin.Context) {
	username, loggedIn := currentUsername(c)
	if !loggedIn {
		c.Redirect(http.StatusFound, "/")
		return
	}

	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	accountID, err := h.accounts.IDOf(c.Request.Context(), username)
	if err != nil {
		h.serverError(c, "delete: failed to resolve account id", err)
		return
	}

	result, err := h.tasks.Delete(c.Request.Context(), taskID, accountID)
	if err != nil {
		h.serverError(c, "delete: failed to delete task", err)
		return
	}
	h.logger.Info("delete: task delete attempt",
		zap.Int("task_id", taskID),
		zap.Int("account_id", accountID),
		zap.String("result", result.String()),
	)
	c.Redirect(http.StatusFound, "/tasks")
}

// RedirectHome handles methods the browser surface does not accept, such as
// GET /add-task/:id.
func (h *PageHandler) RedirectHome(c *gin.Context) {
	c.Redirect(http.StatusFound, "/")
}
