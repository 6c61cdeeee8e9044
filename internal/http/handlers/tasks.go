package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rahulk1255/taskhub/internal/actorctx"
	"github.com/rahulk1255/taskhub/internal/cache"
	"github.com/rahulk1255/taskhub/internal/config"
	"github.com/rahulk1255/taskhub/internal/domain/task"
)

type TaskStore interface {
	Create(ctx context.Context, ownerID string, req task.CreateTaskRequest) (task.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]task.Task, error)
	Update(ctx context.Context, ownerID, id string, req task.UpdateTaskRequest) (task.Task, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type TasksHandler struct {
	repo  TaskStore
	cache cache.Store // optional; nil disables list caching
}

func NewTasksHandler(repo TaskStore, cacheStore cache.Store) *TasksHandler {
	return &TasksHandler{
		repo:  repo,
		cache: cacheStore,
	}
}

// ownerID reads the identity the auth middleware attached. A request
// reaching a task handler without one is a wiring bug, answered as 401.
func ownerID(ctx *gin.Context) (string, bool) {
	id, ok := actorctx.UserIDFrom(ctx.Request.Context())

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity context")
		return "", false
	}

	return id, true
}

func cacheKey(ownerID string) string {
	return "tasks:" + ownerID
}

func (h *TasksHandler) ListTasks(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	if h.cache != nil {
		if raw, hit := h.cache.Get(cctx, cacheKey(owner)); hit {
			var cached []task.Task

			if err := json.Unmarshal(raw, &cached); err == nil {
				ctx.JSON(http.StatusOK, cached)
				return
			}
		}
	}

	tasks, err := h.repo.ListByOwner(cctx, owner)

	if err != nil {
		RespondInternal(ctx, "Could not list tasks")
		return
	}

	if h.cache != nil {
		if raw, err := json.Marshal(tasks); err == nil {
			h.cache.Set(cctx, cacheKey(owner), raw)
		}
	}

	ctx.JSON(http.StatusOK, tasks)
}

func (h *TasksHandler) CreateTask(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}

	var req task.CreateTaskRequest

	if !BindJSON(ctx, &req) {
		return
	}

	req.Normalize()

	if v := task.ValidateContent(req.Title, req.Description); v != nil {
		RespondBadRequest(ctx, "Invalid task", gin.H{"fields": []FieldError{
			{Field: v.Field, Rule: v.Rule, Param: v.Param, Message: v.Message},
		}})
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	t, err := h.repo.Create(cctx, owner, req)

	if err != nil {
		RespondInternal(ctx, "Could not create task")
		return
	}

	h.invalidate(cctx, owner)

	ctx.JSON(http.StatusCreated, t)
}

func (h *TasksHandler) UpdateTask(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}

	id := ctx.Param("id")

	var req task.UpdateTaskRequest

	if !BindJSON(ctx, &req) {
		return
	}

	req.Normalize()

	if v := task.ValidateContent(req.Title, req.Description); v != nil {
		RespondBadRequest(ctx, "Invalid task", gin.H{"fields": []FieldError{
			{Field: v.Field, Rule: v.Rule, Param: v.Param, Message: v.Message},
		}})
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	t, err := h.repo.Update(cctx, owner, id, req)

	if err != nil {
		// covers both a missing task and someone else's task
		if errors.Is(err, task.ErrNotFound) {
			RespondNotFound(ctx, "Task not found")
			return
		}

		RespondInternal(ctx, "Could not update task")
		return
	}

	h.invalidate(cctx, owner)

	ctx.JSON(http.StatusOK, t)
}

func (h *TasksHandler) DeleteTask(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}

	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, owner, id)

	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			RespondNotFound(ctx, "Task not found")
			return
		}

		RespondInternal(ctx, "Could not delete task")
		return
	}

	h.invalidate(cctx, owner)

	ctx.Status(http.StatusNoContent)
}

func (h *TasksHandler) invalidate(ctx context.Context, owner string) {
	if h.cache != nil {
		h.cache.Delete(ctx, cacheKey(owner))
	}
}
