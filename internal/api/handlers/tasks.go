package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"pomotrack-backend/internal/repositories"
	"pomotrack-backend/internal/utils"
)

// GET /api/tasks
// ListTasks godoc
// @Summary List the caller's tasks
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /api/tasks [get]
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewareIdentity(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Authorization header required")
		return
	}

	tasks, err := h.tasks.ListForOwner(r.Context(), identity.UserID)
	if err != nil {
		log.Println("list tasks:", err)
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	utils.JSONResponse(w, http.StatusOK, map[string]any{"tasks": tasks})
}

// POST /api/tasks
// AddTask godoc
// @Summary Create a task
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Task
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/tasks [post]
func (h *Handler) AddTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewareIdentity(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Authorization header required")
		return
	}

	var input struct {
		Text string `json:"text"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if strings.TrimSpace(input.Text) == "" {
		utils.JSONError(w, http.StatusBadRequest, "Task text is required")
		return
	}

	task, err := h.tasks.Create(r.Context(), identity.UserID, input.Text)
	if err != nil {
		log.Println("add task:", err)
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	utils.JSONResponse(w, http.StatusCreated, task)
}

// DELETE /api/tasks/{id}
// DeleteTask godoc
// @Summary Delete a task owned by the caller
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task id"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/tasks/{id} [delete]
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewareIdentity(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Authorization header required")
		return
	}

	taskID, ok := parseTaskID(r)
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "Task not found")
		return
	}

	err := h.tasks.Delete(r.Context(), identity.UserID, taskID)
	switch {
	case err == nil:
	case errors.Is(err, repositories.ErrTaskNotFound):
		utils.JSONError(w, http.StatusNotFound, "Task not found")
		return
	default:
		log.Println("delete task:", err)
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	utils.JSONResponse(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

// POST /api/tasks/{id}/pomodoro
// IncrementPomodoro godoc
// @Summary Record a completed pomodoro on a task
// @Description Atomically bumps the task's pomodoro counter and returns the updated task.
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task id"
// @Success 200 {object} models.Task
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/tasks/{id}/pomodoro [post]
func (h *Handler) IncrementPomodoro(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewareIdentity(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Authorization header required")
		return
	}

	taskID, ok := parseTaskID(r)
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "Task not found")
		return
	}

	task, err := h.tasks.IncrementPomodoro(r.Context(), identity.UserID, taskID)
	switch {
	case err == nil:
	case errors.Is(err, repositories.ErrTaskNotFound):
		utils.JSONError(w, http.StatusNotFound, "Task not found")
		return
	default:
		log.Println("increment pomodoro:", err)
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	utils.JSONResponse(w, http.StatusOK, task)
}

// parseTaskID reads the {id} path value. A non-numeric id can't name any
// task, so callers treat failure as not found.
func parseTaskID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
