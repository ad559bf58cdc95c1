package handler

import (
	"context"
	"net/http"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskService is the slice of the mutation service the task endpoints use.
type TaskService interface {
	CreateTask(ctx context.Context, callerID, boardID uuid.UUID, in service.CreateTaskInput) (*model.BoardTask, error)
	GetTask(ctx context.Context, callerID, taskID uuid.UUID) (*model.BoardTask, error)
	ListBoardTasks(ctx context.Context, callerID, boardID uuid.UUID) ([]model.BoardTask, error)
	UpdateTask(ctx context.Context, callerID, taskID uuid.UUID, in service.UpdateTaskInput) (*model.BoardTask, error)
	DeleteTask(ctx context.Context, callerID, taskID uuid.UUID) error
}

type TaskHandler struct {
	svc TaskService
}

func NewTaskHandler(svc TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

type createTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Priority    int        `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	AssigneeID  *string    `json:"assigneeId"`
	StatusID    *string    `json:"statusId"`
}

type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *int       `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	AssigneeID  *string    `json:"assigneeId"`
	StatusID    *string    `json:"statusId"`
	Position    *int       `json:"position"`
}

type TaskDto struct {
	ID          string  `json:"id"`
	BoardID     string  `json:"boardId"`
	StatusID    string  `json:"statusId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    int     `json:"priority"`
	DueDate     *string `json:"dueDate,omitempty"`
	AssigneeID  *string `json:"assigneeId,omitempty"`
	Position    int     `json:"position"`
	CreatedBy   string  `json:"createdBy"`
}

func taskDto(task *model.BoardTask) TaskDto {
	dto := TaskDto{
		ID:          task.ID.String(),
		BoardID:     task.BoardID.String(),
		StatusID:    task.StatusID.String(),
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Position:    task.Position,
		CreatedBy:   task.CreatedBy.String(),
	}
	if task.DueDate != nil {
		dueDate := task.DueDate.Format(time.RFC3339)
		dto.DueDate = &dueDate
	}
	if task.AssigneeID != nil {
		assignee := task.AssigneeID.String()
		dto.AssigneeID = &assignee
	}
	return dto
}

func parseOptionalUUID(c *gin.Context, value *string, field string) (*uuid.UUID, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	id, err := uuid.Parse(*value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + field + " format"})
		return nil, false
	}
	return &id, true
}

// Create adds a task to a board
// @Summary      Create a task
// @Description  The task is appended to the given status, or to the board's first status when statusId is omitted.
// @Tags         Tasks
// @Security     BearerAuth
// @Success      201 {object} TaskDto
// @Router       /api/Task/board/{boardId} [post]
func (h *TaskHandler) Create(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseUUIDParam(c, "boardId")
	if !ok {
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	statusID, ok := parseOptionalUUID(c, req.StatusID, "status ID")
	if !ok {
		return
	}
	assigneeID, ok := parseOptionalUUID(c, req.AssigneeID, "assignee ID")
	if !ok {
		return
	}

	task, err := h.svc.CreateTask(c.Request.Context(), callerID, boardID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		AssigneeID:  assigneeID,
		StatusID:    statusID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, taskDto(task))
}

// GetByBoard lists tasks of a board ordered by status and position
// @Summary      List tasks of a board
// @Tags         Tasks
// @Security     BearerAuth
// @Router       /api/Task/board/{boardId} [get]
func (h *TaskHandler) GetByBoard(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseUUIDParam(c, "boardId")
	if !ok {
		return
	}

	tasks, err := h.svc.ListBoardTasks(c.Request.Context(), callerID, boardID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TaskDto, len(tasks))
	for i := range tasks {
		response[i] = taskDto(&tasks[i])
	}
	c.JSON(http.StatusOK, response)
}

// GetByID returns a single task
// @Summary      Get a task
// @Tags         Tasks
// @Security     BearerAuth
// @Router       /api/Task/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.svc.GetTask(c.Request.Context(), callerID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskDto(task))
}

// Update edits task fields and moves the task between or within columns
// @Summary      Update a task
// @Description  Changing statusId places the task at the end of the target column; changing only position re-indexes the current column.
// @Tags         Tasks
// @Security     BearerAuth
// @Success      200 {object} TaskDto
// @Router       /api/Task/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	statusID, ok := parseOptionalUUID(c, req.StatusID, "status ID")
	if !ok {
		return
	}
	assigneeID, ok := parseOptionalUUID(c, req.AssigneeID, "assignee ID")
	if !ok {
		return
	}
	if req.Position != nil && *req.Position < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Position must not be negative"})
		return
	}

	task, err := h.svc.UpdateTask(c.Request.Context(), callerID, taskID, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		AssigneeID:  assigneeID,
		StatusID:    statusID,
		Position:    req.Position,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskDto(task))
}

// Delete removes a task and compacts its column
// @Summary      Delete a task
// @Tags         Tasks
// @Security     BearerAuth
// @Success      204
// @Router       /api/Task/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteTask(c.Request.Context(), callerID, taskID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
