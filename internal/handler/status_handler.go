package handler

import (
	"context"
	"net/http"

	"taskboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StatusService is the slice of the mutation service the status endpoints
// use.
type StatusService interface {
	CreateStatus(ctx context.Context, callerID, boardID uuid.UUID, title string) (*model.BoardStatus, error)
	RenameStatus(ctx context.Context, callerID, statusID uuid.UUID, title string) (*model.BoardStatus, error)
	DeleteStatus(ctx context.Context, callerID, statusID uuid.UUID) error
	ListStatuses(ctx context.Context, callerID, boardID uuid.UUID) ([]model.BoardStatus, error)
}

type StatusHandler struct {
	svc StatusService
}

func NewStatusHandler(svc StatusService) *StatusHandler {
	return &StatusHandler{svc: svc}
}

type createStatusRequest struct {
	BoardID string `json:"boardId" binding:"required,uuid"`
	Name    string `json:"name" binding:"required"`
}

type renameStatusRequest struct {
	Name string `json:"name" binding:"required"`
}

type BoardStatusResponse struct {
	ID       string `json:"id"`
	BoardID  string `json:"boardId"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

func statusResponse(status *model.BoardStatus) BoardStatusResponse {
	return BoardStatusResponse{
		ID:       status.ID.String(),
		BoardID:  status.BoardID.String(),
		Title:    status.Title,
		Position: status.Position,
	}
}

// Create adds a column at the end of a board
// @Summary      Create a status
// @Tags         Statuses
// @Security     BearerAuth
// @Success      201 {object} BoardStatusResponse
// @Router       /api/BoardStatus [post]
func (h *StatusHandler) Create(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req createStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	boardID, err := uuid.Parse(req.BoardID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	status, err := h.svc.CreateStatus(c.Request.Context(), callerID, boardID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, statusResponse(status))
}

// GetByBoard lists the columns of a board ordered by position
// @Summary      List statuses of a board
// @Tags         Statuses
// @Security     BearerAuth
// @Router       /api/Board/{id}/statuses [get]
func (h *StatusHandler) GetByBoard(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	statuses, err := h.svc.ListStatuses(c.Request.Context(), callerID, boardID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BoardStatusResponse, len(statuses))
	for i := range statuses {
		response[i] = statusResponse(&statuses[i])
	}
	c.JSON(http.StatusOK, response)
}

// Rename changes a column's title
// @Summary      Rename a status
// @Tags         Statuses
// @Security     BearerAuth
// @Router       /api/BoardStatus/{id} [put]
func (h *StatusHandler) Rename(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	statusID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req renameStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	status, err := h.svc.RenameStatus(c.Request.Context(), callerID, statusID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, statusResponse(status))
}

// Delete removes a column, its tasks, and compacts the remaining columns
// @Summary      Delete a status
// @Tags         Statuses
// @Security     BearerAuth
// @Router       /api/BoardStatus/{id} [delete]
func (h *StatusHandler) Delete(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	statusID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteStatus(c.Request.Context(), callerID, statusID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
