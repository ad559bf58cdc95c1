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

// BoardService is the slice of the mutation service the board endpoints use.
type BoardService interface {
	CreateBoard(ctx context.Context, callerID, workspaceID uuid.UUID, name, background string) (*model.Board, error)
	GetBoard(ctx context.Context, callerID, boardID uuid.UUID) (*model.Board, error)
	ListBoards(ctx context.Context, callerID uuid.UUID) ([]model.Board, error)
	UpdateBoard(ctx context.Context, callerID, boardID uuid.UUID, in service.UpdateBoardInput) (*model.Board, error)
	DeleteBoard(ctx context.Context, callerID, boardID uuid.UUID) error
}

type BoardHandler struct {
	svc BoardService
}

func NewBoardHandler(svc BoardService) *BoardHandler {
	return &BoardHandler{svc: svc}
}

type createBoardRequest struct {
	WorkspaceID string `json:"workspaceId" binding:"required,uuid"`
	Name        string `json:"name" binding:"required"`
	Background  string `json:"background"`
}

type updateBoardRequest struct {
	Name       *string `json:"name"`
	Background *string `json:"background"`
	IsArchived *bool   `json:"isArchived"`
}

type BoardResponse struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspaceId"`
	Name        string `json:"name"`
	Background  string `json:"background"`
	IsArchived  bool   `json:"isArchived"`
	CreatedAt   string `json:"createdAt"`
}

func boardResponse(board *model.Board) BoardResponse {
	return BoardResponse{
		ID:          board.ID.String(),
		WorkspaceID: board.WorkspaceID.String(),
		Name:        board.Name,
		Background:  board.Background,
		IsArchived:  board.IsArchived,
		CreatedAt:   board.CreatedAt.Format(time.RFC3339),
	}
}

// Create creates a board in a workspace the caller owns
// @Summary      Create a board
// @Tags         Boards
// @Security     BearerAuth
// @Router       /api/Board [post]
func (h *BoardHandler) Create(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req createBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	workspaceID, err := uuid.Parse(req.WorkspaceID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID format"})
		return
	}

	board, err := h.svc.CreateBoard(c.Request.Context(), callerID, workspaceID, req.Name, req.Background)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, boardResponse(board))
}

// GetAll lists every board visible to the caller
// @Summary      List boards
// @Tags         Boards
// @Security     BearerAuth
// @Router       /api/Board [get]
func (h *BoardHandler) GetAll(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	boards, err := h.svc.ListBoards(c.Request.Context(), callerID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BoardResponse, len(boards))
	for i := range boards {
		response[i] = boardResponse(&boards[i])
	}
	c.JSON(http.StatusOK, response)
}

// GetByID returns one board
// @Summary      Get a board
// @Tags         Boards
// @Security     BearerAuth
// @Router       /api/Board/{id} [get]
func (h *BoardHandler) GetByID(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	board, err := h.svc.GetBoard(c.Request.Context(), callerID, boardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, boardResponse(board))
}

// Update renames, recolors or archives a board
// @Summary      Update a board
// @Tags         Boards
// @Security     BearerAuth
// @Router       /api/Board/{id} [put]
func (h *BoardHandler) Update(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req updateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.svc.UpdateBoard(c.Request.Context(), callerID, boardID, service.UpdateBoardInput{
		Name:       req.Name,
		Background: req.Background,
		IsArchived: req.IsArchived,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, boardResponse(board))
}

// Delete removes a board with its statuses, tasks and members
// @Summary      Delete a board
// @Tags         Boards
// @Security     BearerAuth
// @Router       /api/Board/{id} [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteBoard(c.Request.Context(), callerID, boardID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
