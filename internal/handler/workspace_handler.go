package handler

import (
	"context"
	"net/http"
	"time"

	"taskboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WorkspaceService is the slice of the mutation service the workspace
// endpoints use.
type WorkspaceService interface {
	CreateWorkspace(ctx context.Context, callerID uuid.UUID, name string) (*model.Workspace, error)
	ListWorkspaces(ctx context.Context, callerID uuid.UUID) ([]model.Workspace, error)
	DeleteWorkspace(ctx context.Context, callerID, workspaceID uuid.UUID) error
}

type WorkspaceHandler struct {
	svc WorkspaceService
}

func NewWorkspaceHandler(svc WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{svc: svc}
}

type createWorkspaceRequest struct {
	Name string `json:"name" binding:"required"`
}

type WorkspaceResponse struct {
	ID        string `json:"id"`
	OwnerID   string `json:"ownerId"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

func workspaceResponse(ws *model.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:        ws.ID.String(),
		OwnerID:   ws.OwnerID.String(),
		Name:      ws.Name,
		CreatedAt: ws.CreatedAt.Format(time.RFC3339),
	}
}

// Create creates a workspace owned by the caller
// @Summary      Create a workspace
// @Tags         Workspaces
// @Security     BearerAuth
// @Router       /api/Workspace [post]
func (h *WorkspaceHandler) Create(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req createWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ws, err := h.svc.CreateWorkspace(c.Request.Context(), callerID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workspaceResponse(ws))
}

// GetAll lists the caller's workspaces
// @Summary      List workspaces
// @Tags         Workspaces
// @Security     BearerAuth
// @Router       /api/Workspace [get]
func (h *WorkspaceHandler) GetAll(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	workspaces, err := h.svc.ListWorkspaces(c.Request.Context(), callerID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]WorkspaceResponse, len(workspaces))
	for i := range workspaces {
		response[i] = workspaceResponse(&workspaces[i])
	}
	c.JSON(http.StatusOK, response)
}

// Delete removes a workspace and all boards under it
// @Summary      Delete a workspace
// @Tags         Workspaces
// @Security     BearerAuth
// @Router       /api/Workspace/{id} [delete]
func (h *WorkspaceHandler) Delete(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	workspaceID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteWorkspace(c.Request.Context(), callerID, workspaceID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
