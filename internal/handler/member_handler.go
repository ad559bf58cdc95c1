package handler

import (
	"context"
	"net/http"

	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MemberService is the slice of the mutation service the membership endpoints
// use.
type MemberService interface {
	AddBoardMember(ctx context.Context, callerID, boardID uuid.UUID, username, role string) (*service.Member, error)
	RemoveBoardMember(ctx context.Context, callerID, boardID, userID uuid.UUID) error
	ChangeMemberRole(ctx context.Context, callerID, boardID, userID uuid.UUID, role string) error
	ListBoardMembers(ctx context.Context, callerID, boardID uuid.UUID) ([]service.Member, error)
}

type MemberHandler struct {
	svc MemberService
}

func NewMemberHandler(svc MemberService) *MemberHandler {
	return &MemberHandler{svc: svc}
}

type addMemberRequest struct {
	Username string `json:"username" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type BoardUserResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func memberResponse(m *service.Member) BoardUserResponse {
	return BoardUserResponse{
		ID:       m.ID.String(),
		UserID:   m.UserID.String(),
		Username: m.Username,
		Role:     m.Role,
	}
}

// Add grants a user membership on a board
// @Summary      Add a board member
// @Tags         Board Members
// @Security     BearerAuth
// @Success      201 {object} BoardUserResponse
// @Router       /api/Board/{id}/users [post]
func (h *MemberHandler) Add(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	member, err := h.svc.AddBoardMember(c.Request.Context(), callerID, boardID, req.Username, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, memberResponse(member))
}

// GetAll lists a board's members
// @Summary      List board members
// @Tags         Board Members
// @Security     BearerAuth
// @Router       /api/Board/{id}/users [get]
func (h *MemberHandler) GetAll(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	members, err := h.svc.ListBoardMembers(c.Request.Context(), callerID, boardID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BoardUserResponse, len(members))
	for i := range members {
		response[i] = memberResponse(&members[i])
	}
	c.JSON(http.StatusOK, response)
}

// ChangeRole updates a member's role
// @Summary      Change a member's role
// @Tags         Board Members
// @Security     BearerAuth
// @Router       /api/Board/{id}/users/{userId} [put]
func (h *MemberHandler) ChangeRole(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseUUIDParam(c, "userId")
	if !ok {
		return
	}

	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.svc.ChangeMemberRole(c.Request.Context(), callerID, boardID, userID, req.Role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

// Remove revokes a user's membership
// @Summary      Remove a board member
// @Tags         Board Members
// @Security     BearerAuth
// @Router       /api/Board/{id}/users/{userId} [delete]
func (h *MemberHandler) Remove(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseUUIDParam(c, "userId")
	if !ok {
		return
	}

	if err := h.svc.RemoveBoardMember(c.Request.Context(), callerID, boardID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
