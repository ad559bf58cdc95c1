package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeTaskService struct {
	createFn func(ctx context.Context, callerID, boardID uuid.UUID, in service.CreateTaskInput) (*model.BoardTask, error)
	getFn    func(ctx context.Context, callerID, taskID uuid.UUID) (*model.BoardTask, error)
	listFn   func(ctx context.Context, callerID, boardID uuid.UUID) ([]model.BoardTask, error)
	updateFn func(ctx context.Context, callerID, taskID uuid.UUID, in service.UpdateTaskInput) (*model.BoardTask, error)
	deleteFn func(ctx context.Context, callerID, taskID uuid.UUID) error
}

func (f *fakeTaskService) CreateTask(ctx context.Context, callerID, boardID uuid.UUID, in service.CreateTaskInput) (*model.BoardTask, error) {
	return f.createFn(ctx, callerID, boardID, in)
}

func (f *fakeTaskService) GetTask(ctx context.Context, callerID, taskID uuid.UUID) (*model.BoardTask, error) {
	return f.getFn(ctx, callerID, taskID)
}

func (f *fakeTaskService) ListBoardTasks(ctx context.Context, callerID, boardID uuid.UUID) ([]model.BoardTask, error) {
	return f.listFn(ctx, callerID, boardID)
}

func (f *fakeTaskService) UpdateTask(ctx context.Context, callerID, taskID uuid.UUID, in service.UpdateTaskInput) (*model.BoardTask, error) {
	return f.updateFn(ctx, callerID, taskID, in)
}

func (f *fakeTaskService) DeleteTask(ctx context.Context, callerID, taskID uuid.UUID) error {
	return f.deleteFn(ctx, callerID, taskID)
}

func setupTaskRouter(svc handler.TaskService, callerID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, callerID)
		c.Next()
	})

	h := handler.NewTaskHandler(svc)
	r.POST("/api/Task/board/:boardId", h.Create)
	r.GET("/api/Task/board/:boardId", h.GetByBoard)
	r.GET("/api/Task/:id", h.GetByID)
	r.PUT("/api/Task/:id", h.Update)
	r.DELETE("/api/Task/:id", h.Delete)
	return r
}

func sampleTask(boardID, statusID, callerID uuid.UUID, title string, pos int) *model.BoardTask {
	return &model.BoardTask{
		ID:        uuid.New(),
		BoardID:   boardID,
		StatusID:  statusID,
		Title:     title,
		Position:  pos,
		CreatedBy: callerID,
	}
}

func TestTaskHandler_Create(t *testing.T) {
	// Arrange
	callerID := uuid.New()
	boardID := uuid.New()
	statusID := uuid.New()

	svc := &fakeTaskService{
		createFn: func(_ context.Context, gotCaller, gotBoard uuid.UUID, in service.CreateTaskInput) (*model.BoardTask, error) {
			assert.Equal(t, callerID, gotCaller)
			assert.Equal(t, boardID, gotBoard)
			assert.Equal(t, "Ship release", in.Title)
			assert.Nil(t, in.StatusID)
			return sampleTask(boardID, statusID, callerID, in.Title, 2), nil
		},
	}
	router := setupTaskRouter(svc, callerID)

	body, _ := json.Marshal(gin.H{"title": "Ship release"})
	req, _ := http.NewRequest("POST", "/api/Task/board/"+boardID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)

	var dto handler.TaskDto
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &dto))
	assert.Equal(t, boardID.String(), dto.BoardID)
	assert.Equal(t, statusID.String(), dto.StatusID)
	assert.Equal(t, "Ship release", dto.Title)
	assert.Equal(t, 2, dto.Position)
}

func TestTaskHandler_Create_ViewerIsForbidden(t *testing.T) {
	// Arrange
	callerID := uuid.New()
	boardID := uuid.New()

	svc := &fakeTaskService{
		createFn: func(_ context.Context, _, _ uuid.UUID, _ service.CreateTaskInput) (*model.BoardTask, error) {
			return nil, service.ErrForbidden
		},
	}
	router := setupTaskRouter(svc, callerID)

	body, _ := json.Marshal(gin.H{"title": "Ship release"})
	req, _ := http.NewRequest("POST", "/api/Task/board/"+boardID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestTaskHandler_Create_MissingTitle(t *testing.T) {
	// Arrange
	router := setupTaskRouter(&fakeTaskService{}, uuid.New())

	body, _ := json.Marshal(gin.H{"description": "no title"})
	req, _ := http.NewRequest("POST", "/api/Task/board/"+uuid.New().String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestTaskHandler_GetByBoard(t *testing.T) {
	// Arrange
	callerID := uuid.New()
	boardID := uuid.New()
	statusID := uuid.New()

	svc := &fakeTaskService{
		listFn: func(_ context.Context, gotCaller, gotBoard uuid.UUID) ([]model.BoardTask, error) {
			assert.Equal(t, callerID, gotCaller)
			assert.Equal(t, boardID, gotBoard)
			return []model.BoardTask{
				*sampleTask(boardID, statusID, callerID, "First", 0),
				*sampleTask(boardID, statusID, callerID, "Second", 1),
			}, nil
		},
	}
	router := setupTaskRouter(svc, callerID)

	req, _ := http.NewRequest("GET", "/api/Task/board/"+boardID.String(), nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var dtos []handler.TaskDto
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &dtos))
	assert.Len(t, dtos, 2)
	assert.Equal(t, "First", dtos[0].Title)
	assert.Equal(t, 0, dtos[0].Position)
	assert.Equal(t, "Second", dtos[1].Title)
}

func TestTaskHandler_GetByBoard_NotAMember(t *testing.T) {
	// Arrange: callers without any role must see the board as absent
	svc := &fakeTaskService{
		listFn: func(_ context.Context, _, _ uuid.UUID) ([]model.BoardTask, error) {
			return nil, service.ErrNotFound
		},
	}
	router := setupTaskRouter(svc, uuid.New())

	req, _ := http.NewRequest("GET", "/api/Task/board/"+uuid.New().String(), nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestTaskHandler_Update_MoveAcrossColumns(t *testing.T) {
	// Arrange
	callerID := uuid.New()
	boardID := uuid.New()
	taskID := uuid.New()
	destStatus := uuid.New()

	svc := &fakeTaskService{
		updateFn: func(_ context.Context, _, gotTask uuid.UUID, in service.UpdateTaskInput) (*model.BoardTask, error) {
			assert.Equal(t, taskID, gotTask)
			assert.NotNil(t, in.StatusID)
			assert.Equal(t, destStatus, *in.StatusID)
			// A cross-column move lands at the end of the destination.
			moved := sampleTask(boardID, destStatus, callerID, "Moved", 3)
			moved.ID = taskID
			return moved, nil
		},
	}
	router := setupTaskRouter(svc, callerID)

	body, _ := json.Marshal(gin.H{"statusId": destStatus.String(), "position": 0})
	req, _ := http.NewRequest("PUT", "/api/Task/"+taskID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var dto handler.TaskDto
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &dto))
	assert.Equal(t, destStatus.String(), dto.StatusID)
	assert.Equal(t, 3, dto.Position)
}

func TestTaskHandler_Update_InvalidStatusID(t *testing.T) {
	// Arrange
	router := setupTaskRouter(&fakeTaskService{}, uuid.New())

	body, _ := json.Marshal(gin.H{"statusId": "not-a-uuid"})
	req, _ := http.NewRequest("PUT", "/api/Task/"+uuid.New().String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestTaskHandler_Update_NegativePosition(t *testing.T) {
	// Arrange
	router := setupTaskRouter(&fakeTaskService{}, uuid.New())

	body, _ := json.Marshal(gin.H{"position": -1})
	req, _ := http.NewRequest("PUT", "/api/Task/"+uuid.New().String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestTaskHandler_Update_ConcurrentConflict(t *testing.T) {
	// Arrange
	svc := &fakeTaskService{
		updateFn: func(_ context.Context, _, _ uuid.UUID, _ service.UpdateTaskInput) (*model.BoardTask, error) {
			return nil, service.ErrConflict
		},
	}
	router := setupTaskRouter(svc, uuid.New())

	body, _ := json.Marshal(gin.H{"position": 1})
	req, _ := http.NewRequest("PUT", "/api/Task/"+uuid.New().String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestTaskHandler_Delete(t *testing.T) {
	// Arrange
	callerID := uuid.New()
	taskID := uuid.New()
	called := false

	svc := &fakeTaskService{
		deleteFn: func(_ context.Context, gotCaller, gotTask uuid.UUID) error {
			called = true
			assert.Equal(t, callerID, gotCaller)
			assert.Equal(t, taskID, gotTask)
			return nil
		},
	}
	router := setupTaskRouter(svc, callerID)

	req, _ := http.NewRequest("DELETE", "/api/Task/"+taskID.String(), nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusNoContent, resp.Code)
	assert.True(t, called)
}

func TestTaskHandler_Delete_NotFound(t *testing.T) {
	// Arrange
	svc := &fakeTaskService{
		deleteFn: func(_ context.Context, _, _ uuid.UUID) error {
			return service.ErrNotFound
		},
	}
	router := setupTaskRouter(svc, uuid.New())

	req, _ := http.NewRequest("DELETE", "/api/Task/"+uuid.New().String(), nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestTaskHandler_NoUserInContext(t *testing.T) {
	// Arrange: no auth middleware, so the context carries no user ID
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewTaskHandler(&fakeTaskService{})
	r.GET("/api/Task/:id", h.GetByID)

	req, _ := http.NewRequest("GET", "/api/Task/"+uuid.New().String(), nil)

	// Act
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
