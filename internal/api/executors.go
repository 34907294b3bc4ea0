package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thenoetrevino/taskboard/internal/models"
)

type createExecutorRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Email string `json:"email" binding:"omitempty,email"`
}

// HandleListExecutors returns every executor ordered by name
func (h *Handler) HandleListExecutors(c *gin.Context) {
	executors, err := h.store.ListExecutors(c.Request.Context())
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	if executors == nil {
		executors = []models.Executor{}
	}
	c.JSON(http.StatusOK, executors)
}

// HandleCreateExecutor adds an executor
func (h *Handler) HandleCreateExecutor(c *gin.Context) {
	var req createExecutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	executor, err := h.store.CreateExecutor(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, executor)
}
