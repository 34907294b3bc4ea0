package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thenoetrevino/taskboard/internal/models"
)

var errEmptyPatch = errors.New("request body changes nothing")

type createItemRequest struct {
	Title         string          `json:"title" binding:"required,max=255"`
	Description   string          `json:"description"`
	File          string          `json:"file"`
	Status        models.Status   `json:"status" binding:"required"`
	Priority      models.Priority `json:"priority" binding:"required"`
	Deadline      string          `json:"deadline" binding:"required"`
	ExecutorID    string          `json:"executor"`
	OrderInColumn int             `json:"orderInColumn" binding:"min=0"`
}

type countResponse struct {
	Count int `json:"count"`
}

// statusQuery reads ?status=, accepting any spelling ParseStatus does.
// ok is false if the parameter is present but invalid; the request is aborted.
func statusQuery(c *gin.Context, required bool) (models.Status, bool) {
	raw, present := c.GetQuery("status")
	if !present || raw == "" {
		if required {
			abortBadRequest(c, models.ErrInvalidStatus)
			return "", false
		}
		return "", true
	}
	status, err := models.ParseStatus(raw)
	if err != nil {
		abortBadRequest(c, err)
		return "", false
	}
	return status, true
}

// HandleListItems returns one column ordered by orderInColumn, or every item
// column by column when status is omitted
func (h *Handler) HandleListItems(c *gin.Context) {
	status, ok := statusQuery(c, false)
	if !ok {
		return
	}

	tasks, err := h.store.List(c.Request.Context(), status)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

// HandleCountItems returns the size of one column
func (h *Handler) HandleCountItems(c *gin.Context) {
	status, ok := statusQuery(c, true)
	if !ok {
		return
	}

	n, err := h.store.Count(c.Request.Context(), status)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, countResponse{Count: n})
}

// HandleCreateItem inserts a task as given; the caller chooses its order
func (h *Handler) HandleCreateItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	created, err := h.store.Insert(c.Request.Context(), models.Task{
		Title:         req.Title,
		Description:   req.Description,
		File:          req.File,
		Status:        req.Status,
		Priority:      req.Priority,
		Deadline:      req.Deadline,
		ExecutorID:    req.ExecutorID,
		OrderInColumn: req.OrderInColumn,
	})
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	h.notify(c, created.Status)
	c.JSON(http.StatusCreated, created)
}

// HandleUpdateItem applies a partial update
func (h *Handler) HandleUpdateItem(c *gin.Context) {
	var patch models.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortBadRequest(c, err)
		return
	}
	if patch.IsEmpty() {
		abortBadRequest(c, errEmptyPatch)
		return
	}

	updated, err := h.store.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	if patch.Status != nil {
		// The column it left is unknown here
		h.notify(c)
	} else {
		h.notify(c, updated.Status)
	}
	c.JSON(http.StatusOK, updated)
}

// HandleUpsertOrder rewrites orderInColumn for a batch of tasks, all or none
func (h *Handler) HandleUpsertOrder(c *gin.Context) {
	var updates []models.OrderUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		abortBadRequest(c, err)
		return
	}

	if err := h.store.BatchUpsert(c.Request.Context(), updates); err != nil {
		h.abortWithError(c, err)
		return
	}

	if len(updates) > 0 {
		h.notify(c)
	}
	c.Status(http.StatusNoContent)
}

// HandleDeleteItem removes a task
func (h *Handler) HandleDeleteItem(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.abortWithError(c, err)
		return
	}

	h.notify(c)
	c.Status(http.StatusNoContent)
}
