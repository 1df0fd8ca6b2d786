package task

import (
	"net/http"
	"strconv"

	"github.com/fenixfl1/CompuPay/internal/shared/apperror"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"
	taskerrors "github.com/fenixfl1/CompuPay/internal/task/errors"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.CreateTask(c.Request.Context(), req, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, res, res.Message)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	id, ok := pathID(c, taskerrors.ErrInvalidTaskID)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.UpdateTask(c.Request.Context(), id, req, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, res, "Task updated")
}

func (h *Handler) UpdateTaskState(c *gin.Context) {
	id, ok := pathID(c, taskerrors.ErrInvalidTaskID)
	if !ok {
		return
	}

	var req UpdateTaskStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.UpdateTaskState(c.Request.Context(), id, req, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, res, "Task state updated")
}

func (h *Handler) SetUsers(c *gin.Context) {
	id, ok := pathID(c, taskerrors.ErrInvalidTaskID)
	if !ok {
		return
	}

	var req TaskUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.AddOrRemoveUsers(c.Request.Context(), id, req.Users, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, res, "Task users updated")
}

func (h *Handler) AddTags(c *gin.Context) {
	id, ok := pathID(c, taskerrors.ErrInvalidTaskID)
	if !ok {
		return
	}

	var req TaskTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.AddTags(c.Request.Context(), id, req.Tags, c.GetString("username")); err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, nil, "Tags added")
}

func (h *Handler) RemoveTags(c *gin.Context) {
	id, ok := pathID(c, taskerrors.ErrInvalidTaskID)
	if !ok {
		return
	}

	var req TaskTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.RemoveTags(c.Request.Context(), id, req.Tags, c.GetString("username")); err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, nil, "Tags removed")
}

func (h *Handler) GetTask(c *gin.Context) {
	id, ok := pathID(c, taskerrors.ErrInvalidTaskID)
	if !ok {
		return
	}

	res, err := h.service.GetTask(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) ListTasks(c *gin.Context) {
	cond, err := filter.Bind(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	page := response.ParsePage(c)

	tasks, total, err := h.service.ListTasks(c.Request.Context(), cond, page)
	if err != nil {
		response.Fail(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page)
	response.Success(c, http.StatusOK, tasks, &meta)
}

func (h *Handler) CreateTag(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.CreateTag(c.Request.Context(), req, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, res, "Tag created")
}

func (h *Handler) UpdateTag(c *gin.Context) {
	id, ok := pathID(c, taskerrors.ErrInvalidTagID)
	if !ok {
		return
	}

	var req UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.UpdateTag(c.Request.Context(), id, req, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, res, "Tag updated")
}

func (h *Handler) ListTags(c *gin.Context) {
	cond, err := filter.Bind(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	page := response.ParsePage(c)

	tags, total, err := h.service.ListTags(c.Request.Context(), cond, page)
	if err != nil {
		response.Fail(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page)
	response.Success(c, http.StatusOK, tags, &meta)
}

func pathID(c *gin.Context, invalid error) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, invalid)
		return 0, false
	}
	return id, true
}
