package notification

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	notificationerrors "github.com/fenixfl1/CompuPay/internal/notification/errors"
	"github.com/fenixfl1/CompuPay/internal/shared/apperror"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const defaultKeepAlive = 25 * time.Second

type Handler struct {
	service   Service
	keepAlive time.Duration
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s, keepAlive: defaultKeepAlive}
}

func (h *Handler) Send(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.Send(c.Request.Context(), c.GetString("username"), req.Receiver, req.Message, req.Payload)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, res, "Notification sent")
}

func (h *Handler) List(c *gin.Context) {
	cond, err := filter.Bind(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	page := response.ParsePage(c)

	rows, total, err := h.service.List(c.Request.Context(), cond, page)
	if err != nil {
		response.Fail(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page)
	response.Success(c, http.StatusOK, rows, &meta)
}

func (h *Handler) MarkAsRead(c *gin.Context) {
	res, err := h.service.MarkAsRead(c.Request.Context(), c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

// Stream serves server-sent events: first the unread backlog, then live
// messages for the user and the tasks in ?task_ids=1,2.
func (h *Handler) Stream(c *gin.Context) {
	taskIDs, err := parseTaskIDs(c.Query("task_ids"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	ctx := c.Request.Context()
	sub, err := h.service.Subscribe(ctx, c.GetString("username"), taskIDs)
	if err != nil {
		response.Fail(c, err)
		return
	}
	defer sub.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	for _, m := range sub.Backlog {
		c.SSEvent("message", m)
	}
	c.Writer.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-sub.Live:
			if !ok {
				return
			}
			c.SSEvent("message", m)
			c.Writer.Flush()
		case <-ticker.C:
			c.SSEvent("ping", time.Now().Unix())
			c.Writer.Flush()
		}
	}
}

func parseTaskIDs(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || id <= 0 {
			return nil, notificationerrors.ErrInvalidTaskID
		}
		ids = append(ids, id)
	}
	return ids, nil
}
