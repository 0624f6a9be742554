package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ridecircle/ridecircle_client/internal/client"
	"github.com/ridecircle/ridecircle_client/internal/pkg/response"
	"github.com/ridecircle/ridecircle_client/internal/pkg/ws"
	"github.com/ridecircle/ridecircle_client/internal/service"
)

// errorCode 服务层错误对应的响应码
func errorCode(err error) int {
	switch {
	case errors.Is(err, service.ErrNotLoggedIn):
		return response.CodeAuthFailed
	case errors.Is(err, service.ErrAdminRequired):
		return response.CodePermissionDenied
	case errors.Is(err, service.ErrInvalidPlan):
		return response.CodeParamError
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return response.CodeUpstreamUnavailable
	}

	switch status := client.StatusCode(err); {
	case status == http.StatusUnauthorized:
		return response.CodeAuthFailed
	case status == http.StatusForbidden:
		return response.CodePermissionDenied
	case status == http.StatusNotFound:
		return response.CodeResourceNotFound
	case status >= http.StatusInternalServerError:
		return response.CodeUpstreamUnavailable
	case status >= http.StatusBadRequest:
		return response.CodeParamError
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return response.CodeUpstreamUnavailable
	}
	return response.CodeServerError
}

// respondError 消息取上游原文
func respondError(c *gin.Context, err error) {
	response.Error(c, errorCode(err), service.ErrorMessage(err))
}

// notifier 写操作完成后向页面推送提示
type notifier struct {
	hub *ws.Hub
}

func (n notifier) done(c *gin.Context, message string, data interface{}) {
	n.hub.Toast(ws.ToastSuccess, message)
	response.SuccessWithMessage(c, message, data)
}

func (n notifier) fail(c *gin.Context, err error) {
	n.hub.Toast(ws.ToastError, service.ErrorMessage(err))
	respondError(c, err)
}

// parseID 读取路由参数 :id
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.ParamError(c, "invalid id")
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.ParamError(c, err.Error())
		return false
	}
	return true
}
