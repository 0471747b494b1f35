package response

import (
	"errors"
	"net/http"

	appErr "nmjl-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

type Body struct {
	Code int         `json:"code"`
	Data interface{} `json:"data"`
	Msg  string      `json:"msg"`
}

// PageData is the data of every paged list.
type PageData struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Size  int         `json:"size"`
}

func Success(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data, "")
}

func SuccessWithMsg(c *gin.Context, data interface{}, msg string) {
	JSON(c, http.StatusOK, data, msg)
}

func Page(c *gin.Context, items interface{}, total int64, page, size int) {
	Success(c, PageData{Items: items, Total: total, Page: page, Size: size})
}

func Error(c *gin.Context, status int, msg string) {
	JSON(c, status, gin.H{}, msg)
}

// FromError writes err with the status of the sentinel it wraps.
// Unknown errors are 500.
func FromError(c *gin.Context, err error) {
	Error(c, StatusOf(err), err.Error())
}

func StatusOf(err error) int {
	switch {
	case errors.Is(err, appErr.ErrInvalidHand), errors.Is(err, appErr.ErrInvalidTile):
		return http.StatusBadRequest
	case errors.Is(err, appErr.ErrHandNotFound), errors.Is(err, appErr.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, appErr.ErrTemplatesNotLoaded), errors.Is(err, appErr.ErrInvalidCardFile):
		return http.StatusServiceUnavailable
	case errors.Is(err, appErr.ErrAdminNotFound), errors.Is(err, appErr.ErrInvalidAdminPassword),
		errors.Is(err, appErr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, appErr.ErrAdminDisabled):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func JSON(c *gin.Context, status int, data interface{}, msg string) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(status, Body{
		Code: status,
		Data: data,
		Msg:  msg,
	})
}
