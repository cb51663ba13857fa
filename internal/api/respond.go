package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"FootballPredict/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// errorResponder 把服务层错误映射为 HTTP 响应；release 模式下 500 只返回模糊信息
type errorResponder struct {
	logger  *logrus.Logger
	release bool
}

func (r errorResponder) fail(c *gin.Context, op string, err error) {
	var ve *service.ValidationError
	var nf *service.NotFoundError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation Error",
			"message": ve.Error(),
			"field":   ve.Field,
		})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Not Found",
			"message": nf.Error(),
		})
	default:
		r.logger.WithError(err).WithFields(logrus.Fields{
			"op":         op,
			"request_id": c.GetString(requestIDKey),
		}).Error("request failed")
		message := err.Error()
		if r.release {
			message = "Something went wrong"
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal Server Error",
			"message": message,
		})
	}
}

// ok 成功响应统一为 {success: true, data: ...}
func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// bindJSON 解析请求体，类型错误转换为带字段名的 ValidationError
func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &service.ValidationError{Field: typeErr.Field, Message: "must be a " + typeErr.Type.String()}
		}
		return &service.ValidationError{Field: "body", Message: err.Error()}
	}
	return nil
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &service.ValidationError{Field: key, Message: "must be an integer"}
	}
	return v, nil
}

const dateLayout = "2006-01-02"

// queryTime 支持 RFC3339 与 2006-01-02 两种格式，纯日期取当天零点
func queryTime(c *gin.Context, key string) (*time.Time, error) {
	t, _, err := parseQueryTime(c, key)
	return t, err
}

// queryEndTime 区间上界：纯日期取当天最后一刻，使 end=2024-01-31 包含 31 日全天
func queryEndTime(c *gin.Context, key string) (*time.Time, error) {
	t, dateOnly, err := parseQueryTime(c, key)
	if err != nil || t == nil || !dateOnly {
		return t, err
	}
	end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return &end, nil
}

func parseQueryTime(c *gin.Context, key string) (*time.Time, bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, false, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, false, nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return &t, true, nil
	}
	return nil, false, &service.ValidationError{Field: key, Message: "must be RFC3339 or YYYY-MM-DD"}
}

func paramID(c *gin.Context, key string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || id == 0 {
		return 0, &service.ValidationError{Field: key, Message: "must be a positive integer"}
	}
	return id, nil
}
