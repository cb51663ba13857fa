package service

import (
	"errors"
	"fmt"
)

// ErrPersistence 存储不可用或约束冲突，对外只暴露为通用失败
var ErrPersistence = errors.New("persistence failure")

// ValidationError 请求字段缺失或非法
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NotFoundError 引用的比赛/预测/联赛不存在
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func notFound(resource string, format string, args ...interface{}) error {
	return &NotFoundError{Resource: resource, ID: fmt.Sprintf(format, args...)}
}

func persistence(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}
