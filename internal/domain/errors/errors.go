package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalid = errors.New("invalid")
	ErrFatal   = errors.New("fatal")
)

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationError struct {
	Items []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Items) == 0 {
		return "validation failed"
	}

	var b strings.Builder
	b.WriteString("validation failed:\n")
	for _, item := range e.Items {
		b.WriteString(" - ")
		b.WriteString(item.Error())
		b.WriteString("\n")
	}
	return b.String()
}

func (e *ValidationError) Add(field, msg string) {
	e.Items = append(e.Items, FieldError{
		Field:   field,
		Message: msg,
	})
}

func (e ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func (e ValidationError) HasAny() bool {
	return len(e.Items) > 0
}

// StageError 标记构建中某个阶段的失败，Fatal 为 true 时整个构建中止。
type StageError struct {
	Stage string
	Fatal bool
	Err   error
}

func (e *StageError) Error() string {
	if e.Fatal {
		return fmt.Sprintf("%s (fatal): %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func (e *StageError) Is(target error) bool {
	return e.Fatal && target == ErrFatal
}
