package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Code int

const (
	BadRequestCode      Code = 40000
	UnauthenticatedCode Code = 40100
	NotFoundCode        Code = 40400
	TooManyRequestsCode Code = 42900
	UpstreamCode        Code = 50200
	InternalCode        Code = 50000
)

// ErrStrMap 錯誤碼對應的預設訊息
var ErrStrMap = map[Code]string{
	BadRequestCode:      "bad request",
	UnauthenticatedCode: "unauthenticated",
	NotFoundCode:        "not found",
	TooManyRequestsCode: "too many requests",
	UpstreamCode:        "upstream service error",
	InternalCode:        "internal server error",
}

// HTTPStatus 錯誤碼對應HTTP status
func (c Code) HTTPStatus() int {
	switch c {
	case BadRequestCode:
		return http.StatusBadRequest
	case UnauthenticatedCode:
		return http.StatusUnauthorized
	case NotFoundCode:
		return http.StatusNotFound
	case TooManyRequestsCode:
		return http.StatusTooManyRequests
	case UpstreamCode, InternalCode:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

type AppError struct {
	Code Code
	Msg  string
	Err  error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Msg, e.Err.Error())
	}
	return e.Msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code Code, msg string) *AppError {
	return &AppError{Code: code, Msg: msg}
}

func Newf(code Code, format string, args ...any) *AppError {
	return &AppError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, msg string, err error) *AppError {
	return &AppError{Code: code, Msg: msg, Err: err}
}

// CodeOf 取出錯誤碼, 非AppError一律視為Internal
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return InternalCode
}
