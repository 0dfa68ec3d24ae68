package yderr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound         = "NOT_FOUND"
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidWorkbook  = "INVALID_WORKBOOK"
	CodeIngestInProgress = "INGEST_IN_PROGRESS"
	CodeInternalError    = "INTERNAL_ERROR"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = New(fiber.StatusNotFound, CodeNotFound, "resource not found with given parameters")

	// ErrInvalidReq is returned when a request is invalid.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrInvalidWorkbook is returned when an uploaded yard file cannot be read as a workbook.
	ErrInvalidWorkbook = New(fiber.StatusBadRequest, CodeInvalidWorkbook, "uploaded file is not a readable workbook")

	// ErrIngestInProgress is returned when an upload arrives while another one is still being parsed.
	ErrIngestInProgress = New(fiber.StatusConflict, CodeIngestInProgress, "another yard upload is still being processed")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")
)

type Extras map[string]any

type YardError struct {
	StatusCode int    `example:"400"`
	ErrorCode  string `example:"INVALID_REQUEST"`
	Message    string `example:"invalid request: some or all request parameters are invalid"`
	Extras     *Extras
}

func New(statusCode int, errorCode string, message string) *YardError {
	return &YardError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func (e YardError) Msg(format string, parts ...any) *YardError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e YardError) WithExtras(extras Extras) *YardError {
	e.Extras = &extras
	return &e
}

func NewInvalidViolations(violations any) *YardError {
	// copy ErrInvalidReq as e
	e := *ErrInvalidReq
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *YardError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}
