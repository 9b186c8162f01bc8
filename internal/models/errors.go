package models

import (
	"fmt"
	"net/http"
)

type ErrorCode string // Машиночитаемый класс ошибки

const (
	CodeValidation        ErrorCode = "validation"
	CodeNotFound          ErrorCode = "not_found"
	CodeNotOwner          ErrorCode = "not_owner"
	CodeRequestNotOpen    ErrorCode = "request_not_open"
	CodeDuplicateBid      ErrorCode = "duplicate_bid"
	CodeBidNotPending     ErrorCode = "bid_not_pending"
	CodeTransactionFailed ErrorCode = "transaction_failed"

	// Транспортные классы, не входящие в доменную таксономию.
	CodeUnauthorized ErrorCode = "unauthorized"
	CodeBadRequest   ErrorCode = "bad_request"
	CodeInternal     ErrorCode = "internal"
)

// Error описывает ошибку с HTTP-кодом, классом и сообщением.
type Error struct {
	StatusCode int       `json:"-"`
	Code       ErrorCode `json:"code"`
	Message    string    `json:"reason"`
	cause      error
}

// Реализация метода Error() для удовлетворения интерфейса error.
func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewValidationError - нарушено ограничение на поле входных данных.
func NewValidationError(field, message string) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       CodeValidation,
		Message:    fmt.Sprintf("%s: %s", field, message),
	}
}

// NewNotFoundError - сущность с таким ID не существует.
func NewNotFoundError(entity string, id int64) *Error {
	return &Error{
		StatusCode: http.StatusNotFound,
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s %d not found", entity, id),
	}
}

// NewNotOwnerError - вызывающий не владеет изменяемой сущностью.
func NewNotOwnerError(entity string) *Error {
	return &Error{
		StatusCode: http.StatusForbidden,
		Code:       CodeNotOwner,
		Message:    fmt.Sprintf("you are not the owner of this %s", entity),
	}
}

// NewRequestNotOpenError - заявка больше не принимает предложений.
func NewRequestNotOpenError(requestID int64) *Error {
	return &Error{
		StatusCode: http.StatusConflict,
		Code:       CodeRequestNotOpen,
		Message:    fmt.Sprintf("request %d is no longer accepting offers", requestID),
	}
}

// NewDuplicateBidError - у гида уже есть предложение по этой заявке.
func NewDuplicateBidError(requestID int64) *Error {
	return &Error{
		StatusCode: http.StatusConflict,
		Code:       CodeDuplicateBid,
		Message:    fmt.Sprintf("you have already placed an offer for request %d", requestID),
	}
}

// NewBidNotPendingError - предложение уже обработано и не может меняться.
func NewBidNotPendingError(bidID int64) *Error {
	return &Error{
		StatusCode: http.StatusConflict,
		Code:       CodeBidNotPending,
		Message:    fmt.Sprintf("bid %d has already been processed", bidID),
	}
}

// NewTransactionFailedError - атомарное обновление не завершилось, изменения откатаны.
func NewTransactionFailedError(cause error) *Error {
	return &Error{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeTransactionFailed,
		Message:    "could not complete the acceptance, no changes were applied",
		cause:      cause,
	}
}
