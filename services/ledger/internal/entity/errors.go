package entity

import (
	"errors"
	"net/http"
)

var (
	ErrRateUnavailable     = errors.New("ledger: exchange rate unavailable")
	ErrInvalidPost         = errors.New("ledger: invalid post price terms")
	ErrCommentsNotLocked   = errors.New("ledger: comments are not locked on this post")
	ErrSeatsFull           = errors.New("ledger: all investor seats are taken")
	ErrDuplicateSeat       = errors.New("ledger: user already holds an investor seat on this post")
	ErrPaymentProofInvalid = errors.New("ledger: payment proof invalid")
	ErrPostNotFound        = errors.New("ledger: post not found")
	ErrCurrencyNotAccepted = errors.New("ledger: currency not accepted for this post")
	ErrInsufficientPayment = errors.New("ledger: offered amount is below the payable amount")
	ErrInvalidRequest      = errors.New("ledger: invalid request")

	// ErrAlreadyUnlocked never reaches callers: the ledger reports it as a successful
	// unlock with FirstUnlock=false.
	ErrAlreadyUnlocked = errors.New("ledger: already unlocked")
)

type errorClass struct {
	err    error
	kind   string
	status int
}

var errorClasses = []errorClass{
	{ErrRateUnavailable, "RateUnavailable", http.StatusFailedDependency},
	{ErrInvalidPost, "InvalidPost", http.StatusUnprocessableEntity},
	{ErrCommentsNotLocked, "CommentsNotLocked", http.StatusBadRequest},
	{ErrSeatsFull, "SeatsFull", http.StatusConflict},
	{ErrDuplicateSeat, "DuplicateSeat", http.StatusConflict},
	{ErrPaymentProofInvalid, "PaymentProofInvalid", http.StatusBadRequest},
	{ErrPostNotFound, "PostNotFound", http.StatusNotFound},
	{ErrCurrencyNotAccepted, "CurrencyNotAccepted", http.StatusBadRequest},
	{ErrInsufficientPayment, "InsufficientPayment", http.StatusPaymentRequired},
	{ErrInvalidRequest, "InvalidRequest", http.StatusBadRequest},
	{ErrAlreadyUnlocked, "AlreadyUnlocked", http.StatusOK},
}

// ErrorKind returns the machine-readable kind of a ledger error, or "" for unexpected errors.
func ErrorKind(err error) string {
	for _, c := range errorClasses {
		if errors.Is(err, c.err) {
			return c.kind
		}
	}
	return ""
}

// ErrorStatus returns the HTTP status a ledger error is reported with.
func ErrorStatus(err error) int {
	for _, c := range errorClasses {
		if errors.Is(err, c.err) {
			return c.status
		}
	}
	return http.StatusInternalServerError
}
