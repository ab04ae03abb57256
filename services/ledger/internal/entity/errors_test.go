package entity

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindAndStatus(t *testing.T) {
	wrapped := fmt.Errorf("%w: proof already used", ErrPaymentProofInvalid)
	assert.Equal(t, "PaymentProofInvalid", ErrorKind(wrapped))
	assert.Equal(t, http.StatusBadRequest, ErrorStatus(wrapped))

	assert.Equal(t, http.StatusFailedDependency, ErrorStatus(ErrRateUnavailable))
	assert.Equal(t, http.StatusConflict, ErrorStatus(ErrSeatsFull))
	assert.Equal(t, http.StatusNotFound, ErrorStatus(ErrPostNotFound))
	assert.Equal(t, http.StatusPaymentRequired, ErrorStatus(ErrInsufficientPayment))

	other := errors.New("boom")
	assert.Equal(t, "", ErrorKind(other))
	assert.Equal(t, http.StatusInternalServerError, ErrorStatus(other))
}
