package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainCarriesStatusAndMessage(t *testing.T) {
	err := Domainf(ErrMinSpendNotMet, "Minimum spend of ₹%.0f required.", 1500.0)

	assert.True(t, errors.Is(err, ErrMinSpendNotMet))
	assert.False(t, errors.Is(err, ErrInvalidCoupon))
	assert.Equal(t, http.StatusUnprocessableEntity, err.Status)
	assert.Equal(t, "Minimum spend of ₹1500 required.", MessageOf(err))
}

func TestDomainDefaultsMessage(t *testing.T) {
	err := Domain(ErrEmptyCart, "")
	assert.Equal(t, "cart is empty", err.Message)
	assert.Equal(t, http.StatusConflict, err.Status)
}

func TestAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("place order: %w", Domain(ErrNotLoggedIn, "please sign in"))

	var app *AppError
	require.True(t, errors.As(wrapped, &app))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(wrapped))
	assert.Equal(t, "please sign in", MessageOf(wrapped))
}

func TestStatusOfPlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
	assert.Equal(t, SystemErrorMessage, MessageOf(errors.New("boom")))
}

func TestWrapRedis(t *testing.T) {
	assert.NoError(t, WrapRedis(nil))

	nf := WrapRedis(redis.Nil)
	assert.True(t, errors.Is(nf, ErrNotFound))
	assert.True(t, errors.Is(nf, redis.Nil))
	assert.Equal(t, http.StatusNotFound, StatusOf(nf))

	down := WrapRedis(errors.New("connection refused"))
	assert.Equal(t, http.StatusBadGateway, StatusOf(down))
	assert.Equal(t, RedisErrorMessage, MessageOf(down))
}
