package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"foodgram-backend/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMembershipToggle(t *testing.T) {
	ok := MembershipTogglesTotal.WithLabelValues("favorite", "add", ResultOK)
	rejected := MembershipTogglesTotal.WithLabelValues("favorite", "add", ResultRejected)
	failed := MembershipTogglesTotal.WithLabelValues("favorite", "add", ResultError)
	okBefore, rejBefore, errBefore := testutil.ToFloat64(ok), testutil.ToFloat64(rejected), testutil.ToFloat64(failed)

	RecordMembershipToggle("favorite", "add", nil)
	RecordMembershipToggle("favorite", "add", domain.NewValidationError("already there"))
	RecordMembershipToggle("favorite", "add", errors.New("db down"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, rejBefore+1, testutil.ToFloat64(rejected))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(failed))
}

func TestRecordSubscription(t *testing.T) {
	c := SubscriptionsTotal.WithLabelValues("subscribe", ResultRejected)
	before := testutil.ToFloat64(c)

	RecordSubscription("subscribe", domain.NewValidationError("self"))

	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/items/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Get("/metrics", Handler())

	counter := HTTPRequestsTotal.WithLabelValues("GET", "/items/:id", "204")
	before := testutil.ToFloat64(counter)

	_, err := app.Test(httptest.NewRequest("GET", "/items/1", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest("GET", "/items/2", nil))
	require.NoError(t, err)

	assert.Equal(t, before+2, testutil.ToFloat64(counter))

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "foodgram_http_requests_total"))
}
