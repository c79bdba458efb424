package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khatapro/khata-api/internal/domain/repository"
)

func rangeFor(t *testing.T, query string) (repository.DateRange, int) {
	t.Helper()
	var got repository.DateRange
	app := fiber.New()
	app.Get("/r", func(c *fiber.Ctx) error {
		r, err := parseDateRange(c)
		if err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		got = r
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/r?"+query, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	return got, resp.StatusCode
}

func TestParseDateRange_FromDateToDate(t *testing.T) {
	r, status := rangeFor(t, "fromDate=2024-03-01&toDate=2024-03-31")
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, r.From)
	require.NotNil(t, r.To)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *r.From)
	// inclusive upper bound: end of the named day
	assert.Equal(t, time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC), *r.To)
}

func TestParseDateRange_ShortAliases(t *testing.T) {
	r, status := rangeFor(t, "from=2024-03-01&to=2024-03-31")
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, r.From)
	require.NotNil(t, r.To)
}

func TestParseDateRange_LongFormWins(t *testing.T) {
	r, status := rangeFor(t, "fromDate=2024-03-01&from=2023-01-01")
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, r.From)
	assert.Equal(t, 2024, r.From.Year())
}

func TestParseDateRange_AbsentIsOpen(t *testing.T) {
	r, status := rangeFor(t, "")
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, r.From)
	assert.Nil(t, r.To)
}

func TestParseDateRange_BadValueRejected(t *testing.T) {
	_, status := rangeFor(t, "fromDate=03-01-2024")
	assert.Equal(t, http.StatusBadRequest, status)
}
