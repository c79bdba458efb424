package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/khatapro/khata-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// rangeParam returns the first non-empty of the given query params.
func rangeParam(c *fiber.Ctx, names ...string) string {
	for _, n := range names {
		if s := c.Query(n); s != "" {
			return s
		}
	}
	return ""
}

// parseDateRange reads the optional fromDate/toDate query params (YYYY-MM-DD).
// The short forms from/to are accepted as aliases.
func parseDateRange(c *fiber.Ctx) (repository.DateRange, error) {
	var r repository.DateRange
	if s := rangeParam(c, "fromDate", "from"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return r, err
		}
		r.From = &t
	}
	if s := rangeParam(c, "toDate", "to"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return r, err
		}
		// inclusive upper bound: end of day
		t = t.Add(24*time.Hour - time.Second)
		r.To = &t
	}
	return r, nil
}

// parsePage reads limit/offset with the listing defaults.
func parsePage(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
