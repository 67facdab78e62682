package handler

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mrops-br/catalog-viewer/internal/domain"
)

// parseCriteria reads filter criteria from form or query values. Absent fields take
// their defaults; checkboxes count as set when present with a truthy value.
func parseCriteria(values url.Values) (domain.Criteria, error) {
	c := domain.DefaultCriteria()
	c.Category = values.Get("category")
	c.Search = values.Get("search")
	c.FourStars = isChecked(values.Get("four_stars"))
	c.FiveStars = isChecked(values.Get("five_stars"))

	if raw := strings.TrimSpace(values.Get("max_price")); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c, fmt.Errorf("%w: max_price %q", domain.ErrInvalidCriteria, raw)
		}
		c.MaxPrice = price
	}

	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func isChecked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// parsePage reads a 1-based page number; empty means page 1
func parsePage(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrPageOutOfRange, raw)
	}
	return page, nil
}
