package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const dateLayout = "2006-01-02"

// ParseOptionalDate reads a YYYY-MM-DD form value as UTC midnight.
// Blank input is nil. Malformed input is also nil, but logged so the
// discarded value is visible to operators.
func ParseOptionalDate(ctx context.Context, field, raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		log.Ctx(ctx).Warn().Str("field", field).Str("value", raw).Msg("discarding malformed date")
		return nil
	}
	return &t
}

// FormatOptionalDate renders a date for a form input value.
func FormatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(dateLayout)
}
