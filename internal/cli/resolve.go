package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// resolveProjectID resolves a project identifier (short ID, full UUID, or
// UUID prefix) to its UUID.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	p, err := app.Projects.Resolve(ctx, input)
	if err != nil {
		return "", err
	}
	return p.ID, nil
}

const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD flag value as midnight UTC.
func parseDate(flag, value string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date %q (use YYYY-MM-DD): %w", flag, value, err)
	}
	return t, nil
}

// parseAmount parses a non-negative decimal flag value.
func parseAmount(flag, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s %q: enter a non-negative number", flag, value)
	}
	return v, nil
}
