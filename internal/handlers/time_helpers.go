package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/estilobarber/barberia-api/internal/timezone"
)

func parseDateIn(tz, dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, timezone.Location(tz))
}

// parseIDList splits "1,2,3" into ids, rejecting anything non-numeric.
func parseIDList(raw string) ([]uint, bool) {
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, false
		}
		ids = append(ids, uint(n))
	}
	return ids, len(ids) > 0
}

func parseUintParam(raw string) (uint, bool) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}
