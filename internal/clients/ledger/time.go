package ledger

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// flexTime handles the ledger's timestamp variants: RFC3339, LocalDateTime
// without a zone ("2006-01-02T15:04:05", optionally fractional), or plain dates.
type flexTime time.Time

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *flexTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("cannot unmarshal %s into timestamp", string(data))
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*t = flexTime(time.Time{})
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = flexTime(parsed)
			return nil
		}
	}
	// An unrecognized timestamp is display-only metadata, not worth failing the row
	*t = flexTime(time.Time{})
	return nil
}
