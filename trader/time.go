package trader

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Layouts accepted on decode. The host may attach sub-second digits and
// a zone offset; both are dropped so wire timestamps carry whole seconds.
var decodeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
}

// encodeLayout always prints six fractional digits, matching the field
// width the host parser expects.
const encodeLayout = "2006-01-02T15:04:05.000000"

// Time 是委托/持仓记录里的可空时间字段。
type Time struct {
	time.Time
}

// NewTime truncates t to whole seconds, the wire precision.
func NewTime(t time.Time) *Time {
	return &Time{t.Truncate(time.Second)}
}

// ParseTime decodes a wire timestamp. An empty string decodes to "no
// timestamp"; anything else must match one of the accepted layouts.
func ParseTime(s string) (*Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range decodeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTime(t), nil
		}
	}
	return nil, fmt.Errorf("invalid timestamp %q", s)
}

func (t Time) String() string {
	return t.Format(encodeLayout)
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(encodeLayout))
}

func (t *Time) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil {
		return nil
	}
	parsed, err := ParseTime(*s)
	if err != nil {
		return err
	}
	if parsed != nil {
		*t = *parsed
	}
	return nil
}
