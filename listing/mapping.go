package listing

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StringNumber accepts string or number JSON and stores the textual form.
// Providers flip between the two across endpoint versions.
type StringNumber string

func (s *StringNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = StringNumber(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*s = StringNumber(num.String())
	return nil
}

// FirstNonEmpty returns the first non-empty value of an ordered fallback
// chain, or "" when none resolve.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// FirstPositive returns the first value greater than zero, or 0.
func FirstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}

// QualifyID prefixes a provider-supplied id with the source identifier so the
// canonical id space never collides across sources.
func QualifyID(source, id string) string {
	if id == "" {
		return FallbackID(source)
	}
	return source + "-" + id
}

// FallbackID generates a "{source}-{timestamp}-{random}" identifier for
// records the provider did not give a stable id.
func FallbackID(source string) string {
	return fmt.Sprintf("%s-%d-%s", source, time.Now().UnixMilli(), uuid.NewString()[:8])
}

// DaysOnMarketSince converts a provider list date into whole days on market.
// Returns 0 for a zero or future date, which the envelope then omits.
func DaysOnMarketSince(listed time.Time) int {
	if listed.IsZero() {
		return 0
	}
	d := int(time.Since(listed).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// AcresDescription renders a lot size given in square feet as acres with two
// decimal places, e.g. "0.29 acres". Empty when the provider reported nothing.
func AcresDescription(lotSqft float64) string {
	if lotSqft <= 0 {
		return ""
	}
	return fmt.Sprintf("%.2f acres", lotSqft/43560.0)
}
