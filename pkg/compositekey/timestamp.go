package compositekey

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/apperror"
)

// Pattern is the canonical wire pattern of date/time key components.
const Pattern = "dd-MM-yyyy__HH:mm:ss:SSSSSS"

// Go cannot express a ':' before fractional seconds, so the micros are rendered separately.
const secondsLayout = "02-01-2006__15:04:05"

var timestampLen = len(secondsLayout) + 7

// FormatTimestamp renders t in the canonical pattern, in UTC, at microsecond precision.
func FormatTimestamp(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s:%06d", t.Format(secondsLayout), t.Nanosecond()/int(time.Microsecond))
}

// ParseTimestamp is the inverse of FormatTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	if len(s) != timestampLen || s[len(secondsLayout)] != ':' {
		return time.Time{}, apperror.InvalidKeyFormat("timestamp %q does not match %s", s, Pattern)
	}

	t, err := time.ParseInLocation(secondsLayout, s[:len(secondsLayout)], time.UTC)
	if err != nil {
		return time.Time{}, apperror.InvalidKeyFormat("timestamp %q does not match %s", s, Pattern)
	}

	micros := 0
	for _, c := range s[len(secondsLayout)+1:] {
		if c < '0' || c > '9' {
			return time.Time{}, apperror.InvalidKeyFormat("timestamp %q has a non-numeric fraction", s)
		}
		micros = micros*10 + int(c-'0')
	}

	return t.Add(time.Duration(micros) * time.Microsecond), nil
}

// Truncate normalises t to the precision and zone the codec can represent.
func Truncate(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// Timestamp is a time.Time that travels in the canonical pattern.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: Truncate(t)}
}

// Now returns the current instant as a Timestamp.
func Now() Timestamp {
	return NewTimestamp(time.Now())
}

func (t Timestamp) String() string {
	return FormatTimestamp(t.Time)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(FormatTimestamp(t.Time))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return apperror.InvalidKeyFormat("timestamp must be a string in %s", Pattern)
	}

	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
