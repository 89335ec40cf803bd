package resource

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a numeric form field that browsers send either as a JSON number
// or as a string.
type Number struct {
	raw     string
	present bool
}

func NumberOf(v float64) Number {
	return Number{raw: strconv.FormatFloat(v, 'f', -1, 64), present: true}
}

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = Number{}
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		*n = Number{raw: s, present: s != ""}
		return nil
	}

	*n = Number{raw: string(b), present: true}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.present {
		return []byte("null"), nil
	}
	if f, err := n.parse(); err == nil {
		return json.Marshal(f)
	}
	return json.Marshal(n.raw)
}

// Present reports whether a non-empty value was sent.
func (n Number) Present() bool {
	return n.present
}

func (n Number) parse() (float64, error) {
	f, err := strconv.ParseFloat(n.raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrRange
	}
	return f, nil
}

// Positive parses the value and requires it to be finite and greater than zero.
func (n Number) Positive(field string) (float64, error) {
	f, err := n.parse()
	if err != nil || f <= 0 {
		return 0, Invalid("%s must be a positive number", field)
	}
	return f, nil
}

// PositiveInt is Positive truncated to an integer; the result must stay above zero.
func (n Number) PositiveInt(field string) (int64, error) {
	f, err := n.Positive(field)
	if err != nil {
		return 0, err
	}
	if f >= math.MaxInt64 || int64(f) <= 0 {
		return 0, Invalid("%s must be a positive number", field)
	}
	return int64(f), nil
}
