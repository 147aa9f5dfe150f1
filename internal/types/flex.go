package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexString accepts either a JSON string or a JSON number and keeps the
// textual form. Generators and clients are inconsistent about quoting
// quantities.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = FlexString(strings.TrimSpace(str))
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = FlexString(num.String())
		return nil
	}

	return fmt.Errorf("invalid quantity format: %s", string(data))
}

// FlexInt accepts a JSON number or a string holding an integer. Fractional
// numbers are rejected rather than truncated.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		if num != float64(int(num)) {
			return fmt.Errorf("expected whole number, got %v", num)
		}
		*n = FlexInt(int(num))
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		v, err := strconv.Atoi(strings.TrimSpace(str))
		if err != nil {
			return fmt.Errorf("invalid integer %q", str)
		}
		*n = FlexInt(v)
		return nil
	}

	return fmt.Errorf("invalid integer format: %s", string(data))
}
