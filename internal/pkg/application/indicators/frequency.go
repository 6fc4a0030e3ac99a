package indicators

import (
	"fmt"
	"regexp"
	"strconv"
)

// FrequencyEventual marks datasets that are updated irregularly. They are
// never considered outdated.
const FrequencyEventual string = "eventual"

var repeatingInterval = regexp.MustCompile(`^R/P(\d+(?:\.\d+)?)([DMY])$`)

var unitDays = map[string]float64{
	"D": 1,
	"M": 30,
	"Y": 365,
}

type FrequencyParseError struct {
	Code string
}

func (e *FrequencyParseError) Error() string {
	return fmt.Sprintf("unrecognized frequency code %q", e.Code)
}

// ToleranceDays returns the number of days a dataset with the given
// accrualPeriodicity code may go without an update before it is considered
// outdated. Codes follow the ISO 8601 repeating interval syntax, e.g.
// R/P1D, R/P6M or R/P0.5Y. The "eventual" token has no tolerance window
// and is rejected here; callers are expected to check for it first.
func ToleranceDays(code string) (float64, error) {
	match := repeatingInterval.FindStringSubmatch(code)
	if match == nil {
		return 0, &FrequencyParseError{Code: code}
	}

	amount, err := strconv.ParseFloat(match[1], 64)
	if err != nil || amount <= 0 {
		return 0, &FrequencyParseError{Code: code}
	}

	return amount * unitDays[match[2]], nil
}
