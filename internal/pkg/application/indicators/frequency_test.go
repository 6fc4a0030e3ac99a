package indicators

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestToleranceForDailyMonthlyAndYearlyCodes(t *testing.T) {
	is := is.New(t)

	tolerances := map[string]float64{
		"R/P1D":   1,
		"R/P7D":   7,
		"R/P1M":   30,
		"R/P6M":   180,
		"R/P0.5M": 15,
		"R/P1Y":   365,
		"R/P2Y":   730,
	}

	for code, expected := range tolerances {
		days, err := ToleranceDays(code)
		is.NoErr(err)
		is.Equal(days, expected)
	}
}

func TestMalformedCodesFailWithParseError(t *testing.T) {
	is := is.New(t)

	for _, code := range []string{"", "eventual", "R/P1W", "P1M", "R/PM", "R/P-1D", "daily"} {
		_, err := ToleranceDays(code)
		is.True(err != nil)

		parseErr := &FrequencyParseError{}
		is.True(errors.As(err, &parseErr))
		is.Equal(parseErr.Code, code)
	}
}

func TestZeroAmountIsRejected(t *testing.T) {
	is := is.New(t)

	_, err := ToleranceDays("R/P0D")
	is.True(err != nil)
}
