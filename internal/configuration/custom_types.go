package configuration

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// DutyFormula selects how a pulse width is scaled to a duty count.
type DutyFormula string

const (
	// DutyFormulaFullScale computes pulse * freq * 2^res / 1e6 in integer arithmetic.
	DutyFormulaFullScale DutyFormula = "full-scale"
	// DutyFormulaMaxCount computes (pulse * freq / 1e6) * (2^res - 1) in floating point
	// and truncates the result.
	DutyFormulaMaxCount DutyFormula = "max-count"
)

var SupportedDutyFormulas = []DutyFormula{DutyFormulaFullScale, DutyFormulaMaxCount}

func ParseDutyFormula(s string) (DutyFormula, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	switch normalized {
	case "", string(DutyFormulaFullScale), "fullscale", "pow2":
		return DutyFormulaFullScale, nil
	case string(DutyFormulaMaxCount), "maxcount", "pow2-1":
		return DutyFormulaMaxCount, nil
	}
	return "", fmt.Errorf("unsupported duty formula '%s', use one of: %s | %s", s, DutyFormulaFullScale, DutyFormulaMaxCount)
}

// DutyFormulaHookFunc returns a mapstructure decode hook function for DutyFormula.
func DutyFormulaHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{}) (interface{}, error) {

		if t != reflect.TypeOf(DutyFormula("")) {
			return data, nil
		}
		s, ok := data.(string)
		if !ok {
			return data, nil
		}
		return ParseDutyFormula(s)
	}
}

// AngleLimitHookFunc returns a mapstructure decode hook that additionally accepts
// the short list form `angleLimit: [0, 360]`.
func AngleLimitHookFunc() mapstructure.DecodeHookFuncType {
	limitType := reflect.TypeOf(AngleLimitConfig{})

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != limitType {
			return data, nil
		}

		items, ok := data.([]interface{})
		if !ok {
			return data, nil
		}
		if len(items) != 2 {
			return nil, fmt.Errorf("angleLimit: expected [min, max], got %d values", len(items))
		}
		lower, err := anyToInt(items[0])
		if err != nil {
			return nil, fmt.Errorf("angleLimit min: %w", err)
		}
		upper, err := anyToInt(items[1])
		if err != nil {
			return nil, fmt.Errorf("angleLimit max: %w", err)
		}
		return AngleLimitConfig{Min: lower, Max: upper}, nil
	}
}

// anyToInt converts numeric and string values to int.
func anyToInt(v interface{}) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as int: %w", val, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to int", v)
	}
}
