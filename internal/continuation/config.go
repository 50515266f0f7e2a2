package continuation

import (
	"errors"
	"fmt"
)

// DefaultName is the continuation parameter name used when Config.Name is empty.
const DefaultName = "next"

// ErrUnknownAggregation is returned when parsing an unrecognised aggregation mode.
var ErrUnknownAggregation = errors.New("unknown aggregation")

// Aggregation decides how the verdicts of sibling statements (or sibling
// callback arguments) combine.
type Aggregation int

const (
	// AnyStatement: a block guarantees the call if any of its statements does.
	AnyStatement Aggregation = iota

	// LastStatement: the verdict of the last statement wins. This reproduces
	// the scan-and-overwrite behaviour of the ESLint rule the check comes from.
	LastStatement
)

var aggregationNames = map[Aggregation]string{
	AnyStatement:  "any",
	LastStatement: "last",
}

func (a Aggregation) String() string {
	v, ok := aggregationNames[a]
	if !ok {
		return fmt.Sprintf("invalid(%d)", int(a))
	}

	return v
}

// ParseAggregation parses "any" or "last".
func ParseAggregation(s string) (Aggregation, error) {
	for k, v := range aggregationNames {
		if v == s {
			return k, nil
		}
	}

	return AnyStatement, fmt.Errorf("%w %q (want any or last)", ErrUnknownAggregation, s)
}

// Set implements flag.Value.
func (a *Aggregation) Set(s string) error {
	v, err := ParseAggregation(s)
	if err != nil {
		return err
	}
	*a = v

	return nil
}

// UnmarshalText for setting values with configs.
func (a *Aggregation) UnmarshalText(text []byte) error {
	return a.Set(string(text))
}

// MarshalText is the inverse of UnmarshalText.
func (a Aggregation) MarshalText() ([]byte, error) {
	if _, ok := aggregationNames[a]; !ok {
		return nil, fmt.Errorf("%w %d", ErrUnknownAggregation, int(a))
	}

	return []byte(a.String()), nil
}

// Config parameterises the analysis. The zero value checks for `next` with
// AnyStatement aggregation.
type Config struct {
	// Name is the continuation parameter name.
	Name string

	// Aggregation selects how sibling statements combine.
	Aggregation Aggregation
}

func (c Config) name() string {
	if c.Name == "" {
		return DefaultName
	}

	return c.Name
}
