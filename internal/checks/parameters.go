package checks

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrUnknownOption is returned when an override names an option the
	// check does not declare.
	ErrUnknownOption = errors.New("unknown option")
	// ErrInvalidOption is returned when an option value cannot be parsed as
	// the declared type.
	ErrInvalidOption = errors.New("invalid option value")
)

// OptionType is the declared type of an Option value.
type OptionType string

const (
	OptionString OptionType = "string"
	OptionInt    OptionType = "int"
	OptionBool   OptionType = "bool"
	// OptionList is a comma-separated list of strings. Items are trimmed and
	// empty items dropped.
	OptionList OptionType = "list"
)

// Parameters is the effective, validated option set of one check for one
// run. It is immutable and safe to share between goroutines.
type Parameters struct {
	checkID string
	raw     map[string]string
	values  map[string]any
}

// BuildParameters resolves schema defaults and overrides into Parameters.
// Overrides must name declared options and parse as the declared type.
func BuildParameters(checkID string, schema []Option, overrides map[string]string) (Parameters, error) {
	p := Parameters{
		checkID: checkID,
		raw:     make(map[string]string, len(schema)),
		values:  make(map[string]any, len(schema)),
	}
	declared := make(map[string]Option, len(schema))
	for _, opt := range schema {
		declared[opt.Name] = opt
	}

	var errs []error
	for name := range overrides {
		if _, ok := declared[name]; !ok {
			errs = append(errs, fmt.Errorf("%s: %w %q", checkID, ErrUnknownOption, name))
		}
	}

	for _, opt := range schema {
		raw := opt.Default
		if v, ok := overrides[opt.Name]; ok {
			raw = v
		}
		v, err := parseOption(opt.Type, raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w for %q: %v", checkID, ErrInvalidOption, opt.Name, err))
			continue
		}
		p.raw[opt.Name] = raw
		p.values[opt.Name] = v
	}

	if len(errs) > 0 {
		sort.Slice(errs, func(i, j int) bool { return errs[i].Error() < errs[j].Error() })
		return Parameters{}, errors.Join(errs...)
	}
	return p, nil
}

// MustParameters is BuildParameters for tests and built-in defaults.
func MustParameters(c Check, overrides map[string]string) Parameters {
	p, err := BuildParameters(c.ID(), OptionsOf(c), overrides)
	if err != nil {
		panic(err)
	}
	return p
}

func parseOption(t OptionType, raw string) (any, error) {
	switch t {
	case OptionString, "":
		return raw, nil
	case OptionInt:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("expected an integer, got %q", raw)
		}
		return n, nil
	case OptionBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("expected true or false, got %q", raw)
		}
		return b, nil
	case OptionList:
		return SplitList(raw), nil
	default:
		return nil, fmt.Errorf("unsupported option type %q", t)
	}
}

// SplitList splits a comma-separated list, trimming items and dropping empty
// ones.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (p Parameters) lookup(name string) any {
	v, ok := p.values[name]
	if !ok {
		panic(fmt.Sprintf("check %s: option %q is not declared", p.checkID, name))
	}
	return v
}

// String returns a string option. Reading an undeclared option panics.
func (p Parameters) String(name string) string {
	s, ok := p.lookup(name).(string)
	if !ok {
		panic(fmt.Sprintf("check %s: option %q is not a string", p.checkID, name))
	}
	return s
}

// Int returns an integer option.
func (p Parameters) Int(name string) int {
	n, ok := p.lookup(name).(int)
	if !ok {
		panic(fmt.Sprintf("check %s: option %q is not an int", p.checkID, name))
	}
	return n
}

// Bool returns a boolean option.
func (p Parameters) Bool(name string) bool {
	b, ok := p.lookup(name).(bool)
	if !ok {
		panic(fmt.Sprintf("check %s: option %q is not a bool", p.checkID, name))
	}
	return b
}

// List returns a copy of a list option.
func (p Parameters) List(name string) []string {
	l, ok := p.lookup(name).([]string)
	if !ok {
		panic(fmt.Sprintf("check %s: option %q is not a list", p.checkID, name))
	}
	return append([]string(nil), l...)
}

// Raw returns the effective option values as written, for reporting.
func (p Parameters) Raw() map[string]string {
	out := make(map[string]string, len(p.raw))
	for k, v := range p.raw {
		out[k] = v
	}
	return out
}
