package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"CareTriage/util"

	"github.com/go-playground/validator/v10"
)

type FieldType string

const (
	String     FieldType = "string"
	Email      FieldType = "email"
	Date       FieldType = "date"
	DateTime   FieldType = "date-time"
	Integer    FieldType = "integer"
	StringList FieldType = "string-list"
)

const DateLayout = "2006-01-02"

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

var validate = validator.New()

// Field describes one attribute of an input document. NonEmpty rejects
// blank strings as if the field were missing.
type Field struct {
	Name        string
	Type        FieldType
	Required    bool
	NonEmpty    bool
	Default     interface{}
	Minimum     *int
	Maximum     *int
	Description string
}

// Entity is the ordered field table of one input document.
type Entity struct {
	Name   string
	Fields []Field
}

// Values holds decoded field values keyed by field name. Strings are
// string, dates are normalized strings, date-times are UTC time.Time,
// integers are int and lists are []string. Absent optional fields without a
// default are not present.
type Values map[string]interface{}

func bound(n int) *int { return &n }

/*
* Walk the field table in order
* Missing required fields, wrong types and range failures are all collected
* Unknown keys in data are ignored
 */
func (e Entity) Decode(data map[string]interface{}) (Values, error) {
	verr := &util.ValidationError{}
	values := Values{}
	for _, f := range e.Fields {
		raw, ok := data[f.Name]
		if !ok || raw == nil {
			if f.Required {
				verr.Add(f.Name, util.MissingField, util.FIELD_REQUIRED)
				continue
			}
			if def := f.defaultValue(); def != nil {
				values[f.Name] = def
			}
			continue
		}
		v, kind, msg := f.decode(raw)
		if kind != "" {
			verr.Add(f.Name, kind, msg)
			continue
		}
		values[f.Name] = v
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return values, nil
}

func (f Field) defaultValue() interface{} {
	if f.Type == StringList {
		return []string{}
	}
	return f.Default
}

func (f Field) decode(raw interface{}) (interface{}, util.Kind, string) {
	switch f.Type {
	case String, Email, Date, DateTime:
		s, ok := raw.(string)
		if !ok {
			return nil, util.InvalidFormat, util.INVALID_STRING
		}
		return f.decodeString(s)
	case Integer:
		n, kind := toInt(raw)
		switch kind {
		case util.InvalidFormat:
			return nil, kind, util.INVALID_INTEGER
		case util.OutOfRange:
			return nil, kind, util.INTEGER_TOO_LARGE
		}
		if rule := f.rangeRule(); rule != "" {
			if err := validate.Var(n, rule); err != nil {
				return nil, util.OutOfRange, f.rangeMessage()
			}
		}
		return n, "", ""
	case StringList:
		list, ok := toStrings(raw)
		if !ok {
			return nil, util.InvalidFormat, util.INVALID_STRING_LIST
		}
		return list, "", ""
	}
	return nil, util.InvalidFormat, fmt.Sprintf("unsupported field type %s", f.Type)
}

func (f Field) decodeString(s string) (interface{}, util.Kind, string) {
	if f.NonEmpty && strings.TrimSpace(s) == "" {
		return nil, util.MissingField, util.FIELD_REQUIRED
	}
	switch f.Type {
	case Email:
		if err := validate.Var(s, "email"); err != nil {
			return nil, util.InvalidFormat, util.INVALID_EMAIL
		}
	case Date:
		d, err := time.Parse(DateLayout, s)
		if err != nil {
			return nil, util.InvalidFormat, util.INVALID_DATE
		}
		return d.Format(DateLayout), "", ""
	case DateTime:
		t, ok := parseDateTime(s)
		if !ok {
			return nil, util.InvalidFormat, util.INVALID_DATETIME
		}
		return t, "", ""
	}
	return s, "", ""
}

func (f Field) rangeRule() string {
	var parts []string
	if f.Minimum != nil {
		parts = append(parts, fmt.Sprintf("gte=%d", *f.Minimum))
	}
	if f.Maximum != nil {
		parts = append(parts, fmt.Sprintf("lte=%d", *f.Maximum))
	}
	return strings.Join(parts, ",")
}

func (f Field) rangeMessage() string {
	switch {
	case f.Minimum != nil && f.Maximum != nil:
		return fmt.Sprintf("value must be between %d and %d", *f.Minimum, *f.Maximum)
	case f.Minimum != nil:
		return fmt.Sprintf("value must be greater than or equal to %d", *f.Minimum)
	case f.Maximum != nil:
		return fmt.Sprintf("value must be less than or equal to %d", *f.Maximum)
	}
	return util.VALUE_OUT_OF_RANGE
}

func parseDateTime(s string) (time.Time, bool) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// toInt accepts the numeric forms a JSON decoder produces. Fractional
// values are InvalidFormat; whole numbers beyond the int range are OutOfRange.
func toInt(raw interface{}) (int, util.Kind) {
	switch n := raw.(type) {
	case int:
		return n, ""
	case int32:
		return int(n), ""
	case int64:
		if n > math.MaxInt || n < math.MinInt {
			return 0, util.OutOfRange
		}
		return int(n), ""
	case float64:
		if math.IsNaN(n) || n != math.Trunc(n) {
			return 0, util.InvalidFormat
		}
		// float64(math.MaxInt) rounds up to 2^63, itself out of range
		if n >= math.MaxInt || n < math.MinInt {
			return 0, util.OutOfRange
		}
		return int(n), ""
	case json.Number:
		i, err := strconv.ParseInt(n.String(), 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			return 0, util.OutOfRange
		}
		if err != nil {
			// whole numbers written with an exponent, e.g. 1e3
			f, ferr := n.Float64()
			if ferr != nil {
				return 0, util.InvalidFormat
			}
			return toInt(f)
		}
		return toInt(i)
	}
	return 0, util.InvalidFormat
}

func toStrings(raw interface{}) ([]string, bool) {
	switch list := raw.(type) {
	case []string:
		return append([]string{}, list...), true
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func (v Values) Str(name string) string {
	s, _ := v[name].(string)
	return s
}

// OptionalString returns nil when the field was absent.
func (v Values) OptionalString(name string) *string {
	s, ok := v[name].(string)
	if !ok {
		return nil
	}
	return &s
}

func (v Values) Strings(name string) []string {
	if list, ok := v[name].([]string); ok {
		return list
	}
	return []string{}
}

func (v Values) Time(name string) time.Time {
	t, _ := v[name].(time.Time)
	return t
}

func (v Values) Int(name string) int {
	n, _ := v[name].(int)
	return n
}

func (v Values) OptionalInt(name string) *int {
	n, ok := v[name].(int)
	if !ok {
		return nil
	}
	return &n
}
