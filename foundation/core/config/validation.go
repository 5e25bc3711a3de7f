// File: validation.go
// Title: Configuration Validation and Struct Binding
// Description: Checks configuration values against per-key rules (type,
//              bounds, pattern) and binds sections into tagged structs.
//              Environment overrides take part in both, so a bad override
//              is reported instead of silently falling back to a default.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-04
// Modified: 2025-11-20
//
// Change History:
// - 2025-11-04 v0.1.0: Initial implementation of validation
// - 2025-11-20 v0.1.0: Environment overrides, coded errors, nested binding

package config

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	argoterrors "github.com/msto63/argot/foundation/core/errors"
)

// ValidationRule defines validation criteria for one configuration key
type ValidationRule struct {
	Required bool        // Whether the key must be present
	Type     string      // "string", "int", "float", "bool", "duration" or "[]string"
	Min      interface{} // Minimum value (numbers, durations) or length (strings, slices)
	Max      interface{} // Maximum value (numbers, durations) or length (strings, slices)
	Pattern  string      // Regex the string value must match
}

// ValidationRules maps configuration keys to their validation rules
type ValidationRules map[string]ValidationRule

// FieldError is a rule violation for one key
type FieldError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("invalid setting %s: %s", e.Key, e.Message)
}

// ValidationResult contains the results of configuration validation.
// Errors are ordered by key.
type ValidationResult struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

// Err returns nil for a valid result, otherwise a CodeConfig error for the
// first violation with the offending key in the "key" detail
func (r *ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	first := r.Errors[0]
	return argoterrors.NewErrorBuilder("config").
		Operation("Validate").
		Code(argoterrors.CodeConfig).
		Message(first.Error()).
		Detail("key", first.Key).
		Detail("errors", r.Errors).
		Build()
}

// Validate checks the configuration against rules
func (c *Config) Validate(rules ValidationRules) *ValidationResult {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(rules))
	for key := range rules {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := &ValidationResult{Valid: true}
	for _, key := range keys {
		if msg := c.validateField(key, rules[key]); msg != "" {
			result.Valid = false
			result.Errors = append(result.Errors, FieldError{Key: key, Message: msg})
		}
	}
	return result
}

// lookup returns the environment override of key as a string, or the
// value from the file
func (c *Config) lookup(key string) interface{} {
	if env, ok := c.lookupEnv(key); ok {
		return env
	}
	return c.getValue(key)
}

func (c *Config) validateField(key string, rule ValidationRule) string {
	raw := c.lookup(key)
	if raw == nil {
		if rule.Required {
			return "is required"
		}
		return ""
	}

	value, err := coerce(raw, rule.Type)
	if err != nil {
		return err.Error()
	}
	if msg := checkBounds(value, rule); msg != "" {
		return msg
	}

	if rule.Pattern != "" {
		s, ok := value.(string)
		if !ok {
			return "pattern validation requires a string"
		}
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return fmt.Sprintf("invalid pattern %q: %v", rule.Pattern, err)
		}
		if !re.MatchString(s) {
			return fmt.Sprintf("value %q does not match %s", s, rule.Pattern)
		}
	}
	return ""
}

// coerce converts a file or environment value to the rule type. Strings
// are parsed because environment overrides are always strings.
func coerce(value interface{}, typ string) (interface{}, error) {
	switch typ {
	case "":
		return value, nil

	case "string":
		if s, ok := value.(string); ok {
			return s, nil
		}

	case "int":
		switch v := value.(type) {
		case int:
			return int64(v), nil
		case int64:
			return v, nil
		case float64:
			if v == float64(int64(v)) {
				return int64(v), nil
			}
			return nil, fmt.Errorf("must be a whole number, got %g", v)
		case string:
			if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				return n, nil
			}
		}

	case "float":
		switch v := value.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return f, nil
			}
		}

	case "bool":
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				return b, nil
			}
		}

	case "duration":
		// bare numbers are seconds, as in GetDuration
		switch v := value.(type) {
		case string:
			if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
				return d, nil
			}
		case int:
			return time.Duration(v) * time.Second, nil
		case int64:
			return time.Duration(v) * time.Second, nil
		case float64:
			return time.Duration(v * float64(time.Second)), nil
		}

	case "[]string":
		switch v := value.(type) {
		case []string:
			return v, nil
		case []interface{}:
			out := make([]string, len(v))
			for i, item := range v {
				out[i] = fmt.Sprintf("%v", item)
			}
			return out, nil
		case string:
			return strings.Split(v, ","), nil
		}

	default:
		return nil, fmt.Errorf("unknown validation type %q", typ)
	}
	return nil, fmt.Errorf("must be of type %s, got %v", typ, value)
}

func checkBounds(value interface{}, rule ValidationRule) string {
	if rule.Min == nil && rule.Max == nil {
		return ""
	}

	var n float64
	what := "value"
	switch v := value.(type) {
	case int64:
		n = float64(v)
	case float64:
		n = v
	case time.Duration:
		n = float64(v)
	case string:
		n, what = float64(len(v)), "length"
	case []string:
		n, what = float64(len(v)), "length"
	default:
		return ""
	}

	if min, ok := toFloat(rule.Min); ok && n < min {
		return fmt.Sprintf("%s %s is less than minimum %v", what, shown(value, what), rule.Min)
	}
	if max, ok := toFloat(rule.Max); ok && n > max {
		return fmt.Sprintf("%s %s is greater than maximum %v", what, shown(value, what), rule.Max)
	}
	return ""
}

func shown(value interface{}, what string) string {
	if what == "length" {
		return strconv.Itoa(reflect.ValueOf(value).Len())
	}
	return fmt.Sprintf("%v", value)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case time.Duration:
		return float64(n), true
	}
	return 0, false
}

var durationType = reflect.TypeOf(time.Duration(0))

// BindToStruct copies configuration values into the tagged fields of the
// struct target points to. The `config:"name"` tag names the key below
// prefix (the lower-cased field name by default, "-" skips the field).
// Nested structs bind the section of the same name. Keys that are absent
// from the file and the environment leave the field untouched, so target
// can carry defaults.
func (c *Config) BindToStruct(prefix string, target interface{}) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return argoterrors.New("target must be a pointer to struct").
			WithCode(argoterrors.CodeInvalidInput).
			WithOperation("config.BindToStruct")
	}
	return c.bindStruct(prefix, v.Elem())
}

func (c *Config) bindStruct(prefix string, sv reflect.Value) error {
	st := sv.Type()
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		fv := sv.Field(i)
		if !fv.CanSet() {
			continue
		}

		name := field.Tag.Get("config")
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		if fv.Kind() == reflect.Struct {
			if err := c.bindStruct(key, fv); err != nil {
				return err
			}
			continue
		}
		if !c.Has(key) {
			continue
		}
		if err := c.setField(key, fv); err != nil {
			return argoterrors.Wrap(err, "cannot bind "+key).
				WithCode(argoterrors.CodeConfig).
				WithOperation("config.BindToStruct").
				WithDetail("key", key)
		}
	}
	return nil
}

// setField uses the getters so environment overrides apply. A value that
// cannot be converted keeps the field's current value.
func (c *Config) setField(key string, fv reflect.Value) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(c.GetString(key, fv.String()))
	case reflect.Bool:
		fv.SetBool(c.GetBool(key, fv.Bool()))
	case reflect.Int64:
		if fv.Type() == durationType {
			fv.SetInt(int64(c.GetDuration(key, time.Duration(fv.Int()))))
			return nil
		}
		fv.SetInt(int64(c.GetInt(key, int(fv.Int()))))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		fv.SetInt(int64(c.GetInt(key, int(fv.Int()))))
	case reflect.Float32, reflect.Float64:
		fv.SetFloat(c.GetFloat(key, fv.Float()))
	case reflect.Slice:
		if fv.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported field type %s", fv.Type())
		}
		fv.Set(reflect.ValueOf(c.GetStringSlice(key)).Convert(fv.Type()))
	default:
		return fmt.Errorf("unsupported field type %s", fv.Type())
	}
	return nil
}
