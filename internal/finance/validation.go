package finance

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"moneytrail/internal/domain"
)

// MaxAmount is the upper bound accepted for every numeric record field
const MaxAmount = 1_000_000_000

// Currency length bounds, counted in characters
const (
	MinCurrencyLength = 2
	MaxCurrencyLength = 50
)

// Issue codes reported in FieldError.Code
const (
	CodeRequired    = "required"
	CodeInvalidType = "invalid_type"
	CodeTooSmall    = "too_small"
	CodeTooBig      = "too_big"
	CodeInvalidDate = "invalid_date"
)

// RecordInput is a raw, unvalidated record payload as decoded from a request body.
// Numeric fields may hold JSON numbers or numeric strings.
type RecordInput struct {
	Date           any `json:"date"`
	Currency       any `json:"currency"`
	GrossIncomeYtd any `json:"grossIncomeYtd"`
	TaxesPaidYtd   any `json:"taxesPaidYtd"`
	AssetsExCash   any `json:"assetsExCash"`
	Cash           any `json:"cash"`
	Debt           any `json:"debt"`
}

// FieldError describes why a single field was rejected
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, code, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Code: code, Message: message})
}

type amountField struct {
	name     string
	value    any
	target   *float64
	required string
	label    string
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ValidateRecord checks a raw payload and returns the normalized values ready
// for persistence. On failure the returned error is a *ValidationError.
func ValidateRecord(in RecordInput) (domain.RecordValues, error) {
	var out domain.RecordValues
	verr := &ValidationError{}

	date, code, msg := coerceDate(in.Date)
	if code != "" {
		verr.add("date", code, msg)
	}
	out.Date = date

	currency, code, msg := coerceCurrency(in.Currency)
	if code != "" {
		verr.add("currency", code, msg)
	}
	out.Currency = currency

	fields := []amountField{
		{"grossIncomeYtd", in.GrossIncomeYtd, &out.GrossIncomeYtd, "Please enter your gross income", "Gross income"},
		{"taxesPaidYtd", in.TaxesPaidYtd, &out.TaxesPaidYtd, "Please enter your taxes paid", "Taxes paid"},
		{"assetsExCash", in.AssetsExCash, &out.AssetsExCash, "Please enter your assets excluding cash", "Assets excluding cash"},
		{"cash", in.Cash, &out.Cash, "Please enter your total cash amount", "Cash"},
		{"debt", in.Debt, &out.Debt, "Please enter your total debt amount", "Debt"},
	}
	for _, f := range fields {
		v, ok, numeric := coerceAmount(f.value)
		switch {
		case !numeric:
			verr.add(f.name, CodeInvalidType, "Please enter a valid number")
		case !ok:
			verr.add(f.name, CodeRequired, f.required)
		case v > MaxAmount:
			verr.add(f.name, CodeTooBig, f.label+" cannot be more than 1 billion")
		default:
			*f.target = v
		}
	}

	if len(verr.Fields) > 0 {
		return domain.RecordValues{}, verr
	}
	return out, nil
}

func coerceDate(v any) (time.Time, string, string) {
	const (
		required = "Please pick a date for this record"
		invalid  = "Please pick a valid date"
	)
	switch d := v.(type) {
	case nil:
		return time.Time{}, CodeRequired, required
	case time.Time:
		if d.IsZero() {
			return time.Time{}, CodeRequired, required
		}
		return d.UTC(), "", ""
	case *time.Time:
		if d == nil || d.IsZero() {
			return time.Time{}, CodeRequired, required
		}
		return d.UTC(), "", ""
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}, CodeRequired, required
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), "", ""
			}
		}
		return time.Time{}, CodeInvalidDate, invalid
	default:
		return time.Time{}, CodeInvalidType, invalid
	}
}

func coerceCurrency(v any) (string, string, string) {
	s, ok := v.(string)
	if v == nil {
		return "", CodeRequired, "Please pick a currency for this record"
	}
	if !ok {
		return "", CodeInvalidType, "Please pick a currency for this record"
	}
	n := utf8.RuneCountInString(s)
	if n < MinCurrencyLength {
		return "", CodeTooSmall, "Currency must be 2 characters long"
	}
	if n > MaxCurrencyLength {
		return "", CodeTooBig, "Currency cannot be more than 50 characters long"
	}
	return s, "", ""
}

// coerceAmount converts a raw value to a number. ok is false when the value
// counts as missing: absent, empty, NaN or negative. numeric is false when the
// value cannot be read as a number at all.
func coerceAmount(v any) (value float64, ok bool, numeric bool) {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, false, true
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false, true
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false, false
		}
		f = parsed
	default:
		return 0, false, false
	}

	if math.IsNaN(f) || f < 0 {
		return 0, false, true
	}
	return f, true, true
}
