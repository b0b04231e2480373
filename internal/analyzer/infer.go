package analyzer

import (
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

var booleanTokens = map[string]struct{}{
	"true": {}, "false": {},
	"yes": {}, "no": {},
	"1": {}, "0": {},
}

var dateFormats = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"02-Jan-2006",
	"2006/01/02",
}

// IsMissing reports whether a raw value counts as missing: nil (JSON null or
// absent key) or the empty string. The number 0 and the string "0" are values.
func IsMissing(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// Infer decides the semantic type of a column from its raw values. Candidate
// types are tried in fixed priority order and the first one whose predicate
// holds for every non-missing value wins. A column of only missing values is
// text.
//
// The priority order is load-bearing: a column containing only "0" and "1"
// is boolean, not integer, and scoring downstream depends on that.
func Infer(values []any) Type {
	present := make([]any, 0, len(values))
	for _, v := range values {
		if !IsMissing(v) {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return TypeText
	}

	if all(present, isBooleanToken) {
		return TypeBoolean
	}
	if all(present, isDate) {
		return TypeDate
	}
	if all(present, isInteger) {
		return TypeInteger
	}
	if all(present, isNumeric) {
		return TypeFloat
	}
	return TypeText
}

func all(values []any, pred func(any) bool) bool {
	for _, v := range values {
		if !pred(v) {
			return false
		}
	}
	return true
}

func isBooleanToken(v any) bool {
	_, ok := booleanTokens[strings.ToLower(cast.ToString(v))]
	return ok
}

func isDate(v any) bool {
	s := cast.ToString(v)
	for _, format := range dateFormats {
		if _, err := time.Parse(format, s); err == nil {
			return true
		}
	}
	return false
}

func isInteger(v any) bool {
	f, err := cast.ToFloat64E(v)
	return err == nil && f == math.Trunc(f)
}

func isNumeric(v any) bool {
	_, err := cast.ToFloat64E(v)
	return err == nil
}
