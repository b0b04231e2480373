package analyzer

import (
	"fmt"
	"math"

	"github.com/spf13/cast"
)

const maxSampleValues = 5

// ProfileColumn computes the full profile of one column given its raw values
// and the type it should be checked against. The caller guarantees at least
// one value. Under the default pipeline typ comes from Infer on the same
// values; passing a different type re-profiles against an override, which is
// what makes the non-numeric check reachable.
func ProfileColumn(name string, values []any, typ Type) Column {
	total := len(values)
	missing := 0
	nonNumeric := 0
	seen := make(map[string]struct{})
	samples := make([]any, 0, maxSampleValues)

	for _, v := range values {
		if IsMissing(v) {
			missing++
			continue
		}

		// Value equality on the canonical string form, so 4 and "4" from
		// different decoders count as the same value.
		key := cast.ToString(v)
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			if len(samples) < maxSampleValues {
				samples = append(samples, v)
			}
		}

		if typ == TypeInteger || typ == TypeFloat {
			if !isNumeric(v) {
				nonNumeric++
			}
		}
	}

	unique := len(seen)
	col := Column{
		Name:             name,
		Type:             typ,
		TotalRows:        total,
		NullCount:        missing,
		NullPercentage:   roundPct(missing, total),
		UniqueCount:      unique,
		UniquePercentage: roundPct(unique, total),
		SampleValues:     samples,
		Issues:           make([]string, 0),
	}

	if missing > 0 {
		col.Issues = append(col.Issues,
			fmt.Sprintf("%d missing values (%d%%)", missing, col.NullPercentage))
	}
	if nonNumeric > 0 {
		col.Issues = append(col.Issues,
			fmt.Sprintf("%d non-numeric values found", nonNumeric))
	}
	if duplicates := total - missing - unique; duplicates > 0 {
		col.Issues = append(col.Issues,
			fmt.Sprintf("%d duplicate values", duplicates))
	}

	return col
}

func roundPct(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(n) / float64(total)))
}
