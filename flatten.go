package htmltox

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Flatten walks s and returns the configuration operations it describes,
// in declaration order. prefix is prepended to every key, dot-separated.
func Flatten(s Settings, scope Scope, prefix string) []Operation {
	return flattenInto(nil, s, scope, prefix)
}

func flattenInto(ops []Operation, s Settings, scope Scope, prefix string) []Operation {
	if s == nil {
		return ops
	}

	for _, f := range s.Fields() {
		if f.Value == nil {
			continue
		}
		nested, isSettings := f.Value.(Settings)
		switch {
		case f.Key != "" && isSettings:
			ops = flattenInto(ops, nested, scope, joinKey(prefix, f.Key))
		case f.Key != "":
			ops = appendValue(ops, scope, joinKey(prefix, f.Key), f.Value)
		case isSettings:
			ops = flattenInto(ops, nested, scope, prefix)
		}
	}
	return ops
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// appendValue stringifies a primitive value into one or more operations.
func appendValue(ops []Operation, scope Scope, key string, value any) []Operation {
	switch v := value.(type) {
	case bool:
		return append(ops, Operation{Scope: scope, Key: key, Value: Ptr(strconv.FormatBool(v))})
	case float64:
		return append(ops, Operation{Scope: scope, Key: key, Value: Ptr(formatFloat(v))})
	case int:
		return append(ops, Operation{Scope: scope, Key: key, Value: Ptr(strconv.Itoa(v))})
	case string:
		return append(ops, Operation{Scope: scope, Key: key, Value: Ptr(v)})
	case map[string]string:
		// The engine appends a list slot on ".append" and fills it by index.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for i, k := range keys {
			ops = append(ops,
				Operation{Scope: scope, Key: key + ".append"},
				Operation{Scope: scope, Key: key + "[" + strconv.Itoa(i) + "]", Value: Ptr(k + "\n" + v[k])},
			)
		}
		return ops
	default:
		return append(ops, Operation{Scope: scope, Key: key, Value: Ptr(fmt.Sprint(v))})
	}
}

// formatFloat renders v with at most two fractional digits, trailing zeros
// trimmed, independent of locale. Ties round away from zero on the shortest
// decimal form of v, so 0.125 gives "0.13".
func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	s := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	if whole, frac, ok := strings.Cut(s, "."); ok && len(frac) > 2 {
		t, _ := strconv.ParseFloat(whole+"."+frac[:2], 64)
		if frac[2] >= '5' {
			t += 0.01
		}
		s = strconv.FormatFloat(t, 'f', 2, 64)
	}
	if whole, frac, ok := strings.Cut(s, "."); ok {
		s = whole
		if frac = strings.TrimRight(frac, "0"); frac != "" {
			s += "." + frac
		}
	}

	if v < 0 && s != "0" {
		s = "-" + s
	}
	return s
}

// settingSetter is the shape of SetGlobalSetting and SetObjectSetting.
type settingSetter func(settings Handle, name string, value *string) int

// apply pushes ops to the engine in order. The engine reports unknown keys
// with a zero status; those are logged and otherwise ignored.
func apply(logger *log.Logger, set settingSetter, h Handle, ops []Operation) {
	for _, op := range ops {
		if set(h, op.Key, op.Value) != 1 {
			logger.Debug("setting rejected by engine", "scope", op.Scope, "key", op.Key)
		}
	}
}
