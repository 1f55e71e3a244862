package uiconf

import (
	"fmt"
	"math"
	"strings"
)

// ApplyProperty type-checks one override value against the descriptor's
// declared property spec and, on success, pushes it through the descriptor's
// setter. The returned error (if any) carries reason and detail; the caller
// fills in the document path.
//
// Numeric values outside a declared range are clamped silently. A declared
// range with minimum above maximum is a configuration inconsistency: it
// yields an out-of-range error and nothing is applied.
func ApplyProperty(desc *Descriptor, property string, raw any) *Error {
	prop := strings.ToLower(strings.TrimSpace(property))
	spec, ok := desc.Properties[prop]
	if !ok {
		return &Error{
			Reason: ReasonUnknownProperty,
			Detail: fmt.Sprintf("control %q declares no property %q", desc.CanonicalName, property),
		}
	}

	// Only "value" accepts a list (combo option lists in the original
	// document format); the first element is the one applied.
	if list, isList := raw.([]any); isList {
		if prop != "value" {
			return &Error{
				Reason: ReasonTypeMismatch,
				Detail: fmt.Sprintf("property %q does not accept a list", prop),
			}
		}
		if len(list) == 0 {
			return nil // nothing to apply
		}
		raw = list[0]
	}

	switch spec.Type {
	case TypeBool:
		v, isBool := raw.(bool)
		if !isBool {
			return typeMismatch(prop, spec, raw)
		}
		set(desc, prop, v)

	case TypeInt:
		f, isNum := toFloat(raw)
		if !isNum || f != math.Trunc(f) {
			return typeMismatch(prop, spec, raw)
		}
		f, rangeErr := checkAndClamp(desc, spec, prop, f)
		if rangeErr != nil {
			return rangeErr
		}
		set(desc, prop, int(f))

	case TypeFloat:
		f, isNum := toFloat(raw)
		if !isNum {
			return typeMismatch(prop, spec, raw)
		}
		f, rangeErr := checkAndClamp(desc, spec, prop, f)
		if rangeErr != nil {
			return rangeErr
		}
		set(desc, prop, f)

	case TypeString:
		s, isStr := raw.(string)
		if !isStr {
			return typeMismatch(prop, spec, raw)
		}
		set(desc, prop, s)

	default:
		return typeMismatch(prop, spec, raw)
	}

	return nil
}

// set invokes the GUI-provided setter. A nil setter means validate-only.
func set(desc *Descriptor, prop string, value any) {
	if desc.Set != nil {
		desc.Set(prop, value)
	}
}

func typeMismatch(prop string, spec PropertySpec, raw any) *Error {
	return &Error{
		Reason: ReasonTypeMismatch,
		Detail: fmt.Sprintf("property %q expects %s, got %T", prop, spec.Type, raw),
	}
}

// toFloat accepts the numeric shapes a parsed document or a Go caller can
// produce. Strings and booleans are deliberately not coerced.
func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// checkAndClamp validates a numeric value against both the per-property
// range and the control's declared value range, then clamps silently.
//
// Overriding "minimum" or "maximum" must not invert the control's declared
// range: requesting a maximum below the declared minimum (or a minimum above
// the declared maximum) is an out-of-range error and nothing is applied.
func checkAndClamp(desc *Descriptor, spec PropertySpec, prop string, f float64) (float64, *Error) {
	valueSpec, hasValue := desc.Properties["value"]
	if hasValue {
		switch prop {
		case "maximum":
			if valueSpec.Minimum != nil && f < *valueSpec.Minimum {
				return 0, &Error{
					Reason: ReasonOutOfRange,
					Detail: fmt.Sprintf("maximum %v is below the control's declared minimum %v",
						f, *valueSpec.Minimum),
				}
			}
		case "minimum":
			if valueSpec.Maximum != nil && f > *valueSpec.Maximum {
				return 0, &Error{
					Reason: ReasonOutOfRange,
					Detail: fmt.Sprintf("minimum %v is above the control's declared maximum %v",
						f, *valueSpec.Maximum),
				}
			}
		}
	}
	return clampNumeric(spec, prop, f)
}

// clampNumeric clamps f into the spec's declared range. Clamping is silent;
// an inverted range is an error and nothing should be applied.
func clampNumeric(spec PropertySpec, prop string, f float64) (float64, *Error) {
	if spec.Minimum != nil && spec.Maximum != nil && *spec.Minimum > *spec.Maximum {
		return 0, &Error{
			Reason: ReasonOutOfRange,
			Detail: fmt.Sprintf("property %q declares minimum %v above maximum %v",
				prop, *spec.Minimum, *spec.Maximum),
		}
	}
	if spec.Minimum != nil && f < *spec.Minimum {
		f = *spec.Minimum
	}
	if spec.Maximum != nil && f > *spec.Maximum {
		f = *spec.Maximum
	}
	return f, nil
}
