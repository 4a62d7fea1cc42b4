package resolver

// ResolveValue applies the default fallback policy to a matched value.
//
// Without a default the raw value is returned unchanged, absent included.
// Booleans and numbers are never replaced. Absent values and empty strings or
// collections fall back to the default. Anything else is returned unchanged.
func ResolveValue(raw Value, def *Value) Value {
	value, _ := resolveValue(raw, def)

	return value
}

func resolveValue(raw Value, def *Value) (Value, string) {
	if def == nil {
		return raw, rawOutcome(raw)
	}

	switch {
	case raw.Kind() == KindBool, raw.Kind() == KindNumber:
		return raw, OutcomeValue
	case raw.IsAbsent(), raw.IsEmpty():
		return *def, OutcomeDefault
	default:
		return raw, OutcomeValue
	}
}

func rawOutcome(raw Value) string {
	if raw.IsAbsent() {
		return OutcomeAbsent
	}

	return OutcomeValue
}
