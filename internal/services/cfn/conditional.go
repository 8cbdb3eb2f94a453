package cfn

// Optional is a property value that is either absent or present with a value.
// Absent fields are omitted from the emitted node entirely.
type Optional struct {
	value   Value
	present bool
}

var Absent = Optional{}

func Present(v Value) Optional {
	return Optional{value: v, present: true}
}

func (o Optional) Get() (Value, bool) {
	return o.value, o.present
}

func (o Optional) IsPresent() bool {
	return o.present
}

// Decide picks between two alternatives. It has no side effects, so the same inputs always
// give the same result.
func Decide[T any](flag bool, whenTrue, whenFalse T) T {
	if flag {
		return whenTrue
	}
	return whenFalse
}

// IncludeIf returns v as present when flag holds, Absent otherwise.
func IncludeIf(flag bool, v Value) Optional {
	return Decide(flag, Present(v), Absent)
}

// IncludeIfSet returns the pointed-to value as present when flag holds and p is non-nil.
func IncludeIfSet[T any](flag bool, p *T, wrap func(T) Value) Optional {
	if p == nil {
		return Absent
	}
	return IncludeIf(flag, wrap(*p))
}
