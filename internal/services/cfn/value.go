package cfn

// Value is a property value: a literal, a list, a structured object or an intrinsic reference.
type Value interface {
	isValue()
}

type String string

type Int int64

type Float float64

type Bool bool

type List []Value

// Object is an ordered set of fields. Order is preserved through emission.
type Object []Field

type Field struct {
	Key   string
	Value Value
}

// Ref points at a parameter, a resource node or a pseudo parameter such as AWS::StackName.
type Ref struct {
	Target string
}

// GetAtt points at one attribute of a resource node, e.g. the DNSName of a load balancer.
type GetAtt struct {
	Target    string
	Attribute string
}

// Join concatenates its parts with Delimiter when the stack is created.
type Join struct {
	Delimiter string
	Parts     []Value
}

func (String) isValue() {}
func (Int) isValue()    {}
func (Float) isValue()  {}
func (Bool) isValue()   {}
func (List) isValue()   {}
func (Object) isValue() {}
func (Ref) isValue()    {}
func (GetAtt) isValue() {}
func (Join) isValue()   {}

// With returns the object extended by one field.
func (o Object) With(key string, value Value) Object {
	return append(o, Field{Key: key, Value: value})
}

// WithOptional appends the field only when the optional value is present.
func (o Object) WithOptional(key string, value Optional) Object {
	if v, ok := value.Get(); ok {
		return o.With(key, v)
	}
	return o
}

func (o Object) Get(key string) (Value, bool) {
	for _, field := range o {
		if field.Key == key {
			return field.Value, true
		}
	}
	return nil, false
}

func (o Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for _, field := range o {
		keys = append(keys, field.Key)
	}
	return keys
}

// References returns every Ref and GetAtt target reachable from v, in encounter order.
func References(v Value) []string {
	var targets []string
	collectReferences(v, &targets)
	return targets
}

func collectReferences(v Value, targets *[]string) {
	switch value := v.(type) {
	case Ref:
		*targets = append(*targets, value.Target)
	case GetAtt:
		*targets = append(*targets, value.Target)
	case Join:
		for _, part := range value.Parts {
			collectReferences(part, targets)
		}
	case List:
		for _, item := range value {
			collectReferences(item, targets)
		}
	case Object:
		for _, field := range value {
			collectReferences(field.Value, targets)
		}
	}
}
