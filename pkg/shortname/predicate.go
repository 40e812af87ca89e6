package shortname

import "reflect"

// Predicate decides whether an entity takes part in rule-based abbreviation.
// Entities failing the predicate keep their existing value or full name.
type Predicate func(e Entity) bool

// Always includes every entity.
func Always(Entity) bool { return true }

// MethodPredicate adapts a named zero-argument bool method on the entity's
// concrete type. Entities without such a method are excluded.
func MethodPredicate(method string) Predicate {
	return func(e Entity) bool {
		if e == nil {
			return false
		}
		m := reflect.ValueOf(e).MethodByName(method)
		if !m.IsValid() || m.Type().NumIn() != 0 || m.Type().NumOut() != 1 || m.Type().Out(0).Kind() != reflect.Bool {
			return false
		}
		return m.Call(nil)[0].Bool()
	}
}

// FieldPredicate includes entities whose field equals one of the values.
func FieldPredicate(field string, values ...string) Predicate {
	return func(e Entity) bool {
		v := e.Get(field)
		for _, want := range values {
			if v == want {
				return true
			}
		}
		return false
	}
}
