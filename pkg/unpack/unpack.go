package unpack

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Reflector decodes JSON into a tree of concrete Go types where some
// fields are declared as an interface and the concrete type to
// instantiate is only known once the JSON's discriminant field (e.g.
// "kind" or "op") has been read. Types are registered with Init/AddAs
// and JSON is decoded with Unpack.
type Reflector struct {
	byName map[string]reflect.Type
}

// New returns an empty Reflector.
func New() *Reflector {
	return &Reflector{byName: make(map[string]reflect.Type)}
}

// Init registers each of the given zero-value structs under its own Go
// type name as the discriminant value, unless the struct carries an
// `unpack:"<tag>"` field tag naming an explicit one — see
// structToUnpackRule. It also validates, once per type at registration
// time rather than on every decode, that the type's json tags are
// well-formed (no duplicates, at most one unpack tag). Init panics on
// a malformed tag: that is a bug in the node type's declaration, not
// something a caller can recover from at runtime.
func (r *Reflector) Init(values ...interface{}) *Reflector {
	for _, v := range values {
		typ := reflect.TypeOf(v)
		_, tag, err := structToUnpackRule(typ)
		if err != nil {
			panic(fmt.Sprintf("unpack: %s: %s", typ.Name(), err))
		}
		if tag == "" {
			tag = typ.Name()
		}
		r.byName[tag] = typ
	}
	return r
}

// AddAs registers value under an explicit discriminant tag rather than
// its Go type name, for cases where more than one wire tag decodes to
// the same underlying struct.
func (r *Reflector) AddAs(value interface{}, tag string) *Reflector {
	r.byName[tag] = reflect.TypeOf(value)
	return r
}

// Unpack decodes data (a JSON string or []byte) into a new value whose
// concrete type is selected by the value of the JSON field named key.
// Nested fields typed as a registered interface are resolved the same
// way, recursively.
func (r *Reflector) Unpack(key string, data interface{}) (interface{}, error) {
	raw, err := toRawMessage(data)
	if err != nil {
		return nil, err
	}
	v, err := r.decodeByTag(key, raw)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

func toRawMessage(data interface{}) (json.RawMessage, error) {
	switch v := data.(type) {
	case json.RawMessage:
		return v, nil
	case []byte:
		return json.RawMessage(v), nil
	case string:
		return json.RawMessage(v), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
}

// decodeByTag reads the discriminant field named key out of raw,
// resolves it to a registered concrete type, and populates a new
// instance of that type. It returns an addressable reflect.Value
// wrapping a pointer to the new instance.
func (r *Reflector) decodeByTag(key string, raw json.RawMessage) (reflect.Value, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return reflect.Value{}, fmt.Errorf("unpack: %w", err)
	}
	tagRaw, ok := probe[key]
	if !ok {
		return reflect.Value{}, fmt.Errorf("unpack: missing discriminant field %q", key)
	}
	var tag string
	if err := json.Unmarshal(tagRaw, &tag); err != nil {
		return reflect.Value{}, fmt.Errorf("unpack: discriminant field %q is not a string: %w", key, err)
	}
	typ, ok := r.byName[tag]
	if !ok {
		return reflect.Value{}, fmt.Errorf("unpack: unknown discriminant %q for field %q", tag, key)
	}
	ptr := reflect.New(typ)
	if err := r.populate(key, ptr.Elem(), raw); err != nil {
		return reflect.Value{}, err
	}
	return ptr, nil
}

// populate fills v (addressable) from raw, recursing into any field
// whose static type is an interface registered via Init/AddAs.
func (r *Reflector) populate(key string, v reflect.Value, raw json.RawMessage) error {
	if string(raw) == "null" || len(raw) == 0 {
		return nil
	}
	switch v.Kind() {
	case reflect.Interface:
		decoded, err := r.decodeByTag(key, raw)
		if err != nil {
			return err
		}
		v.Set(decoded)
		return nil
	case reflect.Ptr:
		elem := reflect.New(v.Type().Elem())
		if err := r.populate(key, elem.Elem(), raw); err != nil {
			return err
		}
		v.Set(elem)
		return nil
	case reflect.Slice:
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return fmt.Errorf("unpack: %w", err)
		}
		out := reflect.MakeSlice(v.Type(), len(items), len(items))
		for i, item := range items {
			if err := r.populate(key, out.Index(i), item); err != nil {
				return err
			}
		}
		v.Set(out)
		return nil
	case reflect.Struct:
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return fmt.Errorf("unpack: %w", err)
		}
		typ := v.Type()
		for i := 0; i < typ.NumField(); i++ {
			sf := typ.Field(i)
			if sf.PkgPath != "" {
				continue // unexported
			}
			name, ok := jsonFieldName(sf)
			if !ok {
				name = sf.Name
			}
			fieldRaw, ok := fields[name]
			if !ok {
				continue
			}
			if needsReflection(sf.Type) {
				if err := r.populate(key, v.Field(i), fieldRaw); err != nil {
					return err
				}
			} else if err := json.Unmarshal(fieldRaw, v.Field(i).Addr().Interface()); err != nil {
				return fmt.Errorf("unpack: field %s.%s: %w", typ.Name(), sf.Name, err)
			}
		}
		return nil
	default:
		return json.Unmarshal(raw, v.Addr().Interface())
	}
}

// needsReflection reports whether values of typ might contain an
// interface field somewhere and so must go through populate rather
// than plain encoding/json.
func needsReflection(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Interface:
		return true
	case reflect.Ptr, reflect.Slice:
		return needsReflection(typ.Elem())
	case reflect.Struct:
		for i := 0; i < typ.NumField(); i++ {
			if needsReflection(typ.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
