package toolbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Toolbox maps function names to their accumulated descriptors and owns the
// compiled schema view over them. A Toolbox is an explicit value: construct
// one per logical tool set and pass it to Tools and Execute. Registration is
// safe for concurrent use, though the intended shape is a setup phase
// followed by read-only dispatch.
type Toolbox struct {
	mu        sync.Mutex
	functions map[string]*function
	order     []string // registry insertion order, also the schema emission order
	types     map[reflect.Type]SchemaType
	opts      options
}

// New creates a Toolbox with the given options.
func New(opts ...Option) *Toolbox {
	o := options{
		recoverPanics:  true,
		maxConcurrency: 10,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Toolbox{
		functions: make(map[string]*function),
		types:     make(map[reflect.Type]SchemaType),
		opts:      o,
	}
}

// MapType maps a custom Go type to a schema primitive for WithTypeOf hints
// and typed-registration inference. emptyInstance is a value of the type to
// map (e.g. MyID{}); pointer fields use the value type's mapping. Panics on
// nil instance or an invalid schema type (API misuse).
func (b *Toolbox) MapType(emptyInstance any, t SchemaType) {
	if emptyInstance == nil {
		panic("toolbox: MapType emptyInstance must not be nil")
	}
	if !t.valid() {
		panic("toolbox: MapType schema type must be one of the six primitives")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.types[reflect.TypeOf(emptyInstance)] = t
}

// descriptor returns the named function's descriptor, creating an empty one
// (name unset) on first reference. Caller must hold b.mu.
func (b *Toolbox) descriptor(name string) *function {
	fn, ok := b.functions[name]
	if !ok {
		fn = &function{}
		b.functions[name] = fn
		b.order = append(b.order, name)
	}
	return fn
}

// Parameter declares one parameter of the named function, creating the
// function's descriptor if it does not exist yet. The schema type comes from
// WithType, a WithTypeOf hint, or the declared field type of a typed
// registration's argument struct, in that order; failure to resolve a type
// is a ConfigError returned immediately. Declaring a name twice overwrites
// the earlier declaration in place.
func (b *Toolbox) Parameter(funcName, name string, opts ...ParameterOption) error {
	if funcName == "" || name == "" {
		panic("toolbox: Parameter function and name must not be empty")
	}
	var c paramConfig
	for _, opt := range opts {
		opt(&c)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	fn := b.descriptor(funcName)
	typ, err := b.resolveType(fn, funcName, name, c)
	if err != nil {
		return err
	}

	p := Parameter{
		Name:        name,
		Type:        typ,
		Description: c.description,
		Required:    !c.optional,
		Enum:        c.enum,
	}
	fn.resolved = nil
	for i := range fn.params {
		if fn.params[i].Name == name {
			fn.params[i] = p
			return nil
		}
	}
	fn.params = append(fn.params, p)
	return nil
}

// resolveType picks the parameter's schema type per the precedence described
// on Parameter. Caller must hold b.mu.
func (b *Toolbox) resolveType(fn *function, funcName, param string, c paramConfig) (SchemaType, error) {
	switch {
	case c.typ != "":
		if !c.typ.valid() {
			return "", &ConfigError{Function: funcName, Param: param, Reason: fmt.Sprintf("unknown schema type %q", c.typ)}
		}
		return c.typ, nil
	case c.hint != nil:
		return b.translateType(funcName, param, c.hint)
	}
	if fn.argsType == nil {
		return "", &ConfigError{
			Function: funcName,
			Param:    param,
			Reason:   "no schema type given and no typed executable registered to infer one from",
		}
	}
	field, ok := argsField(fn.argsType, param)
	if !ok {
		return "", &ConfigError{Function: funcName, Param: param, Reason: "parameter not found in the executable's argument struct"}
	}
	return b.translateType(funcName, param, field.Type)
}

// translateType maps a Go type onto a schema primitive: the custom MapType
// table first, then the built-in kind mapping. Unrecognized types are a
// ConfigError unless WithPermissiveTypes demoted them to "string".
func (b *Toolbox) translateType(funcName, param string, t reflect.Type) (SchemaType, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if st, ok := b.types[t]; ok {
		return st, nil
	}
	switch t.Kind() {
	case reflect.String:
		return TypeString, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return TypeInteger, nil
	case reflect.Float32, reflect.Float64:
		return TypeNumber, nil
	case reflect.Bool:
		return TypeBoolean, nil
	case reflect.Slice, reflect.Array:
		return TypeArray, nil
	case reflect.Map, reflect.Struct:
		return TypeObject, nil
	}
	if b.opts.permissiveTypes {
		return TypeString, nil
	}
	return "", &ConfigError{Function: funcName, Param: param, Reason: fmt.Sprintf("cannot translate Go type %s to a schema type", t)}
}

// argsField finds the struct field backing the named parameter: json tag
// first, then exact field name, then a case-insensitive match.
func argsField(t reflect.Type, name string) (reflect.StructField, bool) {
	var loose reflect.StructField
	var looseOK bool
	for i := range t.NumField() {
		field := t.Field(i)
		tag := strings.Split(field.Tag.Get("json"), ",")[0]
		if tag == name {
			return field, true
		}
		if tag != "" && tag != "-" {
			continue
		}
		if field.Name == name {
			return field, true
		}
		if !looseOK && strings.EqualFold(field.Name, name) {
			loose, looseOK = field, true
		}
	}
	return loose, looseOK
}

// Function finalizes the named function's descriptor: it sets the name and
// description and stores fn as the executable, preserving any parameters
// declared earlier. Registering the same name again replaces the description
// and executable only. The given fn is returned unchanged so host code can
// keep calling it directly. Panics on empty name or nil fn (API misuse).
func (b *Toolbox) Function(name, description string, fn Handler) Handler {
	if name == "" {
		panic("toolbox: Function name must not be empty")
	}
	if fn == nil {
		panic("toolbox: Function executable must not be nil")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	f := b.descriptor(name)
	f.name = name
	f.description = description
	f.handler = fn
	f.argsType = nil
	f.resolved = nil
	return fn
}

// Register finalizes the named function with a typed executable. The
// dispatcher re-binds the parsed argument object onto T before calling fn,
// so missing or unexpected keys surface as execution failures, and later
// Parameter calls may infer schema types from T's field declarations. T must
// be a struct. fn is returned unchanged.
func Register[T, R any](b *Toolbox, name, description string, fn func(ctx context.Context, args T) (R, error)) func(ctx context.Context, args T) (R, error) {
	if name == "" {
		panic("toolbox: Register name must not be empty")
	}
	if fn == nil {
		panic("toolbox: Register executable must not be nil")
	}
	argsType := reflect.TypeOf((*T)(nil)).Elem()
	if argsType.Kind() != reflect.Struct {
		panic("toolbox: Register argument type must be a struct")
	}
	handler := func(ctx context.Context, args map[string]any) (any, error) {
		var typed T
		if err := bindArgs(args, &typed); err != nil {
			return nil, err
		}
		return fn(ctx, typed)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	f := b.descriptor(name)
	f.name = name
	f.description = description
	f.handler = handler
	f.argsType = argsType
	f.resolved = nil
	return fn
}

// bindArgs re-encodes the parsed argument map onto the typed args struct.
// Unknown keys are rejected; the schema validator has usually caught them
// already, this is the backstop for handlers invoked without a schema.
func bindArgs(args map[string]any, target any) error {
	data, err := json.Marshal(args)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(target)
}

// lookup returns the descriptor for name, or (nil, false).
func (b *Toolbox) lookup(name string) (*function, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn, ok := b.functions[name]
	return fn, ok
}

// Len returns the number of descriptors, including ones not yet eligible
// for schema emission.
func (b *Toolbox) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.functions)
}
