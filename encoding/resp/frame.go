package resp

import (
	"bytes"
	"sort"
	"strings"
)

// Type is the prefix byte that tags a frame on the wire
type Type byte

// Frame type prefixes
const (
	TypeSimpleString Type = '+'
	TypeSimpleError  Type = '-'
	TypeInteger      Type = ':'
	TypeBulkString   Type = '$'
	TypeArray        Type = '*'
	TypeNull         Type = '_'
	TypeBoolean      Type = '#'
	TypeDouble       Type = ','
	TypeMap          Type = '%'
	TypeSet          Type = '~'
)

// String returns the name of the type
func (t Type) String() string {
	switch t {
	case TypeSimpleString:
		return "simplestring"
	case TypeSimpleError:
		return "error"
	case TypeInteger:
		return "integer"
	case TypeBulkString:
		return "bulkstring"
	case TypeArray:
		return "array"
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "boolean"
	case TypeDouble:
		return "double"
	case TypeMap:
		return "map"
	case TypeSet:
		return "set"
	}
	return "unknown"
}

// Valid reports whether t is one of the known prefixes
func (t Type) Valid() bool {
	return t.String() != "unknown"
}

// Frame is one protocol value. The set of implementations is closed, every
// frame is exactly one of the types declared in this file.
type Frame interface {
	// Type returns the wire prefix of the frame
	Type() Type
	appendTo(dst []byte) []byte
}

// SimpleString is a CRLF free line of text, CR and LF are encoded as spaces
type SimpleString string

// SimpleError is an error line, it shares the shape of SimpleString
type SimpleError string

// Integer is a signed 64 bit number
type Integer int64

// BulkString is a binary safe byte sequence
type BulkString []byte

// NullBulkString is the null form of a bulk string, it differs from an empty BulkString
type NullBulkString struct{}

// Array is an ordered sequence of frames
type Array []Frame

// Null is the generic null
type Null struct{}

// NullArray is the null form of an array, it differs from an empty Array
type NullArray struct{}

// Boolean is true or false
type Boolean bool

// Double is a 64 bit float
type Double float64

// Set is an ordered sequence of frames. Members are neither deduplicated nor reordered.
type Set []Frame

// Map maps text keys to frames. Keys are always iterated and encoded in
// ascending lexicographic order no matter how they were inserted.
type Map struct {
	entries map[string]Frame
}

// Type implements Frame
func (SimpleString) Type() Type { return TypeSimpleString }

// Type implements Frame
func (SimpleError) Type() Type { return TypeSimpleError }

// Type implements Frame
func (Integer) Type() Type { return TypeInteger }

// Type implements Frame
func (BulkString) Type() Type { return TypeBulkString }

// Type implements Frame
func (NullBulkString) Type() Type { return TypeBulkString }

// Type implements Frame
func (Array) Type() Type { return TypeArray }

// Type implements Frame
func (Null) Type() Type { return TypeNull }

// Type implements Frame
func (NullArray) Type() Type { return TypeArray }

// Type implements Frame
func (Boolean) Type() Type { return TypeBoolean }

// Type implements Frame
func (Double) Type() Type { return TypeDouble }

// Type implements Frame
func (*Map) Type() Type { return TypeMap }

// Type implements Frame
func (Set) Type() Type { return TypeSet }

// Error makes SimpleError usable as a go error
func (e SimpleError) Error() string { return string(e) }

// NewBulkString copies s into a BulkString
func NewBulkString(s string) BulkString {
	return BulkString(s)
}

var lineBreaks = strings.NewReplacer("\r", " ", "\n", " ")

// NewSimpleString builds a status line, line breaks in s become spaces
func NewSimpleString(s string) SimpleString {
	return SimpleString(lineBreaks.Replace(s))
}

// NewSimpleError builds an error line, line breaks in msg become spaces
func NewSimpleError(msg string) SimpleError {
	return SimpleError(lineBreaks.Replace(msg))
}

// NewArray builds an array from frames
func NewArray(frames ...Frame) Array {
	return Array(append(make([]Frame, 0, len(frames)), frames...))
}

// NewSet builds a set from frames, order is kept as given
func NewSet(frames ...Frame) Set {
	return Set(append(make([]Frame, 0, len(frames)), frames...))
}

// NewMap creates an empty map
func NewMap() *Map {
	return &Map{entries: make(map[string]Frame)}
}

// Set stores value under key, an existing key is overwritten. Keys are
// written as simple strings, so CR and LF in key go out as spaces and a
// decoded copy holds the cleaned key.
func (m *Map) Set(key string, value Frame) *Map {
	if m.entries == nil {
		m.entries = make(map[string]Frame)
	}
	m.entries[key] = value
	return m
}

// Get returns the value of key
func (m *Map) Get(key string) (Frame, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.entries[key]
	return v, ok
}

// Len returns the number of entries
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Keys returns the keys in ascending order
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Range calls fn for each entry in ascending key order until fn returns false
func (m *Map) Range(fn func(key string, value Frame) bool) {
	for _, k := range m.Keys() {
		if !fn(k, m.entries[k]) {
			return
		}
	}
}

// Equal reports whether a and b are structurally equal. Null forms never equal
// each other nor the empty containers.
func Equal(a, b Frame) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case BulkString:
		y, ok := b.(BulkString)
		return ok && bytes.Equal(x, y)
	case Array:
		y, ok := b.(Array)
		return ok && equalFrames(x, y)
	case Set:
		y, ok := b.(Set)
		return ok && equalFrames(x, y)
	case *Map:
		y, ok := b.(*Map)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for _, k := range x.Keys() {
			v, _ := x.Get(k)
			w, ok := y.Get(k)
			if !ok || !Equal(v, w) {
				return false
			}
		}
		return true
	}
	// the remaining variants are comparable values
	return a == b
}

func equalFrames(a, b []Frame) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
