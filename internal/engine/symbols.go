package engine

import (
	"errors"
	"maps"
)

var ErrUndefined = errors.New("undefined variable")

// SymbolTable is a flat name to int32 store with no scoping. In lenient
// mode any mention of an unknown name creates it with value 0; in strict
// mode only Declare and Define create names.
type SymbolTable struct {
	values map[string]int32
	order  []string
	strict bool
}

func NewSymbolTable(strict bool) *SymbolTable {
	return &SymbolTable{
		values: make(map[string]int32),
		strict: strict,
	}
}

func (s *SymbolTable) Strict() bool {
	return s.strict
}

// Declare creates name with value 0 unless it already exists.
func (s *SymbolTable) Declare(name string) {
	if _, ok := s.values[name]; !ok {
		s.insert(name, 0)
	}
}

func (s *SymbolTable) Define(name string, value int32) {
	if _, ok := s.values[name]; !ok {
		s.insert(name, value)
		return
	}
	s.values[name] = value
}

// Touch records a mention of name: lenient tables create it, strict tables
// report ErrUndefined if it was never declared.
func (s *SymbolTable) Touch(name string) error {
	if _, ok := s.values[name]; ok {
		return nil
	}
	if s.strict {
		return ErrUndefined
	}
	s.insert(name, 0)
	return nil
}

func (s *SymbolTable) Lookup(name string) (int32, error) {
	if err := s.Touch(name); err != nil {
		return 0, err
	}
	return s.values[name], nil
}

func (s *SymbolTable) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Names returns every known name in the order it was first created.
func (s *SymbolTable) Names() []string {
	return append([]string(nil), s.order...)
}

func (s *SymbolTable) Snapshot() map[string]int32 {
	return maps.Clone(s.values)
}

func (s *SymbolTable) Len() int {
	return len(s.values)
}

func (s *SymbolTable) insert(name string, value int32) {
	s.values[name] = value
	s.order = append(s.order, name)
}
