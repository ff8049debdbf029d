package definitions

import (
	"testing"

	"github.com/cprep/cprep/internal/cpptoken"
)

func TestInsertAndGet(t *testing.T) {
	tbl := NewTable()
	tbl.Insert("FOO", []cpptoken.Token{cpptoken.Num(42)}, nil)

	def, ok := tbl.Get("FOO")
	if !ok {
		t.Fatal("expected FOO to be defined")
	}
	if def.Kind != ObjectLike {
		t.Errorf("expected ObjectLike, got %v", def.Kind)
	}
	if len(def.Body) != 1 || def.Body[0].Value != 42 {
		t.Errorf("unexpected body: %v", def.Body)
	}
}

func TestInsertFunctionLike(t *testing.T) {
	tbl := NewTable()
	tbl.Insert("MAX", []cpptoken.Token{cpptoken.Ident("a")}, []string{"a", "b"})

	def, _ := tbl.Get("MAX")
	if def.Kind != FunctionLike {
		t.Errorf("expected FunctionLike, got %v", def.Kind)
	}
	if ParameterIndex(def, "b") != 1 {
		t.Errorf("expected parameter b at index 1, got %d", ParameterIndex(def, "b"))
	}
	if ParameterIndex(def, "missing") != -1 {
		t.Errorf("expected -1 for missing parameter")
	}
}

func TestRedefinitionLeavesOneRecord(t *testing.T) {
	tbl := NewTable()
	tbl.Insert("K", []cpptoken.Token{cpptoken.Num(1)}, nil)
	tbl.Insert("K", []cpptoken.Token{cpptoken.Num(2)}, nil)

	def, ok := tbl.Get("K")
	if !ok {
		t.Fatal("expected K to be defined")
	}
	if len(def.Body) != 1 || def.Body[0].Value != 2 {
		t.Errorf("expected redefinition to win, got body %v", def.Body)
	}
}

func TestRemove(t *testing.T) {
	tbl := NewTable()
	tbl.Insert("K", []cpptoken.Token{cpptoken.Num(1)}, nil)
	tbl.Remove("K")
	if _, ok := tbl.Get("K"); ok {
		t.Fatal("expected K to be removed")
	}
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	tbl := NewTable()
	tbl.Remove("NEVER_DEFINED")
	if _, ok := tbl.Get("NEVER_DEFINED"); ok {
		t.Fatal("expected no record")
	}
}

func TestParameterIndexNilDefinition(t *testing.T) {
	if ParameterIndex(nil, "a") != -1 {
		t.Fatal("expected -1 for nil definition")
	}
}
