package jack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolTableScopingAndSegments(t *testing.T) {
	table := NewSymbolTable()
	table.StartClass()

	table.Define("count", "int", KindStatic)
	table.Define("balance", "int", KindField)
	table.Define("name", "String", KindField)

	assert.Equal(t, 1, table.Count(KindStatic))
	assert.Equal(t, 2, table.Count(KindField))

	table.StartSubroutine()
	table.Define("this", "Account", KindArg)
	table.Define("amount", "int", KindArg)
	table.Define("i", "int", KindVar)

	entry, ok := table.Lookup("amount")
	require.True(t, ok)
	assert.Equal(t, KindArg, entry.Kind)
	assert.Equal(t, 1, entry.Index)
	assert.Equal(t, "argument", entry.Kind.Segment())

	entry, ok = table.Lookup("balance")
	require.True(t, ok)
	assert.Equal(t, "this", entry.Kind.Segment())

	_, ok = table.Lookup("missing")
	assert.False(t, ok)
}

func TestSymbolTableSubroutineShadowsClass(t *testing.T) {
	table := NewSymbolTable()
	table.StartClass()
	table.Define("x", "int", KindField)

	table.StartSubroutine()
	table.Define("x", "int", KindVar)

	entry, ok := table.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, KindVar, entry.Kind, "a local declaration must shadow a field of the same name")
}

func TestStartSubroutineResetsOnlyLocalScope(t *testing.T) {
	table := NewSymbolTable()
	table.StartClass()
	table.Define("balance", "int", KindField)

	table.StartSubroutine()
	table.Define("i", "int", KindVar)
	table.StartSubroutine()

	_, ok := table.Lookup("i")
	assert.False(t, ok, "a fresh subroutine must not see the previous subroutine's locals")

	_, ok = table.Lookup("balance")
	assert.True(t, ok, "class scope survives across StartSubroutine calls")
}
