package jack

// Kind identifies which of the four Jack variable kinds a symbol was
// declared with. Each kind maps to exactly one VM segment, so (unlike the
// donor repo) the symbol's Scope follows directly from its Kind and never
// needs to be threaded through calls separately.
type Kind string

const (
	KindStatic Kind = "static"
	KindField  Kind = "field"
	KindArg    Kind = "arg"
	KindVar    Kind = "var"
)

// Segment returns the VM segment a variable of this kind is stored in.
func (k Kind) Segment() string {
	switch k {
	case KindStatic:
		return "static"
	case KindField:
		return "this"
	case KindArg:
		return "argument"
	case KindVar:
		return "local"
	}
	return ""
}

func (k Kind) isClassScoped() bool {
	return k == KindStatic || k == KindField
}

// Entry is one row of a symbol table: a declared name together with its
// static type, kind, and running index within that kind.
type Entry struct {
	Name  string
	Type  string
	Kind  Kind
	Index int
}

// SymbolTable is the two-tier scope the compilation engine maintains: a
// class-scope table that lives for the whole class (Static, Field) and a
// subroutine-scope table reset on each subroutine (Arg, Var). Lookup probes
// subroutine scope first, so an inner declaration shadows an outer one of
// the same name.
type SymbolTable struct {
	class      map[string]Entry
	subroutine map[string]Entry
}

// NewSymbolTable returns an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		class:      make(map[string]Entry),
		subroutine: make(map[string]Entry),
	}
}

// StartSubroutine discards the subroutine-scope table, keeping class scope
// intact. Call this once per subroutine, before processing its parameter
// list.
func (t *SymbolTable) StartSubroutine() {
	t.subroutine = make(map[string]Entry)
}

// StartClass discards both tables. Call this once per class.
func (t *SymbolTable) StartClass() {
	t.class = make(map[string]Entry)
	t.subroutine = make(map[string]Entry)
}

// Define declares name with the given type and kind, assigning it the next
// index for that kind in the scope the kind belongs to, and returns the
// resulting entry.
func (t *SymbolTable) Define(name, declaredType string, kind Kind) Entry {
	table := t.class
	if !kind.isClassScoped() {
		table = t.subroutine
	}
	entry := Entry{Name: name, Type: declaredType, Kind: kind, Index: t.Count(kind)}
	table[name] = entry
	return entry
}

// Count returns the number of symbols of the given kind declared so far, in
// the scope that kind lives in.
func (t *SymbolTable) Count(kind Kind) int {
	table := t.class
	if !kind.isClassScoped() {
		table = t.subroutine
	}
	n := 0
	for _, entry := range table {
		if entry.Kind == kind {
			n++
		}
	}
	return n
}

// Lookup resolves name, probing subroutine scope before class scope.
func (t *SymbolTable) Lookup(name string) (Entry, bool) {
	if entry, ok := t.subroutine[name]; ok {
		return entry, true
	}
	entry, ok := t.class[name]
	return entry, ok
}
