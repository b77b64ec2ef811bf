package vmlang

// Unit is one source file handed to Translate: its stem (used for static
// variable naming and error messages) and its VM source text.
type Unit struct {
	Stem   string
	Source string
}

// Translate parses and generates assembly for units in order, sharing a
// single CodeGenerator so its comparison and return-address counters stay
// monotonic across file boundaries. When bootstrap is true (translating a
// whole directory) the fixed SP-init-and-call-Sys.init prologue is emitted
// first; translating a single file omits it.
func Translate(units []Unit, bootstrap bool) (string, error) {
	parsed := make([][]Command, len(units))
	for i, u := range units {
		commands, err := Parse(u.Stem, u.Source)
		if err != nil {
			return "", err
		}
		parsed[i] = commands
	}
	return GenerateFromParsed(parsed, bootstrap)
}

// GenerateFromParsed runs code generation over commands already parsed per
// file, in file order, sharing one CodeGenerator across all of them. This
// is the entry point a driver uses when it has parsed files concurrently
// but still needs their label/return-address counters to stay single-
// threaded and monotonic: parsing is independent per file, but generation
// is not.
func GenerateFromParsed(parsed [][]Command, bootstrap bool) (string, error) {
	gen := NewCodeGenerator()

	if bootstrap {
		if err := gen.Bootstrap(); err != nil {
			return "", err
		}
	}

	for _, commands := range parsed {
		for _, cmd := range commands {
			if err := gen.Write(cmd); err != nil {
				return "", err
			}
		}
	}

	return gen.String(), nil
}
