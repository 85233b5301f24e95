// Package types defines the resolved type atoms the composer consumes.
package types

import "github.com/modelgen/modelgen/core/imports"

// Atom is one resolved, renderable type reference. Atoms are immutable
// values; the schema layer builds them, fields consume them.
type Atom struct {
	TypeHint     string
	IsUnresolved bool
	Imports      []imports.Import
}

// Scalar builds an atom for a fully-resolved type with no import needs.
func Scalar(hint string) Atom {
	return Atom{TypeHint: hint}
}

// Imported builds an atom whose hint requires extra imports.
func Imported(hint string, imps ...imports.Import) Atom {
	return Atom{TypeHint: hint, Imports: imps}
}

// Reference builds an atom naming a class not yet defined in this pass.
func Reference(name string) Atom {
	return Atom{TypeHint: name, IsUnresolved: true}
}

// builtins maps schema scalar names to their Python renderings.
var builtins = map[string]Atom{
	"string":   Scalar("str"),
	"str":      Scalar("str"),
	"integer":  Scalar("int"),
	"int":      Scalar("int"),
	"number":   Scalar("float"),
	"float":    Scalar("float"),
	"boolean":  Scalar("bool"),
	"bool":     Scalar("bool"),
	"bytes":    Scalar("bytes"),
	"null":     Scalar("None"),
	"any":      Imported("Any", imports.ImportAny),
	"datetime": Imported("datetime", imports.Import{From: "datetime", Name: "datetime"}),
	"date":     Imported("date", imports.Import{From: "datetime", Name: "date"}),
	"time":     Imported("time", imports.Import{From: "datetime", Name: "time"}),
	"uuid":     Imported("UUID", imports.Import{From: "uuid", Name: "UUID"}),
	"decimal":  Imported("Decimal", imports.Import{From: "decimal", Name: "Decimal"}),
}

// Builtin looks up the scalar table. The second result reports whether the
// name is a known scalar.
func Builtin(name string) (Atom, bool) {
	atom, ok := builtins[name]
	return atom, ok
}
