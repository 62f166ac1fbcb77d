package syntax

import "fmt"

// SymbolID identifies a declared name within one bound file. Identity is
// per-declaration: two declarations never share a SymbolID even if one
// shadows the other's name.
type SymbolID uint32

// ImportRef describes where an imported binding came from.
type ImportRef struct {
	// Source is the module specifier of the import statement.
	Source string

	// Imported is the exported name in the source module: the original name
	// for named imports and "default" for default imports. Empty for
	// namespace imports.
	Imported string

	// Namespace marks an `import * as N` binding.
	Namespace bool
}

// Scope holds the bound module-level names of one file. Interfaces, type
// aliases and enums are hoisted, so a reference may legally precede its
// declaration in source order.
type Scope struct {
	names   map[string]SymbolID
	decls   map[SymbolID]Decl
	imports map[SymbolID]ImportRef
	symName map[SymbolID]string
	nextSym SymbolID
}

// Bind resolves the module-level declarations of a file into a Scope.
// A name declared twice is an error; the first declaration keeps the name.
func Bind(file *File) (*Scope, []*Error) {
	s := &Scope{
		names:   make(map[string]SymbolID),
		decls:   make(map[SymbolID]Decl),
		imports: make(map[SymbolID]ImportRef),
		symName: make(map[SymbolID]string),
		nextSym: 1,
	}
	var errs []*Error

	declare := func(name string, loc Span) (SymbolID, bool) {
		if _, exists := s.names[name]; exists {
			errs = append(errs, &Error{
				Path:    file.Path,
				Message: fmt.Sprintf("duplicate declaration of %q", name),
				Loc:     loc,
			})
			return 0, false
		}
		sym := s.nextSym
		s.nextSym++
		s.names[name] = sym
		s.symName[sym] = name
		return sym, true
	}

	for _, d := range file.Decls {
		switch decl := d.(type) {
		case *ImportDecl:
			if decl.Default != "" {
				if sym, ok := declare(decl.Default, decl.Loc); ok {
					s.imports[sym] = ImportRef{Source: decl.Source, Imported: "default"}
				}
			}
			if decl.Namespace != "" {
				if sym, ok := declare(decl.Namespace, decl.Loc); ok {
					s.imports[sym] = ImportRef{Source: decl.Source, Namespace: true}
				}
			}
			for _, spec := range decl.Named {
				if sym, ok := declare(spec.Local, spec.Loc); ok {
					s.imports[sym] = ImportRef{Source: decl.Source, Imported: spec.Imported}
				}
			}
		case *InterfaceDecl:
			if sym, ok := declare(decl.Name.Name, decl.Name.Loc); ok {
				s.decls[sym] = decl
			}
		case *TypeAliasDecl:
			if sym, ok := declare(decl.Name.Name, decl.Name.Loc); ok {
				s.decls[sym] = decl
			}
		case *EnumDecl:
			if sym, ok := declare(decl.Name.Name, decl.Name.Loc); ok {
				s.decls[sym] = decl
			}
		case *VarDecl:
			if sym, ok := declare(decl.Name.Name, decl.Name.Loc); ok {
				s.decls[sym] = decl
			}
		}
	}
	return s, errs
}

// Lookup resolves a name to its symbol.
func (s *Scope) Lookup(name string) (SymbolID, bool) {
	sym, ok := s.names[name]
	return sym, ok
}

// Decl returns the declaration bound to the symbol, or nil for imports and
// unknown symbols.
func (s *Scope) Decl(sym SymbolID) Decl {
	return s.decls[sym]
}

// Import returns the import origin of the symbol, if it is an import binding.
func (s *Scope) Import(sym SymbolID) (ImportRef, bool) {
	ref, ok := s.imports[sym]
	return ref, ok
}

// NameOf returns the declared name of the symbol.
func (s *Scope) NameOf(sym SymbolID) string {
	return s.symName[sym]
}
