package source

// FileDef is one hierarchy manifest as written on disk. Type expressions are
// still source text; compile turns them into tree types.
type FileDef struct {
	Path    string
	Imports []string
	Types   []*TypeSpec
}

type TypeSpec struct {
	Name       string
	Params     []string
	Extends    string
	Implements []string
	Methods    []*MethodSpec
}

type MethodSpec struct {
	Name    string
	Returns string // empty: void
	Params  []string
	Throws  []string
}
