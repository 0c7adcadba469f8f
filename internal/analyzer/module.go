// Package analyzer statically inspects candidate agent source modules and
// reports rule violations for anything that would make the agent unsafe to
// promote.
package analyzer

// Role classifies what a source module is for. Some rules only apply to
// certain roles: structure rules to agents, default-value rules to config,
// boundary rules to network-facing gateways.
type Role string

const (
	RoleAgent   Role = "agent"
	RoleConfig  Role = "config"
	RoleGateway Role = "gateway"
)

// Module is one candidate source file under inspection.
type Module struct {
	// Path is the absolute path on disk.
	Path string
	// RelPath is the path relative to the analysis root, used in reports.
	RelPath string
	// Role classifies the module for role-scoped rules.
	Role Role
	// Source is the raw file content. Textual rules run against this even
	// when parsing failed.
	Source []byte
	// Tree is the parsed module, nil when parsing failed.
	Tree *Tree
}

// Tree is a minimal lowered view of a parsed module: only the constructs the
// rule catalog inspects are represented.
type Tree struct {
	Imports  []Import
	Funcs    []FuncDecl
	Types    []TypeDecl
	Bindings []Binding
	Calls    []Call
}

// Import is one import declaration.
type Import struct {
	Path  string
	Alias string
	Line  int
}

// FuncDecl is a top-level function declaration.
type FuncDecl struct {
	Name     string
	Exported bool
	Line     int
}

// TypeDecl is a top-level type declaration.
type TypeDecl struct {
	Name     string
	Exported bool
	Line     int
}

// Binding is a top-level var declaration or assignment target.
type Binding struct {
	Name     string
	Exported bool
	Line     int
}

// Call is a call expression. Callee is the flattened selector text, e.g.
// "envutil.Bool" or "NewAgent". Only literal arguments are captured; anything
// else is recorded as ArgOther.
type Call struct {
	Callee string
	Args   []Arg
	Line   int
}

// ArgKind tags which literal form an argument had, if any.
type ArgKind int

const (
	ArgOther ArgKind = iota
	ArgString
	ArgBool
)

// Arg is one call argument, captured only when it is a literal.
type Arg struct {
	Kind ArgKind
	Str  string
	Bool bool
}
