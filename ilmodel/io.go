package ilmodel

// ModuleReader loads a Module from a path. It stands in for a real assembly
// reader; fixtureio provides the only implementation this repo ships.
type ModuleReader interface {
	ReadModule(path string) (*Module, error)
}

// ModuleWriter persists a Module back to storage after a weave has mutated
// it. It stands in for the assumed-present assembly writer.
type ModuleWriter interface {
	WriteModule(path string, m *Module) error
}
