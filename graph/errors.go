package graph

import "fmt"

// CycleDependencyError is returned when a proposed bind would create a cycle
// in the dependency DAG, including a self-edge. The bind is rejected and the
// cell keeps its prior bindings.
type CycleDependencyError struct {
	Source string
	Target string
}

func (e *CycleDependencyError) Error() string {
	return fmt.Sprintf("reactor: cycle dependency: node %q cannot depend on %q", e.Source, e.Target)
}

// ReturnTypeMismatchError is returned when a rebind closure returns a type
// that does not match the cell's declared ValueType.
type ReturnTypeMismatchError struct {
	Node string
	Want string
	Got  string
}

func (e *ReturnTypeMismatchError) Error() string {
	return fmt.Sprintf("reactor: return type mismatch on node %q: want %s, got %s", e.Node, e.Want, e.Got)
}

// NullHandleAccessError is raised when a weak handle whose referent was
// closed or destroyed is read or written.
type NullHandleAccessError struct {
	Node string
}

func (e *NullHandleAccessError) Error() string {
	return fmt.Sprintf("reactor: null handle access: node %q is closed", e.Node)
}
