package cfn

import "fmt"

// ReferenceTable maps user-supplied scaling policy names to the nodes built for them.
// It is filled while policies are created and only read once sealed.
type ReferenceTable struct {
	nodes  map[string]*Node
	order  []string
	sealed bool
}

func NewReferenceTable() *ReferenceTable {
	return &ReferenceTable{nodes: map[string]*Node{}}
}

func (t *ReferenceTable) Put(name string, node *Node) error {
	if t.sealed {
		return fmt.Errorf("reference table is sealed, cannot add %q", name)
	}
	if _, exists := t.nodes[name]; exists {
		return &DuplicateNameError{Namespace: "scaling policy", Name: name}
	}

	t.nodes[name] = node
	t.order = append(t.order, name)
	return nil
}

func (t *ReferenceTable) Get(name string) (*Node, bool) {
	node, ok := t.nodes[name]
	return node, ok
}

func (t *ReferenceTable) Has(name string) bool {
	_, ok := t.nodes[name]
	return ok
}

// Seal makes the table read-only.
func (t *ReferenceTable) Seal() {
	t.sealed = true
}

// Names returns the keys in insertion order.
func (t *ReferenceTable) Names() []string {
	return append([]string(nil), t.order...)
}

func (t *ReferenceTable) Len() int {
	return len(t.order)
}
