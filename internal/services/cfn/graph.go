package cfn

// Graph holds the parameters and resource nodes of one stack in creation order.
// Parameters and nodes share one namespace, as they do in a template.
type Graph struct {
	parameters []Parameter
	nodes      []*Node
	names      map[string]struct{}
}

func NewGraph() *Graph {
	return &Graph{names: map[string]struct{}{}}
}

func (g *Graph) AddParameter(p Parameter) error {
	if _, exists := g.names[p.Name]; exists {
		return &DuplicateNameError{Namespace: "template", Name: p.Name}
	}

	g.names[p.Name] = struct{}{}
	g.parameters = append(g.parameters, p)
	return nil
}

// AddNode appends n. Every name n references must already be in the graph, which is what
// keeps references pointing strictly backwards in creation order.
func (g *Graph) AddNode(n *Node) error {
	if _, exists := g.names[n.Name]; exists {
		return &DuplicateNameError{Namespace: "template", Name: n.Name}
	}

	for _, target := range n.References() {
		if isPseudoParameter(target) {
			continue
		}
		if _, exists := g.names[target]; !exists {
			return &UnresolvedReferenceError{FromKind: "resource", From: n.Name, ToKind: "resource", To: target}
		}
	}

	g.names[n.Name] = struct{}{}
	g.nodes = append(g.nodes, n)
	return nil
}

func (g *Graph) Has(name string) bool {
	_, ok := g.names[name]
	return ok
}

func (g *Graph) Parameters() []Parameter {
	return append([]Parameter(nil), g.parameters...)
}

func (g *Graph) Parameter(name string) (Parameter, bool) {
	for _, p := range g.parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

func (g *Graph) Nodes() []*Node {
	return append([]*Node(nil), g.nodes...)
}

func (g *Graph) Node(name string) (*Node, bool) {
	for _, n := range g.nodes {
		if n.Name == name {
			return n, true
		}
	}
	return nil, false
}

func (g *Graph) NodesOfKind(kind Kind) []*Node {
	var matching []*Node
	for _, n := range g.nodes {
		if n.Kind == kind {
			matching = append(matching, n)
		}
	}
	return matching
}

// Stack is the result of one assembly run.
type Stack struct {
	Name        string
	Description string
	Graph       *Graph
	Outputs     OutputTable
}
