// Package domain contains the core domain models for auditable command execution.
package domain

// NodeKind distinguishes command nodes from file nodes.
type NodeKind string

const (
	// NodeKindCommand is an executed command.
	NodeKindCommand NodeKind = "command"
	// NodeKindFile is a file consumed or produced by a command.
	NodeKindFile NodeKind = "file"
)

const (
	commandIDPrefix = "cmd:"
	fileIDPrefix    = "file:"
)

// Node is a vertex of the provenance graph.
type Node struct {
	ID    string
	Label string
	Kind  NodeKind
}

// Edge is a directed edge between two node ids.
type Edge struct {
	From string
	To   string
}

// Graph is a directed graph of commands and files.
// Nodes and edges keep insertion order and are unique.
type Graph struct {
	Nodes []Node
	Edges []Edge

	nodeIndex map[string]struct{}
	edgeIndex map[Edge]struct{}
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes:     []Node{},
		Edges:     []Edge{},
		nodeIndex: make(map[string]struct{}),
		edgeIndex: make(map[Edge]struct{}),
	}
}

// AddNode inserts n unless a node with the same id exists.
func (g *Graph) AddNode(n Node) {
	if _, ok := g.nodeIndex[n.ID]; ok {
		return
	}
	g.nodeIndex[n.ID] = struct{}{}
	g.Nodes = append(g.Nodes, n)
}

// AddEdge inserts the edge unless it exists.
func (g *Graph) AddEdge(from, to string) {
	e := Edge{From: from, To: to}
	if _, ok := g.edgeIndex[e]; ok {
		return
	}
	g.edgeIndex[e] = struct{}{}
	g.Edges = append(g.Edges, e)
}

// CommandNodeID returns the node id of a command string.
func CommandNodeID(command string) string {
	return commandIDPrefix + command
}

// FileNodeID returns the node id of a file url.
func FileNodeID(url string) string {
	return fileIDPrefix + url
}

// ProjectGraph maps records to a graph with an edge from every input to its
// command and from the command to every output.
func ProjectGraph(records []AuditRecord) *Graph {
	g := NewGraph()
	for i := range records {
		rec := &records[i]
		cmd := rec.CommandString()
		cmdID := CommandNodeID(cmd)

		for _, in := range rec.Inputs {
			g.AddNode(Node{ID: FileNodeID(in.URL), Label: in.URL, Kind: NodeKindFile})
		}
		g.AddNode(Node{ID: cmdID, Label: cmd, Kind: NodeKindCommand})
		for _, out := range rec.Outputs {
			g.AddNode(Node{ID: FileNodeID(out.URL), Label: out.URL, Kind: NodeKindFile})
		}

		for _, in := range rec.Inputs {
			g.AddEdge(FileNodeID(in.URL), cmdID)
		}
		for _, out := range rec.Outputs {
			g.AddEdge(cmdID, FileNodeID(out.URL))
		}
	}
	return g
}
