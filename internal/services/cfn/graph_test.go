package cfn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_AddNode(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(g *Graph)
		node      *Node
		wantErrIs error
	}{
		{
			name:  "references_existing_parameter",
			setup: func(g *Graph) { require.NoError(t, g.AddParameter(Parameter{Name: "MinScale"})) },
			node:  &Node{Name: "Group", Properties: Object{}.With("MinSize", Ref{Target: "MinScale"})},
		},
		{
			name:  "pseudo_parameters_always_resolve",
			setup: func(g *Graph) {},
			node:  &Node{Name: "Group", Properties: Object{}.With("Stack", Ref{Target: "AWS::StackName"})},
		},
		{
			name:      "forward_reference_is_rejected",
			setup:     func(g *Graph) {},
			node:      &Node{Name: "Record", Properties: Object{}.With("Target", GetAtt{Target: "LoadBalancer", Attribute: "DNSName"})},
			wantErrIs: ErrUnresolvedReference,
		},
		{
			name:      "reference_nested_in_join",
			setup:     func(g *Graph) {},
			node:      &Node{Name: "Record", Properties: Object{}.With("Name", Join{Parts: []Value{Ref{Target: "Zone"}, String(".")}})},
			wantErrIs: ErrUnresolvedReference,
		},
		{
			name:      "name_shared_with_parameter",
			setup:     func(g *Graph) { require.NoError(t, g.AddParameter(Parameter{Name: "LoadBalancer"})) },
			node:      &Node{Name: "LoadBalancer"},
			wantErrIs: ErrDuplicateResourceName,
		},
		{
			name: "reference_in_update_policy",
			setup: func(g *Graph) {},
			node: &Node{
				Name:         "Group",
				UpdatePolicy: Object{}.With("Batch", Ref{Target: "BatchSize"}),
			},
			wantErrIs: ErrUnresolvedReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGraph()
			tt.setup(g)

			err := g.AddNode(tt.node)
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				assert.Empty(t, g.Nodes())
				return
			}
			require.NoError(t, err)
			assert.True(t, g.Has(tt.node.Name))
		})
	}
}

func TestGraph_PreservesCreationOrder(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddParameter(Parameter{Name: "B"}))
	require.NoError(t, g.AddParameter(Parameter{Name: "A"}))
	require.NoError(t, g.AddNode(&Node{Name: "Second", Kind: KindAlarm}))
	require.NoError(t, g.AddNode(&Node{Name: "First", Kind: KindScalingPolicy}))
	require.NoError(t, g.AddNode(&Node{Name: "Third", Kind: KindAlarm}))

	params := g.Parameters()
	assert.Equal(t, "B", params[0].Name)
	assert.Equal(t, "A", params[1].Name)

	alarms := g.NodesOfKind(KindAlarm)
	require.Len(t, alarms, 2)
	assert.Equal(t, "Second", alarms[0].Name)
	assert.Equal(t, "Third", alarms[1].Name)

	_, ok := g.Node("Missing")
	assert.False(t, ok)
}

func TestReferenceTable(t *testing.T) {
	table := NewReferenceTable()
	up := &Node{Name: "ScaleUpPolicy"}
	down := &Node{Name: "ScaleDownPolicy"}

	require.NoError(t, table.Put("scale-up", up))
	require.NoError(t, table.Put("scale-down", down))

	err := table.Put("scale-up", down)
	assert.ErrorIs(t, err, ErrDuplicateResourceName)

	got, ok := table.Get("scale-up")
	require.True(t, ok)
	assert.Same(t, up, got)

	table.Seal()
	assert.Error(t, table.Put("scale-sideways", &Node{}))
	assert.False(t, table.Has("scale-sideways"))

	assert.Equal(t, []string{"scale-up", "scale-down"}, table.Names())
	assert.Equal(t, 2, table.Len())
}

func TestLogicalID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"scale-up", "ScaleUp"},
		{"scale_up", "ScaleUp"},
		{"cpu high 90", "CpuHigh90"},
		{"AlreadyFine", "AlreadyFine"},
		{"--", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, LogicalID(tt.in))
		})
	}
}

func TestReferences(t *testing.T) {
	value := Object{}.
		With("A", Ref{Target: "One"}).
		With("B", List{String("x"), GetAtt{Target: "Two", Attribute: "DNSName"}}).
		With("C", Join{Parts: []Value{Ref{Target: "Three"}, Int(1)}})

	assert.Equal(t, []string{"One", "Two", "Three"}, References(value))
	assert.Empty(t, References(String("plain")))
}
