package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsxflat/pkg/syntax"
	"github.com/yaklabco/tsxflat/pkg/syntax/syntaxtest"
)

// buildCommented builds:
//
//	// lead
//	f(a); /* tail */
func buildCommented() *syntax.Tree {
	return syntaxtest.New().
		Comment("// lead").Space("\n").
		Open(syntaxtest.Named("expression_statement")).
		Open(syntaxtest.Named("call_expression")).
		Ident("f").
		Open(syntaxtest.Named("arguments")).Tok("(").Ident("a").Tok(")").Close().
		Close().
		Tok(";").
		Close().
		Space(" ").Comment("/* tail */").Space("\n").
		Tree()
}

func TestAssemble_Offsets(t *testing.T) {
	t.Parallel()

	tree := buildCommented()
	root := tree.Root

	require.Len(t, root.Children, 2)
	stmt := root.Children[0]
	eof := root.Children[1]

	assert.Equal(t, 0, root.FullStart)
	assert.Equal(t, 8, root.Start, "root starts at its first token")
	assert.Equal(t, len(tree.Content), root.End)

	assert.Equal(t, 0, stmt.FullStart)
	assert.Equal(t, 8, stmt.Start)
	assert.Equal(t, "f(a);", tree.Text(stmt.Start, stmt.End))

	assert.Equal(t, syntax.FamilyEndOfFile, eof.Kind.Family)
	assert.Equal(t, stmt.End, eof.FullStart)
	assert.Equal(t, len(tree.Content), eof.Start)
}

func TestAssemble_Trivia(t *testing.T) {
	t.Parallel()

	tree := buildCommented()
	root := tree.Root
	stmt := root.Children[0]
	eof := root.Children[1]

	require.Len(t, root.Leading, 1)
	assert.Equal(t, "// lead", tree.Text(root.Leading[0].Start, root.Leading[0].End))

	// The statement shares FullStart with the root, so it sees the same comment.
	require.Len(t, stmt.Leading, 1)
	assert.Equal(t, root.FullStart, stmt.FullStart)

	require.Len(t, eof.Leading, 1)
	assert.Equal(t, syntax.VariantBlockComment, eof.Leading[0].Kind.Variant)
}

func TestWalk_PreOrder(t *testing.T) {
	t.Parallel()

	tree := buildCommented()

	var kinds []string
	var depths []int
	err := syntax.Walk(tree.Root, func(n *syntax.Node, depth int) error {
		kinds = append(kinds, n.Kind.String())
		depths = append(depths, depth)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"program", "expression_statement", "call_expression", "identifier",
		"arguments", "(", "identifier", ")", ";", "end_of_file",
	}, kinds)
	assert.Equal(t, []int{0, 1, 2, 3, 3, 4, 4, 4, 2, 1}, depths)
}

func TestWalk_Nil(t *testing.T) {
	t.Parallel()

	err := syntax.Walk(nil, func(_ *syntax.Node, _ int) error {
		t.Fatal("callback should not run")
		return nil
	})
	assert.NoError(t, err)
}
