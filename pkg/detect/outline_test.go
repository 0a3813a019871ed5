package detect_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsxflat/pkg/detect"
	"github.com/yaklabco/tsxflat/pkg/syntax"
)

type outlineLine struct {
	depth    int
	kind     string
	exported *bool
	name     string
}

func flatten(entries []detect.Entry) []outlineLine {
	out := make([]outlineLine, 0, len(entries))
	for _, e := range entries {
		out = append(out, outlineLine{depth: e.Depth, kind: e.Kind.String(), exported: e.Exported, name: e.Name})
	}
	return out
}

func ptr(b bool) *bool { return &b }

func TestOutline(t *testing.T) {
	t.Parallel()

	got := flatten(detect.Outline(sequence(t, appTree())))

	assert.Equal(t, []outlineLine{
		{depth: 0, kind: "function_declaration", exported: ptr(true), name: "App"},
		{depth: 1, kind: "arrow_function", exported: ptr(false), name: "Inner"},
		{depth: 2, kind: "jsx_self_closing_element", name: "span"},
		{depth: 1, kind: "return_statement"},
		{depth: 2, kind: "jsx_element", name: "main"},
		{depth: 3, kind: "jsx_self_closing_element", name: "Header"},
	}, got)
}

func TestOutline_NoStructure(t *testing.T) {
	t.Parallel()

	got := detect.Outline(sequence(t, bazTree()))
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Depth)
	assert.Equal(t, "Baz", got[0].Name)
	assert.Equal(t, 1, got[1].Depth)
}

func TestOutline_JSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(detect.Outline(sequence(t, fooTree())))
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"depth":0,"kind":"function_declaration","exported":false,"name":"Foo"},
		{"depth":1,"kind":"return_statement"},
		{"depth":2,"kind":"jsx_element","name":"div"}
	]`, string(data))
}

func entries(levels ...int) []detect.Entry {
	out := make([]detect.Entry, len(levels))
	for i, l := range levels {
		out[i] = detect.Entry{Depth: l, Kind: syntax.Kind{Family: syntax.FamilyReturn}}
	}
	return out
}

func depths(es []detect.Entry) []int {
	out := make([]int, len(es))
	for i, e := range es {
		out[i] = e.Depth
	}
	return out
}

func TestCompact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		levels []int
		want   []int
	}{
		{name: "empty", levels: nil, want: []int{}},
		{name: "gaps collapse", levels: []int{2, 5, 9, 5, 2}, want: []int{0, 1, 2, 1, 0}},
		{name: "sibling at new level", levels: []int{2, 5, 3, 5}, want: []int{0, 1, 1, 2}},
		{name: "shallower than first", levels: []int{5, 2, 4}, want: []int{0, 0, 1}},
		{name: "already compact", levels: []int{0, 1, 2, 1}, want: []int{0, 1, 2, 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			once := detect.Compact(entries(tc.levels...))
			assert.Equal(t, tc.want, depths(once))

			twice := detect.Compact(entries(depths(once)...))
			assert.Equal(t, depths(once), depths(twice), "compaction must be idempotent")
		})
	}
}
