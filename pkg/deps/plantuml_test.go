package deps_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsxflat/pkg/deps"
)

func TestWritePlantUML(t *testing.T) {
	t.Parallel()

	graph := &deps.Graph{Modules: []deps.Module{
		{Path: "app/src/index.tsx", Imports: []string{"app/src/App.tsx"}},
		{Path: "app/src/App.tsx", Imports: []string{"app/src/components/Header.tsx"}},
		{Path: "app/src/components/Header.tsx"},
	}}

	var buf bytes.Buffer
	require.NoError(t, deps.WritePlantUML(&buf, graph, deps.PlantUMLOptions{
		Title:       "Sample app",
		StripPrefix: "app/src/",
	}))

	want := `@startuml dependencies
title Sample app
skinparam shadowing false
scale 0.8
skinparam packageStyle Rectangle
left to right direction

rectangle "index.tsx" as index_tsx
rectangle "App.tsx" as App_tsx
rectangle "Header.tsx" as components_Header_tsx
index_tsx --> App_tsx
App_tsx --> components_Header_tsx
@enduml
`
	assert.Equal(t, want, buf.String())
}

func TestWritePlantUML_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, deps.WritePlantUML(&buf, nil, deps.PlantUMLOptions{}))

	assert.NotContains(t, buf.String(), "title")
	assert.Contains(t, buf.String(), "@startuml dependencies\n")
	assert.Contains(t, buf.String(), "@enduml\n")
}
