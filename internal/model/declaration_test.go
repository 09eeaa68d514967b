package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsurePath(t *testing.T) {
	root := NewRoot()

	leaf := root.EnsurePath([]string{"UnityEngine", "UI"})
	require.NotNil(t, leaf)
	assert.Equal(t, "UI", leaf.Name)

	again := root.EnsurePath([]string{"UnityEngine", "UI"})
	assert.Same(t, leaf, again)
	require.Len(t, root.Spaces, 1)
	require.Len(t, root.Spaces[0].Spaces, 1)

	sibling := root.EnsurePath([]string{"UnityEngine", "Events"})
	assert.NotSame(t, leaf, sibling)
	assert.Len(t, root.Spaces[0].Spaces, 2)

	assert.Same(t, root, root.EnsurePath(nil))
}

func TestEnsureClass(t *testing.T) {
	ns := NewRoot().EnsurePath([]string{"A"})

	c, created := ns.EnsureClass("Vector3", false)
	require.True(t, created)
	assert.Equal(t, "Vector3", c.Name)
	assert.False(t, c.IsEnum)

	again, created := ns.EnsureClass("Vector3", true)
	assert.False(t, created)
	assert.Same(t, c, again)
	assert.False(t, again.IsEnum, "an existing node keeps its original kind")
	assert.Len(t, ns.Classes, 1)
}

func TestWalk(t *testing.T) {
	root := NewRoot()
	root.EnsureClass("Global", false)
	root.EnsurePath([]string{"A"}).EnsureClass("One", false)
	root.EnsurePath([]string{"A", "B"}).EnsureClass("Two", true)

	var got []string
	root.Walk(func(path string, c *Class) {
		got = append(got, path+"|"+c.Name)
	})
	assert.Equal(t, []string{"A.B|Two", "A|One", "|Global"}, got)
}

func TestParamModeString(t *testing.T) {
	tests := []struct {
		mode ParamMode
		want string
	}{
		{ParamNil, "Nil"},
		{ParamRef, "Ref"},
		{ParamOut, "Out"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.mode.String())
	}
}
