package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r)
	assert.Len(t, r.Commands(), len(BuiltinCommands()))
}

func TestResolve_CanonicalName(t *testing.T) {
	r := DefaultRegistry()

	cmd, ok := r.Resolve("north")
	assert.True(t, ok)
	assert.Equal(t, "north", cmd.Name)
	assert.Equal(t, HandlerWalk, cmd.Handler)
}

func TestResolve_AliasIgnoresCase(t *testing.T) {
	r := DefaultRegistry()

	cmd, ok := r.Resolve("KILL")
	assert.True(t, ok)
	assert.Equal(t, "attack", cmd.Name)
}

func TestResolve_NotFound(t *testing.T) {
	r := DefaultRegistry()

	_, ok := r.Resolve("teleport")
	assert.False(t, ok)
}

func TestResolve_AllMovementDirections(t *testing.T) {
	r := DefaultRegistry()
	directions := []struct {
		name  string
		alias string
	}{
		{"north", "n"},
		{"south", "s"},
		{"east", "e"},
		{"west", "w"},
		{"northeast", "ne"},
		{"northwest", "nw"},
		{"southeast", "se"},
		{"southwest", "sw"},
	}

	for _, d := range directions {
		cmd, ok := r.Resolve(d.name)
		require.True(t, ok, "canonical name %q not found", d.name)
		assert.Equal(t, d.name, cmd.Name)
		assert.Equal(t, HandlerWalk, cmd.Handler)

		aliasCmd, ok := r.Resolve(d.alias)
		require.True(t, ok, "alias %q not found", d.alias)
		assert.Equal(t, d.name, aliasCmd.Name)
	}
}

func TestResolve_Handlers(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		input   string
		handler string
	}{
		{"go", HandlerAutoWalk},
		{"face", HandlerTurn},
		{"ua", HandlerUnattack},
		{"'", HandlerSay},
		{"pm", HandlerTell},
		{"ch", HandlerChannel},
		{"up", HandlerUpContainer},
		{"bags", HandlerContainers},
		{"stat", HandlerStatus},
		{"features", HandlerProtocolInfo},
		{"logout", HandlerLogout},
		{"exit", HandlerQuit},
		{"?", HandlerHelp},
	}

	for _, tt := range tests {
		cmd, ok := r.Resolve(tt.input)
		require.True(t, ok, "input %q not found", tt.input)
		assert.Equal(t, tt.handler, cmd.Handler, "input %q wrong handler", tt.input)
	}
}

func TestNewRegistry_DuplicateName(t *testing.T) {
	cmds := []Command{
		{Name: "test", Handler: "a"},
		{Name: "test", Handler: "b"},
	}
	_, err := NewRegistry(cmds)
	assert.ErrorContains(t, err, "duplicate command name")
}

func TestNewRegistry_DuplicateAlias(t *testing.T) {
	cmds := []Command{
		{Name: "test1", Aliases: []string{"t"}, Handler: "a"},
		{Name: "test2", Aliases: []string{"t"}, Handler: "b"},
	}
	_, err := NewRegistry(cmds)
	assert.ErrorContains(t, err, "duplicate alias")
}

func TestNewRegistry_NameShadowsAlias(t *testing.T) {
	cmds := []Command{
		{Name: "stop", Aliases: []string{"halt"}, Handler: "a"},
		{Name: "halt", Handler: "b"},
	}
	_, err := NewRegistry(cmds)
	assert.ErrorContains(t, err, `conflicts with an alias of "stop"`)
}

func TestCommandsByCategory(t *testing.T) {
	r := DefaultRegistry()
	cats := r.CommandsByCategory()

	assert.Contains(t, cats, CategoryMovement)
	assert.Contains(t, cats, CategoryCombat)
	assert.Contains(t, cats, CategoryCommunication)
	assert.Contains(t, cats, CategoryContainers)
	assert.Contains(t, cats, CategorySystem)
	assert.Len(t, cats[CategoryMovement], 11)

	sys := cats[CategorySystem]
	for i := 1; i < len(sys); i++ {
		assert.Less(t, sys[i-1].Name, sys[i].Name)
	}
}

func TestPropertyAllAliasesResolveToCanonical(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := DefaultRegistry()
		cmds := r.Commands()
		idx := rapid.IntRange(0, len(cmds)-1).Draw(t, "cmd_idx")
		cmd := cmds[idx]

		resolved, ok := r.Resolve(cmd.Name)
		if !ok {
			t.Fatalf("canonical name %q did not resolve", cmd.Name)
		}
		if resolved.Name != cmd.Name {
			t.Fatalf("canonical name %q resolved to %q", cmd.Name, resolved.Name)
		}

		for _, alias := range cmd.Aliases {
			aliasResolved, ok := r.Resolve(alias)
			if !ok {
				t.Fatalf("alias %q did not resolve", alias)
			}
			if aliasResolved.Name != cmd.Name {
				t.Fatalf("alias %q resolved to %q, expected %q", alias, aliasResolved.Name, cmd.Name)
			}
		}
	})
}

func TestIsMovementCommand(t *testing.T) {
	assert.True(t, IsMovementCommand("north"))
	assert.True(t, IsMovementCommand("southwest"))
	assert.False(t, IsMovementCommand("up"))
	assert.False(t, IsMovementCommand("path"))
	assert.False(t, IsMovementCommand("say"))
}
