package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// ScriptScope marks the calls a script makes, so the session can tell them
// from calls caused by user input. *session.CallTracker satisfies it.
type ScriptScope interface {
	Script(fn func())
}

// Manager owns the client's sandboxed LState and dispatches hooks to it.
//
// Manager is confined to the session loop like the Game it drives. Hooks may be
// re-entered: a script action that triggers a notification calls the matching
// hook while the first one is still running.
type Manager struct {
	L      *lua.LState
	limit  int
	scope  ScriptScope
	logger *zap.Logger
	depth  int
}

// NewManager creates a Manager whose scripts drive game through the game.* module.
//
// Precondition: game, scope and logger must be non-nil; limit <= 0 uses
// DefaultInstructionLimit.
// Postcondition: Returns a Manager with the game and log modules registered and
// no scripts loaded.
func NewManager(game Game, scope ScriptScope, limit int, logger *zap.Logger) *Manager {
	if game == nil || scope == nil {
		panic("scripting.NewManager: game and scope must not be nil")
	}
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}
	m := &Manager{
		L:      NewSandboxedState(),
		limit:  limit,
		scope:  scope,
		logger: logger,
	}
	m.RegisterModules(game)
	return m
}

// LoadDir executes every *.lua file in dir in lexicographic order. An empty dir
// disables scripting.
//
// Precondition: dir must be "" or a readable directory.
// Postcondition: Returns the first load failure; files before it stay loaded.
func (m *Manager) LoadDir(dir string) error {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		if err := m.run(func() error { return m.L.DoFile(path) }); err != nil {
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
		m.logger.Debug("script loaded", zap.String("path", path))
	}
	return nil
}

// LoadString executes src as a chunk named name.
func (m *Manager) LoadString(name, src string) error {
	if err := m.run(func() error { return m.L.DoString(src) }); err != nil {
		return fmt.Errorf("scripting: loading %q: %w", name, err)
	}
	return nil
}

// CallHook calls the named Lua global function. Returns (LNil, nil) if the hook
// is not defined. Lua runtime errors, including an exhausted instruction budget,
// are logged at Warn level and never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) (lua.LValue, error) {
	fn := m.L.GetGlobal(hook)
	if fn.Type() != lua.LTFunction {
		return lua.LNil, nil
	}

	ret := lua.LValue(lua.LNil)
	err := m.run(func() error {
		if err := m.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
			return err
		}
		ret = m.L.Get(-1)
		m.L.Pop(1)
		return nil
	})
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}
	return ret, nil
}

// HasHook reports whether a script defined the named global function.
func (m *Manager) HasHook(hook string) bool {
	return m.L.GetGlobal(hook).Type() == lua.LTFunction
}

// Close releases the VM.
func (m *Manager) Close() {
	m.L.Close()
}

// run executes fn under the instruction budget, marked as script-originated.
// Nested runs share the budget of the outermost one.
func (m *Manager) run(fn func() error) error {
	if m.depth > 0 {
		return fn()
	}
	m.depth++
	defer func() { m.depth-- }()

	var err error
	m.scope.Script(func() {
		err = limited(m.L, m.limit, fn)
	})
	return err
}
