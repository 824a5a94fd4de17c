package tool

import (
	"context"
	"fmt"
	"sync"

	ai "github.com/spetersoncode/goalagent"
)

// registeredTool combines a tool definition with its callable.
type registeredTool struct {
	def Definition
	fn  Func
}

// Registry manages registered tools and dispatches validated calls to them.
// It is safe for concurrent use. Tools keep their registration order.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]registeredTool
	order []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]registeredTool),
	}
}

// Register adds a tool to the registry and returns the stored definition,
// with its description resolved from Doc when needed.
// Returns an error if the definition is invalid or a tool with the same
// name is already registered; the registry is unchanged in both cases.
func (r *Registry) Register(def Definition, fn Func) (Definition, error) {
	if fn == nil {
		return Definition{}, &ErrInvalidDefinition{Name: def.Name, Reason: "nil function"}
	}
	if err := def.validate(); err != nil {
		return Definition{}, &ErrInvalidDefinition{Name: def.Name, Reason: err.Error()}
	}
	def = def.normalize()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[def.Name]; exists {
		return Definition{}, &ErrToolAlreadyRegistered{Name: def.Name}
	}

	r.tools[def.Name] = registeredTool{def: def, fn: fn}
	r.order = append(r.order, def.Name)
	return def.clone(), nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(def Definition, fn Func) Definition {
	stored, err := r.Register(def, fn)
	if err != nil {
		panic(err)
	}
	return stored
}

// Get retrieves a tool definition by name.
func (r *Registry) Get(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.tools[name]
	if !ok {
		return Definition{}, false
	}
	return rt.def.clone(), true
}

// Definitions returns all registered definitions in registration order.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].def.clone())
	}
	return defs
}

// Tools returns all registered tools in the form offered to a ChatProvider.
func (r *Registry) Tools() []ai.Tool {
	defs := r.Definitions()
	tools := make([]ai.Tool, len(defs))
	for i, d := range defs {
		tools[i] = d.Tool()
	}
	return tools
}

// Names returns the names of all registered tools in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Bind validates raw arguments for the named tool without invoking it.
func (r *Registry) Bind(name string, raw map[string]any) (Args, error) {
	rt, ok := r.lookup(name)
	if !ok {
		return Args{}, &ErrToolNotFound{Name: name}
	}
	return bind(rt.def, raw)
}

// Dispatch validates raw against the named tool's parameters and, only if
// validation succeeds, invokes the tool. Errors and panics raised by the
// tool are returned as *ErrToolExecution.
func (r *Registry) Dispatch(ctx context.Context, name string, raw map[string]any) (any, error) {
	args, err := r.Bind(name, raw)
	if err != nil {
		return nil, err
	}
	rt, _ := r.lookup(name)
	return invoke(ctx, name, rt.fn, args)
}

// Execute decodes a tool call's JSON arguments, dispatches it and renders
// the result. Registry errors are returned, not folded into the result.
func (r *Registry) Execute(ctx context.Context, call ai.ToolCall) (ai.ToolResult, error) {
	raw, err := DecodeCall(call)
	if err != nil {
		return ai.ToolResult{}, err
	}

	value, err := r.Dispatch(ctx, call.Name, raw)
	if err != nil {
		return ai.ToolResult{}, err
	}

	return ai.ToolResult{
		ToolCallID: call.ID,
		Name:       call.Name,
		Value:      value,
		Content:    Render(value),
	}, nil
}

func (r *Registry) lookup(name string) (registeredTool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rt, ok := r.tools[name]
	return rt, ok
}

func invoke(ctx context.Context, name string, fn Func, args Args) (value any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			value = nil
			err = &ErrToolExecution{Name: name, Err: fmt.Errorf("panic: %v", rec)}
		}
	}()

	value, err = fn(ctx, args)
	if err != nil {
		return nil, &ErrToolExecution{Name: name, Err: err}
	}
	return value, nil
}

// Registration holds a definition and its callable for fluent registration.
type Registration struct {
	Definition Definition
	Func       Func
}

// New pairs a definition with its callable.
//
// Example:
//
//	registry := tool.NewRegistry().Add(
//	    tool.New(tool.Definition{
//	        Name: "add",
//	        Doc:  "Add two integers.",
//	        Params: []tool.Param{
//	            tool.Integer("a", "First addend"),
//	            tool.Integer("b", "Second addend"),
//	        },
//	    }, addFn),
//	)
func New(def Definition, fn Func) Registration {
	return Registration{Definition: def, Func: fn}
}

// Add registers one or more tools to the registry.
// Panics if any registration fails.
// Returns the registry for fluent chaining.
func (r *Registry) Add(regs ...Registration) *Registry {
	for _, reg := range regs {
		r.MustRegister(reg.Definition, reg.Func)
	}
	return r
}

// RegisterAll registers tools in order, stopping at the first failure.
func (r *Registry) RegisterAll(regs ...Registration) error {
	for _, reg := range regs {
		if _, err := r.Register(reg.Definition, reg.Func); err != nil {
			return err
		}
	}
	return nil
}
