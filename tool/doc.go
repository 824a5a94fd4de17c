// Package tool provides declarative tool definitions and validated dispatch.
//
// A tool is a [Definition] (name, description and an ordered parameter list)
// paired with a [Func]. Parameters are declared explicitly with [String],
// [Integer], [Boolean], [Object] and [Array]; a parameter is required unless
// it is given a default with [Param.WithDefault].
//
// # Basic Usage
//
//	registry := tool.NewRegistry()
//	_, err := registry.Register(tool.Definition{
//	    Name: "add",
//	    Doc:  "Add two integers.\n\nReturns a + b.",
//	    Params: []tool.Param{
//	        tool.Integer("a", "First addend"),
//	        tool.Integer("b", "Second addend"),
//	    },
//	}, func(ctx context.Context, args tool.Args) (any, error) {
//	    return args.Int("a") + args.Int("b"), nil
//	})
//
// The description offered to the model is the first line of Doc unless
// Description is set. [Registry.Tools] renders every definition as a JSON
// Schema object for completion backends.
//
// # Dispatch
//
// [Registry.Dispatch] validates a decoded argument payload before the tool
// runs: missing required parameters, unknown parameters and type mismatches
// fail with [ErrArgumentValidation] and the tool is never called. Integer
// parameters accept numeric strings only when declared with
// [Param.AllowNumericString]. Failures inside the tool surface as
// [ErrToolExecution].
package tool
