package userstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/spetersoncode/goalagent/tool"
)

// Register adds the user tools backed by store to registry. It stops at the
// first registration failure, such as a name already taken.
func Register(registry *tool.Registry, store Store) error {
	t := &tools{store: store}
	return registry.RegisterAll(
		tool.New(tool.Definition{
			Name: "add_user",
			Doc:  "Add a new user and return the new user's id.",
			Params: []tool.Param{
				tool.String("name", "Full name of the user"),
				tool.Integer("age", "Age of the user in years").AllowNumericString(),
				tool.String("email", "Email address").WithDefault(nil),
				tool.String("phone", "Phone number").WithDefault(nil),
				tool.String("status", "Status such as active, inactive or minor").WithDefault(StatusActive),
			},
		}, t.add),
		tool.New(tool.Definition{
			Name:   "get_user",
			Doc:    "Fetch a user's record by id. Returns null when the user does not exist.",
			Params: []tool.Param{userIDParam()},
		}, t.get),
		tool.New(tool.Definition{
			Name: "update_user",
			Doc:  "Update fields of a user's record. Returns false when the user does not exist.",
			Params: []tool.Param{
				userIDParam(),
				tool.Object("updates", "Fields to change: name, age, email, phone or status. Use null to clear email or phone. Other keys are ignored."),
			},
		}, t.update),
		tool.New(tool.Definition{
			Name:   "delete_user",
			Doc:    "Delete a user by id. Returns false when the user does not exist.",
			Params: []tool.Param{userIDParam()},
		}, t.delete),
		tool.New(tool.Definition{
			Name: "list_users",
			Doc:  "List users, optionally only those whose fields equal every entry of filter_by.",
			Params: []tool.Param{
				tool.Object("filter_by", "Field values to match, for example {\"email\": null}").WithDefault(nil),
			},
		}, t.list),
		tool.New(tool.Definition{
			Name: "verify_user_field",
			Doc:  "Check whether a field of a user's record equals the expected value.",
			Params: []tool.Param{
				userIDParam(),
				tool.String("field", "Field name, for example age or email"),
				tool.String("expected_value", "Expected value written as text, for example 25 or alice@example.com"),
			},
		}, t.verifyField),
		tool.New(tool.Definition{
			Name:   "verify_user_absent",
			Doc:    "Check that no user with the given id exists.",
			Params: []tool.Param{userIDParam()},
		}, t.verifyAbsent),
	)
}

func userIDParam() tool.Param {
	return tool.String("user_id", "Id of the user, for example user_1a2b3c4d")
}

type tools struct {
	store Store
}

func (t *tools) add(ctx context.Context, args tool.Args) (any, error) {
	u, err := t.store.Add(ctx, NewUser{
		Name:   args.String("name"),
		Age:    args.Int("age"),
		Email:  optionalString(args, "email"),
		Phone:  optionalString(args, "phone"),
		Status: args.String("status"),
	})
	if err != nil {
		return nil, err
	}
	return u.ID, nil
}

func (t *tools) get(ctx context.Context, args tool.Args) (any, error) {
	u, err := t.store.Get(ctx, args.String("user_id"))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (t *tools) update(ctx context.Context, args tool.Args) (any, error) {
	_, err := t.store.Update(ctx, args.String("user_id"), args.Object("updates"))
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return nil, err
	}
	return true, nil
}

func (t *tools) delete(ctx context.Context, args tool.Args) (any, error) {
	err := t.store.Delete(ctx, args.String("user_id"))
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return nil, err
	}
	return true, nil
}

func (t *tools) list(ctx context.Context, args tool.Args) (any, error) {
	return t.store.List(ctx, args.Object("filter_by"))
}

// verifyField compares the text form of the field against expected_value.
// An unset field matches "" and "null"; an unknown field or user never matches.
func (t *tools) verifyField(ctx context.Context, args tool.Args) (any, error) {
	u, err := t.store.Get(ctx, args.String("user_id"))
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return nil, err
	}

	got, ok := u.Field(args.String("field"))
	if !ok {
		return false, nil
	}
	expected := args.String("expected_value")
	if got == nil {
		return expected == "" || expected == "null", nil
	}
	return fmt.Sprint(got) == expected, nil
}

func (t *tools) verifyAbsent(ctx context.Context, args tool.Args) (any, error) {
	_, err := t.store.Get(ctx, args.String("user_id"))
	if errors.Is(err, ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return nil, err
	}
	return false, nil
}

func optionalString(args tool.Args, name string) *string {
	if v, ok := args.Value(name); ok && v != nil {
		s := v.(string)
		return &s
	}
	return nil
}
