// Package userstore is a user-record table exposed to agents as tools.
//
// [Register] adds seven tools to a [tool.Registry]: add_user, get_user,
// update_user, delete_user, list_users, verify_user_field and
// verify_user_absent. Every tool goes through the [Store] interface, so the
// backing table can be swapped; [MemoryStore] keeps records in memory and
// serializes every operation, which makes it safe to share between
// concurrent agent runs.
//
//	store := userstore.NewMemoryStore()
//	registry := tool.NewRegistry()
//	if err := userstore.Register(registry, store); err != nil {
//	    log.Fatal(err)
//	}
//	a := agent.New(provider, registry, store)
//
// MemoryStore implements Snapshot, so it can be handed to the agent as the
// goal-check state source directly.
package userstore
