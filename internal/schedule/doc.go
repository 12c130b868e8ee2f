// Package schedule implements the duty/on-call schedule engine: shift models,
// inclusive date-range arithmetic, per-team/per-year persisted state, bounded
// undo history, and resolution of who is responsible right now.
//
// All mutation entry points funnel through the History manager, which
// snapshots the pre-mutation state before delegating to the mutation
// functions and persisting the result.
package schedule
