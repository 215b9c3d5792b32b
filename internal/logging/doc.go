// Package logging holds meshkit's slog plumbing.
//
// Commands never build loggers themselves. The root command picks a level
// from -v/-q (or MESHKIT_DEBUG), builds a handler with [HandlerFor], tees it
// to --log-file through [MultiHandler] and stores the result on the command
// context with [NewContext]. Library packages such as the validator and the
// LOD generator take a *slog.Logger option and default to [NewDiscard].
//
// [LevelTrace] sits below Debug and is reserved for per-node output, for
// example every image visited while walking a material's node tree.
//
// Tests pass [ForTest] so log lines land in the test's own output.
package logging
