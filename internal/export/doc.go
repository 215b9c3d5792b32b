// Package export gates and drives FBX export of validated scene objects.
//
// A Gate re-validates the candidates it is handed and only then calls the
// Exporter, either once per object or once for the whole batch. Exporters
// are opaque: CommandExporter runs an external command such as a headless
// host instance with an export script, and tests substitute a mock.
//
// Every Gate.Run walks the same state machine:
//
//	Idle -> Validating -> Blocked
//	Idle -> Validating -> Ready -> Exporting -> Succeeded | Failed
//
// There are no retries and no rollback: in per-object mode files written
// before a failure stay on disk.
package export
