// Package validator decides whether scene objects are safe to export.
//
// [Validate] inspects every visible candidate and produces a [Summary]: one
// [Detail] per candidate listing legal facts, blocking errors and
// non-blocking warnings, plus aggregate counts. The engine is a pure
// function of its input. It keeps no state between calls and is safe to
// run concurrently on the same read-only scene.
//
// Checks, in order:
//
//   - name: must match ^[A-Za-z0-9_]+$
//   - scale: every axis within 0.001 of 1.0
//   - mesh only: object name equals mesh name
//   - mesh only: at least one material slot populated (warning)
//   - mesh only: every image-texture node has a packed image or an image
//     whose file exists on disk
//
// Each finding is also kept as an [Issue] so the [Reporter] can print the
// field and offending value next to the message.
//
// # Basic Usage
//
//	summary := validator.Validate(doc.Candidates(objs),
//		validator.WithProjectDir(doc.ProjectRoot()))
//	if !summary.AllValid {
//		_ = validator.NewReporter(os.Stdout, validator.FormatText).Report(summary)
//	}
package validator
