// Package fsname sanitizes file and folder names for a specific target
// filesystem or storage service.
//
// The package is built around a small algebra of lazy, composable character
// stream transformers. Every transformer pulls runes from its input only when
// its own consumer asks for the next rune, so a pipeline never materialises the
// whole name and never runs ahead of the caller.
//
// # Building blocks
//
//   - Replace – maps single characters through a CharMap (forbidden → replacement).
//   - ReplaceControl / ReplaceWhitespace – normalise a character class.
//   - Deduplicate – collapses runs of a character class to their first character.
//   - StripPrefix – drops leading characters of a class.
//   - Pad – injects a marker when the whole name equals a reserved name.
//   - Then / Chain / Builder – sequence transformers into a pipeline.
//
// # Targets
//
// A Policy assembles these primitives for one target. The package ships
// Linux, Windows, OneDrive and S3 policies, and Custom policies can be
// described in YAML and loaded with LoadProfile.
//
//	name := fsname.SanitizeFilename("NUL.txt", fsname.NewWindows())
//	// name == "NUL_.txt"
//
//	safe := fsname.SanitizeFilename("a/b", fsname.NewLinux())
//	// safe == "a�b"
//
// Pipelines can also be assembled by hand:
//
//	t := fsname.NewBuilder().
//	    ReplaceWhitespace('_').
//	    Deduplicate(fsname.Is('_')).
//	    Pad('_', []string{"CON", "NUL"}, fsname.WithBoundary('.')).
//	    Build()
//
//	fsname.Sanitize("my \t report.log", t) // "my_report.log"
//	fsname.Sanitize("CON.log", t)          // "CON_.log"
//
// # Error handling
//
// Sanitization never fails: every transformer is a total function over
// character sequences. The only abnormal condition is asking a policy for an
// operation it does not support (for example folder names on Windows). That
// is treated as a programming error and panics with an error wrapping
// ErrNotSupported; use TrySanitizeFolder to receive it as an error instead.
//
// # Concurrency
//
// Transformers and policies carry configuration only. Each call to Transform
// allocates its own per-stream state, so the same pipeline can be used from
// many goroutines at once. A single Stream must not be shared.
package fsname
