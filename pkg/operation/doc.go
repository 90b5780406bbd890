/*
Package operation implements the batch rewrite: discover files, transform
each one, and write back only what changed.

	+-------------+
	|   Scanner   |
	| (Discovery) |
	+------+------+
	       |
	+------+------+
	|  Rewriter   |
	| (Transform) |
	+------+------+
	       |
	+------+------+
	|  Reporter   |
	|  (Summary)  |
	+-------------+

🎯 Purpose:
- Walks the configured tree and processes each eligible file in turn
- Applies the compiled-in rule list to each file's full content
- Overwrites a file in place only when its content changed
- Reports every change and tolerates every per-file failure

🔄 Flow:
1. Scanner returns eligible files in walk order
2. Each file is read, transformed, and conditionally written back
3. Files named index.html additionally get a marker-probe dump
4. Per-file errors are reported and skipped; the batch continues
5. The reporter prints the changed-file total at the end

⚡ Key Responsibilities:
- Strict one-file-at-a-time processing (no parallelism across files)
- Preserving file mode and line-ending bytes on write-back
- Leaving unchanged files untouched (no write, no timestamp change)

🤝 Interfaces:
- Scanner: file discovery
- Rewriter: content transformation
- Reporter: console output and run summary

📝 Design Philosophy:
Each file is processed independently and statelessly relative to every other
file; the only cross-file state is the reporter's summary counters. The
operation never fails the batch for a single file: the one fatal error class
is a failure to enumerate the scan root itself.

🔍 Example:

	op, err := operation.NewRewriteOperation(operation.Options{
		Config:   cfg,
		Scanner:  scanner,
		Rewriter: rewriter,
		Reporter: reporter,
	})
	if err != nil {
		return err
	}
	return operation.NewRunner(logger, false).Run(ctx, op)
*/
package operation
