/*
Package operation implements the build steps that drive the asset package.

	+-------------+
	|   Config    |
	|  (files)    |
	+------+------+
	       |
	+------+------+      +-------------+
	|  Operation  | ---> |  Registry   |
	| build/class |      | (src / out) |
	+------+------+      +-------------+
	       |
	+------+------+
	| FileSystem  |
	| + Manifest  |
	+-------------+

🎯 Purpose:
  - build: registers and copies every configured file, rebuilds the output
    index once all copies are resolved, then writes the manifest
  - classify: reports extension, type and flags for every configured file
    without copying anything

🔄 Build flow:
1. Anchor relative local references at src_root
2. Skip sources matching an ignore pattern
3. CreateAndRegister + Copy (remote files keep their URL)
4. RebuildOutputIndex, GroupBySourceType
5. Compute asset extension remaps, write the manifest

⚡ Failure policy:
The first file that cannot be resolved or copied aborts the build. Files
already copied stay where they are.

🔍 Example:

	op, err := operation.NewBuildOperation(operation.Options{
		Config:     cfg,
		FileSystem: copier.NewOS(),
		Logger:     logger,
	})
	err = operation.NewRunner(zerolog.Ctx(ctx), cfg.Async).Run(ctx, op)
*/
package operation
