/*
Package config manages configuration parsing and validation for assetrc.

	            +-------------+
	            |   Config    |
	            | (Build)     |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   JSON   | |   HCL    |
	+----------+ +----------+ +----------+

🎯 Purpose:
  - Loads the build description: source and destination roots, the asset and
    template extension sets, the extension remap table, ignore globs and the
    list of files to process
  - Validates it and fills defaults

📄 File references:
Every entry of `files` is either a plain string or a descriptor mapping:

	files:
	  - js/app.js
	  - path: https://cdn.example.com/x
	    ext: bundle.min.js
	    remote: true

In HCL the same list is written as `files = [...]` plus `file` blocks:

	file "https://cdn.example.com/x" {
	  ext    = "bundle.min.js"
	  remote = true
	}

HCL expressions can read the environment through the `env` object, e.g.
`dest_root = "dist/${env.BUILD_ID}"`.

🔍 Example:

	cfg, err := config.LoadConfig(ctx, "assetrc.yaml")
	if err != nil {
		return err
	}
	classifier := cfg.Classifier()

References are kept as written; they are only resolved when the build runs.
*/
package config
