/*
Package asset models the files a build moves around.

	+-------------+      +-------------+
	|     Ref     | ---> |  Resolver   |
	| (path/desc) |      | (ext/type)  |
	+------+------+      +------+------+
	       |                    |
	+------+------+      +------+------+
	|    File     | ---> |  Registry   |
	|   (Copy)    |      | (src / out) |
	+-------------+      +-------------+

🎯 Purpose:
- Resolve the extension and logical type of a local path or CDN URL
- Track known files by source reference and by output path
- Relocate local files from a source tree into a destination tree

🌐 Remote files:
A reference is remote when its descriptor says so, or when it starts with
http:// or https://. Remote files are referenced in place and never copied.
Their extension comes from an explicit descriptor Ext, the URL path, the
last path segment, or DefaultRemoteExtension, in that order.

📚 Registry:
The output index is derived. Call RebuildOutputIndex once every file has been
copied; a file without an output path is indexed under "".

🔍 Example:

	c := asset.NewClassifier([]string{".js", ".css"}, []string{".tmpl"})
	reg := asset.NewRegistry(c)
	f, err := reg.CreateAndRegister(asset.Config{Src: asset.Path("/src/a/b.css")})
	err = f.Copy(ctx, copier, "/src", "/dist") // f.OutputPath == "/dist/a/b.css"
	reg.RebuildOutputIndex()
	groups, err := reg.GroupBySourceType(ctx, reg.Files())
*/
package asset
