// Package manifest reads and writes page manifests.
//
// A manifest lists the pages of a document as references into source
// files. It stands in for the document container at the engine's import
// and export boundary: Loader implements engine.Loader and Writer
// implements engine.Writer, with PageRef as the page content handle.
//
// Two formats are supported, chosen by file extension. TOML:
//
//	[[page]]
//	source = "scan.pdf"
//	number = 1
//	label = "Cover"
//
// and JSON:
//
//	{"pages": [{"source": "scan.pdf", "number": 1, "label": "Cover"}]}
package manifest
