// Package document reads and writes markdown files with a YAML front matter block.
//
// The front matter carries per-document metadata such as the reference
// timestamp; the body is the prose the user edits. Both hosts go through
// this package so a body edit never disturbs the front matter and a
// metadata write never disturbs the body.
package document
