// Package assemble stitches fragment files into one Newick tree.
//
// Assembly starts at a base file and copies its text to the output,
// replacing every inclusion token with the content of the file it names:
// a fragment found through the mapping table, which is itself assembled
// recursively, or a subtree of the reference taxonomy under
// <reference-root>/<ott>.phy (or .nwk), which is copied as is.
//
// The root label and edge length of an included file are rewritten on
// the way through. The edge length comes from the mapping table entry
// when it has a non-zero one, else from the file. The name comes from,
// in order of preference:
//
//	fragment:  mapping taxon, file's root name, token name
//	reference: token name, file's root name
//
// The edge length written after '@' in the including file is never used.
//
// A token whose file does not exist is left in the output as written and
// logged. Any other failure aborts the build without writing anything.
package assemble
