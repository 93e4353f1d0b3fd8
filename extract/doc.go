// Package extract carves subtrees out of a Newick text without building
// a tree.
//
// [Subtrees] walks the text once and copies the span of every requested
// node, dropping the spans of excluded descendants along with one
// adjacent comma. It stops as soon as every requested node has been seen,
// so pulling a few clades out of a multi-gigabyte reference taxonomy only
// reads as far as the last of them.
//
// [Minimal] keeps only the requested nodes and the branch points that
// join them.
package extract
