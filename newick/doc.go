// Package newick provides a single pass scanner for Newick tree text.
//
// [Scanner] walks the text once, left to right, and yields one [Node]
// record per tree node in post-order (children before their parent, the
// native Newick order). It keeps only a stack of open parenthesis
// offsets, so memory use is proportional to tree depth rather than tree
// size. No tree is built; callers that need one use package parse.
//
// [Format] pretty prints Newick text with one node per line.
package newick
