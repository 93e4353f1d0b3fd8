// Package dating assigns ages to the nodes of an assembled tree.
//
// Ages come from a node-ages table ([Apply]) or from the edge lengths of
// a time-scaled tree ([FromLengths]). [Impute] then fills in every
// undated node by interpolating between its dated parent and the oldest
// dated node beneath it, and [BranchLengths] turns the ages back into
// edge lengths.
//
// Leaves that are unexpanded inclusion tokens carry no age.
package dating
