// Package mapping provides the table that maps symbolic inclusion names
// (for example AMORPHEA in AMORPHEA@) to hand-curated fragment files.
//
// A [Table] is immutable once built. It is normally loaded with [Load]
// from a YAML or JSON document of the form
//
//	AMORPHEA: {file: Amorphea.PHY, edge_length: 50, taxon: null}
//	AMBULACRARIA: {file: Ambulacraria.PHY, edge_length: 20, taxon: Ambulacraria}
package mapping
