// Package sparql compiles rdf-config query definitions into SPARQL text.
//
// A query is assembled from independent line builders, each implementing
// LineBuilder:
//
//	CommentBuilder  # Endpoint / # Description / # Parameter header
//	PrefixBuilder   PREFIX lines for the prefixes the pattern uses
//	SelectBuilder   SELECT ?v1 ?v2 ...
//	WhereBuilder    WHERE { VALUES, required, OPTIONAL, FILTER }
//
// Assembler concatenates their lines in that order and appends the
// OFFSET/LIMIT trailer. Compiler wires the pipeline to a config
// directory; Generate and GenerateAll are the one-call entry points.
//
// Compilation is a pure function of the Model and the query definition:
// the same input always yields byte-identical text, blank-node variable
// numbering included.
package sparql
