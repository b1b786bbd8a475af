// Package config loads the documents of an rdf-config directory.
//
// A configuration directory holds a fixed set of YAML files:
//
//	model.yaml     subject/predicate/object schema of the dataset
//	prefix.yaml    short name → namespace IRI
//	sparql.yaml    query name → {variables, parameters, description}
//	endpoint.yaml  SPARQL endpoint URL (string or list)
//	stanza.yaml    stanza name → UI scaffolding definition
//	metadata.yaml  dataset provider, licenses and creators (optional)
//
// Each document is read lazily on first access and cached for the lifetime
// of the Config; the cached values are never mutated, so a Config can be
// shared between goroutines once loaded.
//
// Declaration order is significant throughout (prefix order drives the
// PREFIX block, parameter order drives VALUES lines), so mappings are
// decoded through yaml.Node into OrderedMap rather than Go maps.
package config
