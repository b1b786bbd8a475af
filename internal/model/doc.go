// Package model builds the typed graph behind an rdf-config model.yaml.
//
// A model document is an ordered list of subject definitions. Each
// definition maps a subject key to an ordered list of predicate → object
// mappings:
//
//	# model.yaml
//	- Book ex:book1:
//	  - a: ex:Book
//	  - dc:title:
//	    - title: "RDF Primer"
//	  - ex:publisher?:
//	    - []:
//	      - a: ex:Publisher
//	      - ex:name:
//	        - publisher_name: "W3C"
//
// Build turns that document into two views of the same data:
//
//   - the Subject graph: Subjects own Predicates, Predicates own Objects,
//     and BlankNode objects own nested anonymous Subjects;
//   - the Triple list: one Triple per terminal Object, carrying the named
//     ancestor Subject and the full predicate path from it, so a value three
//     blank nodes deep is still reachable from its named subject.
//
// OBJECTS:
//
// Object is a sealed interface with four variants:
//
//	URI        <http://...> or a prefixed name with a declared prefix
//	Literal    any other value; DataType() is inferred
//	BlankNode  anonymous nested Subject, written with a [] key
//	Unknown    a variable name without an example value
//
// Backends switch over the concrete types; no other package can add one.
//
// ORDER:
//
// Triples are listed first-seen, depth-first, in declaration order.
// Consumers depend on this order for formatting decisions (for example the
// senbero tree decides on its last-branch glyph by looking at the next
// Triple).
//
// IMMUTABILITY:
//
// A Model is built eagerly in one pass and never mutated afterwards, so it
// can be shared freely between compilers and goroutines.
package model
