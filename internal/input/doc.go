// Package input reads report items from JSON and YAML documents.
//
// Both formats accept either a bare list of items or an object with an
// "items" key, so exports from other tools can be used without reshaping:
//
//	[{"id": 1, "name": "A", "value": 1500}]
//	{"items": [{"id": 1, "name": "A", "value": 1500}]}
package input
