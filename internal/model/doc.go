// Package model defines the data structures shared by the report pipeline.
//
// This package contains the following main types:
//   - Item: A single row of a report (identifier, name, value)
//   - User: The person a report is generated for, carrying the Role
//     that decides what they may see
//
// Items are treated as immutable values. Processing steps that need to
// annotate an item (for example the priority flag added for administrators)
// produce a copy with WithPriority instead of modifying the original.
//
// The models are serializable to JSON and YAML so they can be read from
// input files and stored alongside report history.
package model
