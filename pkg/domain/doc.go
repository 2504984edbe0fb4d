// Package domain contains the core types of the wizard engine: languages,
// route tree nodes, flow definitions, and persisted snapshots.
//
// The package is dependency-light and side-effect free; everything here is
// plain data plus the pure transition function FlowDefinition.Apply.
package domain
