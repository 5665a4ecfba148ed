// Package catalog contains the data structures shared between tool
// hosts and orchestrators. These types are intentionally small and
// decoupled from transport details so that both sides of the tool
// channel can depend on them without dragging in each other's
// implementation.
//
// The main entry points are:
//
//   - Specification, InputSchema, ParameterObject: describe one
//     operation a tool host advertises, in a Model Context Protocol
//     (MCP) compatible schema shape.
//   - Call, Input: one requested invocation of an advertised
//     operation, with the concrete argument values.
//   - Server: how to launch a tool host process, including its
//     environment.
//
// Argument validation against a Specification lives here too, so that
// hosts and orchestrators reject malformed invocations identically.
package catalog
