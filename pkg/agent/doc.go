// Package agent drives one hands-free run: it spawns a tool host over
// MCP stdio, advertises the host's operations to the planner and asks
// the model for a plan exactly once. The returned calls then execute
// sequentially, each finishing before the next starts.
//
// There is no replanning loop. A run is a single round trip to the
// model followed by ordered execution, recorded in a timestamped
// transcript. The difference between agent A and agent B is the
// instruction, the model and the tool host it is pointed at.
package agent
