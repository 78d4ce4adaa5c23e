// Package mcp exposes the agent's debug REST API as MCP tools so an
// MCP-capable assistant can inspect a running agent: current strategy,
// decision history, recorded matches, and map configurations. It is a thin
// client over the REST surface; it holds no agent state of its own.
package mcp
