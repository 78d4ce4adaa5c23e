// Package api exposes the agent's internals over a read-mostly debug REST
// surface: current status and strategy, decision history, recorded matches,
// and map configurations. It exists for poking at a running agent during a
// contest, not for driving it — the contest server drives the agent through
// the websocket transport.
package api
