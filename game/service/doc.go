// Package service orchestrates one agent turn end to end and translates the
// selected strategy into per-unit intents.
//
// AgentService is the boundary the transport layer talks to: it receives the
// decoded snapshot once per turn, runs the blackboard update and strategy
// evaluation, and returns a TurnResult carrying the decision plus one intent
// per living hero. The transport layer serializes those intents into
// whatever wire format the contest server expects.
//
// Intent building is deliberately thin — attack when the target is already
// in range, otherwise step along the A* path toward it — because the
// interesting work happened during strategy evaluation. After acting, the
// transport layer reports back through ReportOutcome so the decision history
// reflects how the turn went.
package service
