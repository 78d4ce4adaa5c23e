// Package protocol defines the JSON wire messages exchanged with the contest
// server and the conversion between wire payloads and the engine's snapshot
// and intent types.
//
// The wire types deliberately mirror the server's camelCase JSON rather than
// the engine's own types so that server-side schema drift stays contained
// here. Inbound, a turn payload becomes a state.Snapshot; outbound, the
// service layer's unit intents become an action payload.
package protocol
