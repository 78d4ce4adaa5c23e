// Package websocket connects the agent to the contest server.
//
// The Client dials the server, registers, and then runs two pumps: the read
// loop decodes envelopes and drives the turn cycle (inquire in, action out),
// while the write pump serializes outbound frames and keeps the connection
// alive with pings. One Client serves one match; Run returns when the server
// ends the match or the connection drops.
package websocket
