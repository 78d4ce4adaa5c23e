// Package engine is a local match simulator. It applies the contest's
// movement, combat, and objective rules to an in-memory battlefield so
// strategies can be exercised offline: self-play sweeps, regression tests,
// and quick what-if experiments, all without a contest server.
//
// The simulator is deterministic. Given the same setup and the same orders
// it produces the same match, which is what makes sweep results comparable
// across configuration variants.
package engine
