// Package blackboard holds everything the agent knows about the current
// turn: the latest battlefield snapshot, derived views over it, the strategy
// chosen for the turn with its resolved target, a bounded history of past
// decisions, and a small scratch area for auxiliary flags.
//
// The blackboard has exactly one writer per turn — the strategy evaluator —
// and any number of readers (per-unit intent building, the debug API). A
// read-write mutex keeps concurrent debug reads safe; within a turn the
// evaluator completes all writes before consumers start reading.
//
// Target getters are kind-checked: asking for the focus-fire target while a
// city-attack strategy is active returns absent rather than stale data from
// an earlier turn.
package blackboard
