// Package strategy turns a turn's blackboard contents into one selected
// strategy and a concrete target assignment.
//
// Each turn the Evaluator scores four competing candidates — focus fire,
// attack/gather, objective capture, and city siege — skips the ones that do
// not qualify, and keeps the highest-priority survivor. If nothing
// qualifies, or my side has no living units, the evaluation degrades to a
// low-confidence defensive decision instead of failing; the unit-consumer
// layer always receives a well-formed decision.
//
// The evaluation is deterministic for a given snapshot, side identity and
// grid: there is no randomness, candidate scoring iterates in snapshot
// order, and ties are broken by the order candidates are generated.
//
// All scoring constants come from config.BotConfig; the evaluator contains
// the shapes of the formulas, not the numbers.
package strategy
