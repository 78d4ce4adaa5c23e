// Package session tracks match records: one record per contest match, with a
// per-turn trail of the decisions the agent made and how they turned out.
//
// The Manager owns the in-memory records and coordinates with an optional
// MatchPersistence backend so finished matches survive restarts and can be
// replayed by the offline analyzer. Records are written as indented JSON, one
// file per match, which keeps them diffable and greppable during a contest.
package session
