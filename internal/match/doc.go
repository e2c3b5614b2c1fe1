// package match implements the cross-platform fuzzy matching engine.
//
// Given a source track or album from one platform, the engine derives search
// queries, runs them against an injected platform search function, scores
// every candidate against the source with normalized Levenshtein similarity
// plus duration and containment bonuses, and returns a bounded result set.
//
// Candidates scoring at or above the confidence threshold form the confident
// tier; everything else is exploratory and surfaced only when no confident
// candidate exists. An empty result is a normal outcome, never an error.
package match
