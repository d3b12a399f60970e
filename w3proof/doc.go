// Package w3proof builds and checks inclusion proofs for WILLIAM3 digests.
//
// A sender calls [Build] on the whole message
// and hands out each chunk together with [*Tree.Proof] for that chunk.
// A receiver that knows only the root digest and the message length
// checks chunks one at a time with a [*Verifier],
// in any order, and can persist which chunks it has already confirmed.
//
// Proofs contain only sibling labels.
// The side of each sibling, the length bound at each combine,
// and the root flag are all derived from the message length
// and the configured [william3.Shape].
package w3proof
