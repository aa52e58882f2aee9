/*
Package quorumtest provides mocked implementations and helpers for
testing code built around the quorum engine.

This package must not import x/multisig, so that package-level tests
of the engine can use it without an import cycle.
*/
package quorumtest
