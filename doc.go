/*
Package quorum defines the common types shared by all packages of the
multi-party authorization engine.

A wallet is controlled by a fixed set of principals. Any principal may
submit a proposal naming an opaque action (a destination address, an
amount and a payload). Other principals confirm or revoke their consent
through the engine, and once the number of standing confirmations
reaches the configured quorum the action is executed exactly once.

This package holds the identity values (Address, Condition), the
key-value store interfaces used for state and transactional rollback,
and the context helpers. The engine itself lives in x/multisig, wallet
balances in x/cash, the store implementation in store.
*/
package quorum
