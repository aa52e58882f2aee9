/*
Package multisig implements the authorization core of the wallet.

A Contract holds the fixed set of principals and the confirmation
threshold (quorum). Proposals are appended by principals and carry an
opaque action: a destination address, an amount and a payload. Each
principal can confirm a pending proposal once and revoke a standing
confirmation while the proposal was not executed. The moment the
number of confirmations reaches the quorum, the action is handed to
the Invoker and the proposal becomes terminal.

The Engine serializes all mutating operations and runs each of them
inside a store cache-wrap. The wrap is written only if the whole
operation succeeds, so a failing invocation rolls back every write of
the enclosing call, including the confirmation that triggered it.

The quorum threshold itself is changed only through the proposal
mechanism: a proposal addressed to the engine's own address whose
payload decodes to an UpdateQuorumMsg. Calling Reconfigure directly
always fails.
*/
package multisig
