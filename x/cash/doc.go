/*
Package cash keeps track of the funds held by wallet accounts and
implements the standard fund-transfer invoker.

Amounts are plain non-negative integers of the smallest unit of the
surrounding ledger's currency. Every account is addressed by a
quorum.Address and starts empty.
*/
package cash
