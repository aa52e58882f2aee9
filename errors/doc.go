/*
Package errors implements the error handling used across all quorum
packages.

The idea is to reuse as many errors from this package as possible and
define custom package errors when absolutely necessary. It is best to
define a new error here if you feel it's going to be somewhat
package-agnostic. x/multisig registers its own roots for the states a
proposal can be rejected in.

If you want to register a custom error - use Register(code, description).
For reusing errors - use ErrXyz.New and ErrXyz.Newf.
The code allows to distinguish kinds of errors on the client side and
act accordingly.

There is also support for stacktraces. Please ensure you create the
error using ErrXyz.New("...") or errors.Wrap(err, "...") at the point
of creation to ensure we attach a stacktrace. If you wrap multiple
times, we only record the first wrap with the stacktrace.
*/
package errors
