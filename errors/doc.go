/*
Package errors implements custom error interfaces for the ledger.

Reuse as many errors from this package as possible and define custom package
errors only when absolutely necessary. If you want to register a custom
error, use Register(code, description). Extensions reserve their own code
ranges, for example x/council is using 1000~1100.

Create errors using ErrXyz.New("...") or errors.Wrap(err, "...") at the
point of creation to ensure a stacktrace is attached. If you wrap multiple
times, only the first wrap records the stacktrace.

Once you have an error, you can use fmt.Printf/Sprintf to get more context

	%s is just the error message
	%+v is the full stack trace
*/
package errors
