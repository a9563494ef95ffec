/*
Package council implements the council revenue distribution ledger.

Council membership is represented by seats held in a seat registry. Revenue
in a single currency arrives into the ledger account, either pulled from a
revenue stream or transferred directly. Before every state change the
ledger runs a checkpoint: it pulls what the stream made withdrawable,
measures how much arrived since the previous checkpoint and splits it
evenly across all active seats. The indivisible dust is carried over to the
next checkpoint so that no unit is ever lost.

Seat owners claim their balance at any time. Governance issues, retires and
reassigns seats; a retired or reassigned seat's balance is paid out to a
recipient chosen by governance.

The ledger only depends on the seat registry, the asset controller, the
revenue stream and the role authorizer interfaces declared in this package.
*/
package council
