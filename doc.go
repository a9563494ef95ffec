/*
Package ledger defines all common interfaces used to put together the
council revenue distribution application, as well as implementations of some
of the simpler components (when interfaces would be too much overhead).

Extensions living under the x/ directory implement a single concern each
(assets, seats, roles, revenue streams and the council distribution ledger
itself). They talk to each other through small interfaces and share state
through a KVStore that is passed into every handler.

We pass context through context.Context between the executor and the
handlers. Ledger defines a few common keys to store info, such as the block
height and the logger:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)
*/
package ledger
