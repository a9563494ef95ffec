/*
Package stream implements linearly vesting revenue streams.

A stream is funded with a deposit that is moved into an escrow account on
creation. Starting at a given block height it releases Rate units per block
until the whole deposit is vested. The recipient, usually the council
ledger account, pulls whatever has vested so far.

Streams are identified by the address that funded them (the target) and a
sequence number.
*/
package stream
