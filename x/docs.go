/*
Package x contains the extensions of the ledger.

This package holds the authentication abstraction shared by all of them.
Each sub-package registers its message handlers with a Router and loads
its genesis state through an Initializer:

	asset    wallets and coin transfers
	seat     council seat registry
	role     role based authorization
	stream   vesting payment streams
	council  revenue distribution among seats

Note that protobuf types in exported code will be prefixed by
the package, so follow standard go naming conventions and avoid
stutter. Use eg. `council.ClaimMsg` in place of `council.CouncilClaimMsg`.
*/
package x
