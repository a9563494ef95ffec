/*
Package seat implements the registry of non-fungible council seats.

Each seat is identified by a number assigned on creation, starting at 1 and
never reused. A seat has exactly one owner and may have a single approved
operator that is allowed to transfer it on the owner behalf. The approval is
cleared whenever the seat changes hands.

Seats are created and destroyed only by the council ledger. Holders can
transfer their seats using the messages of this package, while setting the
operator of a seat requires the governance role.
*/
package seat
