/*
Package role keeps track of privileged addresses.

A grant binds a role name (for example "governance") to an address. An
Authorizer answers whether any of the conditions authenticated for the
current message holds a given role. Grants are managed with GrantMsg and
RevokeMsg, both of which require the admin role.
*/
package role
