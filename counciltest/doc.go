/*
Package counciltest provides helpers and test doubles used across the
repository tests: authentication mocks, key generation and a revenue
stream that pays a fixed amount on every pull.
*/
package counciltest
