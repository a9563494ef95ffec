/*
Package app contains the building blocks of an application: a message
router, an executor that applies messages atomically against a store,
genesis file loading and event sinks.
*/
package app
