/*
Package gconf implements a configuration store intended to be used as a
package wide, in-database configuration.

Each package stores a single protobuf configuration model under the
"_c:<package name>" key. It can be loaded from the "conf" section of a
genesis file and updated by the package own messages.
*/
package gconf
