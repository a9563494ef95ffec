/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* It has a primary index (which may be composite),
and may possess secondary indexes.
* Easy queries for one and iteration.

All stored values are protobuf messages. They are serialized with the gogo
protobuf runtime, using the field tags declared on the model structures.
*/
package orm
