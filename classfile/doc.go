// Package classfile decodes compiled JVM class files (JVMS chapter 4)
// into an in-memory tree suitable for inspection.
//
// Decoding is a strict front-to-back single pass over the byte image:
// magic and version, constant pool, access flags and class linkage,
// interfaces, fields, methods, and finally the class-level attributes.
// The constant pool is fully built before any attribute is parsed, since
// attribute names resolve through it. Instruction streams inside Code
// attributes are captured verbatim and never interpreted, and the decoder
// performs no semantic verification of cross-references or descriptors.
//
// Every error aborts the whole decode; there is no partial ClassFile and
// no recovery, since any malformed byte invalidates every later offset.
// A decoded ClassFile is immutable and cannot be serialized back to
// bytes. Decoding keeps no shared mutable state, so independent class
// files may be decoded concurrently without locking.
package classfile
