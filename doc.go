// Package xnb decodes XNB documents, the compiled content container of the
// XNA framework and its descendants.
//
// # File Format Overview
//
// An XNB document consists of:
//   - A 13-byte header: the magic "XNB", a platform code, four reserved bytes,
//     a flags byte and the declared total size
//   - A body, optionally compressed with LZX (flag 0x80) or LZ4 (flag 0x40)
//
// The body holds:
//   - The type reader table: the ordered list of content type readers
//     (name and version) the document uses
//   - The number of shared resources
//   - The primary object
//   - The shared resources, each a polymorphic object
//
// Polymorphic values start with a 7-bit encoded, 1-based index into the type
// reader table; 0 means null. The table is resolved against a [Registry]
// mapping type identities to decoders, and unknown entries are only an error
// once the body actually refers to them.
//
// # Basic Usage
//
// To decode a document whose primary object is a known type:
//
//	data, _ := os.ReadFile("texture.xnb")
//	asset, err := xnb.DecodeObject(data, texture.Reader, xnb.WithRegistry(content.Registry()))
//
// Leaf decoders read with a [Cursor] and use [ReadAny], [ReadObject] and
// [ReadSharedResourceRef] for nested values. Shared resource references are
// resolved against the finished asset with [ResolveShared].
//
// # Diagnostics
//
// Non-fatal anomalies (unknown platform, unhandled flags, unused trailing
// bytes, a shared resource that failed to decode) are reported through a
// logrus logger, see [WithLogger], and never change the result of a call.
package xnb
