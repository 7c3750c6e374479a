// Package lzx implements a stateful decompressor for the LZX format with a
// 64 KiB sliding window, as used to compress XNB document bodies.
//
// The compressed stream is delivered in chunks, each a self-contained
// 16-bit-word bit stream expanding to one output frame. Window contents,
// repeated-match offsets, Huffman code lengths and the current block persist
// from one chunk to the next, so chunks must be fed in order and a corrupt
// chunk leaves the decoder permanently failed.
package lzx
