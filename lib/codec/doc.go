// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding used for records persisted by
// rocksniffer, currently the album-art cache entries.
//
// Encoding follows Core Deterministic Encoding (RFC 8949 §4.2), so the
// same logical record always produces identical bytes. Decoding ignores
// unknown fields, which lets newer binaries add fields without
// invalidating caches written by older ones.
//
// Consumers import this package rather than fxamacker/cbor directly so
// the encoder options are configured in one place.
package codec
