/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package hll

import (
	"encoding/binary"
	"fmt"
)

// +------+----------+------+--------------------------------------------+
// | Byte | Field    | Size | Notes                                      |
// +------+----------+------+--------------------------------------------+
// | 0-3  | Magic    | 4    | "HYLL"                                     |
// | 4    | Encoding | 1    | 0 dense, 1 sparse                          |
// | 5-7  | Not used | 3    | preserved verbatim                         |
// | 8-15 | Card.    | 8    | little endian, MSB of byte 15 = stale flag |
// +------+----------+------+--------------------------------------------+
const (
	headerSize      = 16
	magic           = "HYLL"
	encodingByte    = 4
	cardinalityByte = 8
	cacheFlagByte   = 15
	cacheStaleMask  = 0x80
	cardinalityMask = ^(uint64(1) << 63)
)

// Header is the parsed view of the first 16 bytes of an HLL image.
type Header struct {
	Encoding Encoding
	// CacheValid reports whether Cardinality may be returned without recounting.
	CacheValid bool
	// Cardinality is the cached estimate, or 0 when the cache is stale.
	Cardinality uint64
}

// HasValidMagic checks if data starts with the HLL magic bytes without allocation.
func HasValidMagic(data []byte) bool {
	return len(data) >= len(magic) &&
		data[0] == magic[0] && data[1] == magic[1] && data[2] == magic[2] && data[3] == magic[3]
}

// checkHeader reports why buf cannot hold an HLL header, or nil if it can.
func checkHeader(buf []byte) error {
	if len(buf) < headerSize {
		return fmt.Errorf("%w: %d bytes is too short for the header", ErrInvalidRepresentation, len(buf))
	}
	if !HasValidMagic(buf) {
		return fmt.Errorf("%w: magic %q not found", ErrInvalidRepresentation, magic)
	}
	enc := Encoding(buf[encodingByte])
	if enc != EncodingDense && enc != EncodingSparse {
		return fmt.Errorf("%w: unknown encoding %d", ErrInvalidRepresentation, byte(enc))
	}
	return nil
}

// scanHeader parses the header of buf. It returns false if buf is shorter than
// the header, the magic does not match or the encoding byte is neither 0 nor 1.
func scanHeader(buf []byte) (Header, bool) {
	if checkHeader(buf) != nil {
		return Header{}, false
	}
	raw := binary.LittleEndian.Uint64(buf[cardinalityByte:])
	h := Header{
		Encoding:   Encoding(buf[encodingByte]),
		CacheValid: buf[cacheFlagByte]&cacheStaleMask == 0,
	}
	if h.CacheValid {
		h.Cardinality = raw & cardinalityMask
	}
	return h, true
}

// writeCache stores count as the cached cardinality and marks the cache valid.
func writeCache(buf []byte, count uint64) {
	binary.LittleEndian.PutUint64(buf[cardinalityByte:], count)
	buf[cacheFlagByte] &^= cacheStaleMask
}

// invalidateCache sets the stale flag, leaving the other 63 bits of the field alone.
func invalidateCache(buf []byte) {
	buf[cacheFlagByte] |= cacheStaleMask
}

func getEncoding(buf []byte) Encoding {
	return Encoding(buf[encodingByte])
}
