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

// Package hll is a HyperLogLog cardinality sketch whose serialized form is the
// native HLL string of Redis, byte for byte.
//
// A Sketch can be restored from the value of a key written by PFADD or PFMERGE
// (read with GET) and its ToSlice output can be written back with SET, after
// which PFCOUNT on the server and GetEstimate on the client agree. Both encoding
// generations are supported: VariantV4 follows Redis 4.x and VariantV5 follows
// Redis 5.x and later. The register layout is the same, only the pattern-length
// derivation and the estimator differ.
//
// Both the sparse and the dense register encodings are read. Local updates always
// promote a sparse sketch to dense first, so after UpdateSlice the dump differs
// from the sparse image Redis would keep for the same operations, while the
// registers and the estimate are identical.
//
// A Sketch is not safe for concurrent use. GetEstimate writes the cardinality
// cache and so counts as a mutation. Merge only reads its operands.
package hll

import (
	"fmt"
	"unsafe"
)

// Sketch is a Redis compatible HyperLogLog. The zero value is not usable; create
// sketches with NewSketch or NewSketchFromSlice.
type Sketch struct {
	variant Variant
	buf     []byte
	// trusted is set once the sparse runs of buf are known to cover every register.
	trusted bool
}

// NewSketch returns an empty sketch in the sparse encoding, with a valid cached
// cardinality of zero, exactly as Redis creates it.
func NewSketch(variant Variant) (*Sketch, error) {
	if err := checkVariant(variant); err != nil {
		return nil, err
	}
	return &Sketch{
		variant: variant,
		buf:     newSparseBuffer(),
		trusted: true,
	}, nil
}

// NewSketchWithDefault returns an empty sketch of VariantDefault.
func NewSketchWithDefault() *Sketch {
	sk, _ := NewSketch(VariantDefault)
	return sk
}

// NewSketchFromSlice restores a sketch from an HLL image, such as the value of a
// Redis HLL key.
//
//   - variant, the Redis generation that produced the image.
//   - bytes, the image. It is copied and not retained.
//
// The header is validated and a dense image must have the exact dense size. The
// runs of a sparse image are not checked here; an inconsistent image surfaces as
// ErrInconsistentSparseStream from the first operation that walks it.
func NewSketchFromSlice(variant Variant, bytes []byte) (*Sketch, error) {
	if err := checkVariant(variant); err != nil {
		return nil, err
	}
	if err := checkHeader(bytes); err != nil {
		return nil, err
	}
	if getEncoding(bytes) == EncodingDense && len(bytes) != hllDenseSize {
		return nil, fmt.Errorf("%w: dense image is %d bytes, expected %d",
			ErrInvalidRepresentation, len(bytes), hllDenseSize)
	}
	buf := make([]byte, len(bytes))
	copy(buf, bytes)
	return &Sketch{
		variant: variant,
		buf:     buf,
		trusted: getEncoding(buf) == EncodingDense,
	}, nil
}

// Copy returns a deep copy of this sketch.
func (s *Sketch) Copy() *Sketch {
	buf := make([]byte, len(s.buf))
	copy(buf, s.buf)
	return &Sketch{
		variant: s.variant,
		buf:     buf,
		trusted: s.trusted,
	}
}

// UpdateSlice presents datum as a potential unique item, like PFADD.
// It reports whether a register changed, in which case the cardinality cache is
// invalidated. An error is only possible for a sketch restored from an
// inconsistent sparse image.
func (s *Sketch) UpdateSlice(datum []byte) (bool, error) {
	slotNo, count := patLen(s.variant, datum)
	if err := s.promote(); err != nil {
		return false, err
	}
	if !denseSetIfGreater(s.buf, slotNo, count) {
		return false, nil
	}
	invalidateCache(s.buf)
	return true, nil
}

// UpdateString presents the bytes of datum as a potential unique item.
func (s *Sketch) UpdateString(datum string) (bool, error) {
	// get a slice to the string data (avoiding a copy to heap)
	return s.UpdateSlice(unsafe.Slice(unsafe.StringData(datum), len(datum)))
}

// GetEstimate returns the cardinality estimate, like PFCOUNT on a single key.
// A valid cached value is returned as is; otherwise the estimator of the sketch
// variant runs and its result is cached in the header.
func (s *Sketch) GetEstimate() (uint64, error) {
	header, _ := scanHeader(s.buf)
	if header.CacheValid {
		return header.Cardinality, nil
	}
	count, err := estimate(s.variant, s.buf)
	if err != nil {
		return 0, fmt.Errorf("count unavailable: %w", err)
	}
	s.trusted = true
	writeCache(s.buf, count)
	return count, nil
}

// IsEmpty returns true if every register is zero.
func (s *Sketch) IsEmpty() (bool, error) {
	empty := true
	err := traverseRegisters(s.buf, func(start int, runLen int, value int) {
		if value != 0 {
			empty = false
		}
	})
	if err != nil {
		return false, err
	}
	return empty, nil
}

// Promote converts a sparse sketch to the dense encoding. It is a no-op for a
// dense sketch.
func (s *Sketch) Promote() error {
	return s.promote()
}

func (s *Sketch) promote() error {
	if getEncoding(s.buf) == EncodingDense {
		return nil
	}
	dense, err := promoteToDense(s.buf)
	if err != nil {
		if s.trusted {
			panic(fmt.Sprintf("hll: promotion of a consistent sparse sketch failed: %v", err))
		}
		return fmt.Errorf("cannot promote to dense: %w", err)
	}
	s.buf = dense
	s.trusted = true
	return nil
}

// Reset resets the sketch to empty, keeping its variant.
func (s *Sketch) Reset() {
	s.buf = newSparseBuffer()
	s.trusted = true
}

// ToSlice returns a copy of the HLL image, suitable for SET on a Redis key.
func (s *Sketch) ToSlice() []byte {
	out := make([]byte, len(s.buf))
	copy(out, s.buf)
	return out
}

// GetHeader returns the parsed header of the image.
func (s *Sketch) GetHeader() Header {
	header, _ := scanHeader(s.buf)
	return header
}

// GetEncoding returns the current register encoding.
func (s *Sketch) GetEncoding() Encoding {
	return getEncoding(s.buf)
}

// GetVariant returns the Redis generation the sketch follows.
func (s *Sketch) GetVariant() Variant {
	return s.variant
}

// GetSerializationBytes returns the size of the image ToSlice would return.
func (s *Sketch) GetSerializationBytes() int {
	return len(s.buf)
}

func (s *Sketch) String() string {
	header := s.GetHeader()
	cache := "stale"
	if header.CacheValid {
		cache = fmt.Sprintf("%d", header.Cardinality)
	}
	return fmt.Sprintf("hll.Sketch{variant: %s, encoding: %s, bytes: %d, cached: %s}",
		s.variant, header.Encoding, len(s.buf), cache)
}
