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
	"fmt"

	"github.com/pfutil/pfutil-go/internal"
)

// Sparse opcodes, as written by Redis:
//
//	ZERO:  00xxxxxx           run of xxxxxx+1 (1-64) zero registers
//	XZERO: 01xxxxxx yyyyyyyy  run of xxxxxxyyyyyyyy+1 (1-16384) zero registers
//	VAL:   1vvvvvxx           run of xx+1 (1-4) registers set to vvvvv+1 (1-32)
//
// The runs of a well formed image cover every register exactly once.
const (
	sparseOpcodeMask  = 0xc0
	sparseXZeroBit    = 0x40
	sparseValBit      = 0x80
	sparseZeroLenMask = 0x3f
	sparseValLenMask  = 0x03
	sparseValValMask  = 0x1f
)

// runFunc receives one run of registers [start, start+runLen) all holding value.
type runFunc func(start int, runLen int, value int)

func sparseIsZero(b byte) bool {
	return b&sparseOpcodeMask == 0
}

func sparseIsXZero(b byte) bool {
	return b&sparseOpcodeMask == sparseXZeroBit
}

func sparseZeroLen(b byte) int {
	return int(b&sparseZeroLenMask) + 1
}

func sparseXZeroLen(b byte, next byte) int {
	return (int(b&sparseZeroLenMask)<<8 | int(next)) + 1
}

func sparseValValue(b byte) int {
	return int((b>>2)&sparseValValMask) + 1
}

func sparseValLen(b byte) int {
	return int(b&sparseValLenMask) + 1
}

// sparseZero encodes a ZERO opcode, runLen in [1, 64].
func sparseZero(runLen int) byte {
	return byte(runLen - 1)
}

// sparseXZero encodes an XZERO opcode, runLen in [1, 16384].
func sparseXZero(runLen int) (byte, byte) {
	l := runLen - 1
	return byte(l>>8) | sparseXZeroBit, byte(l)
}

// sparseVal encodes a VAL opcode, value in [1, 32] and runLen in [1, 4].
func sparseVal(value int, runLen int) byte {
	return byte(((value-1)<<2)|(runLen-1)) | sparseValBit
}

// newSparseBuffer returns a fresh sparse image: a header with a valid cached
// cardinality of zero, followed by XZERO runs covering all registers.
func newSparseBuffer() []byte {
	numXZero := (hllRegisters + hllSparseXZeroMaxLen - 1) / hllSparseXZeroMaxLen
	buf := make([]byte, headerSize, headerSize+numXZero*2)
	copy(buf, magic)
	buf[encodingByte] = byte(EncodingSparse)
	for aux := hllRegisters; aux > 0; {
		runLen := internal.Min(aux, hllSparseXZeroMaxLen)
		b0, b1 := sparseXZero(runLen)
		buf = append(buf, b0, b1)
		aux -= runLen
	}
	return buf
}

// sparseTraverse walks the opcode stream of the sparse image buf and calls
// onRun once per opcode. ZERO and XZERO runs are reported with value 0.
//
// onRun is never called with a run reaching past the last register. The
// traversal fails with ErrMalformedSparseOpcode if an XZERO opcode is cut by the
// end of the image and with ErrInconsistentSparseStream if the runs do not add
// up to exactly the register count; runs already reported must then be discarded.
func sparseTraverse(buf []byte, onRun runFunc) error {
	idx := 0
	for p := headerSize; p < len(buf); {
		b := buf[p]
		runLen, value := 0, 0
		if sparseIsZero(b) {
			runLen = sparseZeroLen(b)
			p++
		} else if sparseIsXZero(b) {
			if p+1 >= len(buf) {
				return fmt.Errorf("%w: XZERO at offset %d is truncated", ErrMalformedSparseOpcode, p)
			}
			runLen = sparseXZeroLen(b, buf[p+1])
			p += 2
		} else {
			runLen = sparseValLen(b)
			value = sparseValValue(b)
			p++
		}
		if idx+runLen > hllRegisters {
			return fmt.Errorf("%w: run at register %d overflows %d registers",
				ErrInconsistentSparseStream, idx, hllRegisters)
		}
		onRun(idx, runLen, value)
		idx += runLen
	}
	if idx != hllRegisters {
		return fmt.Errorf("%w: runs cover %d of %d registers", ErrInconsistentSparseStream, idx, hllRegisters)
	}
	return nil
}

// promoteToDense converts the sparse image buf into a newly allocated dense image.
// The header is copied verbatim except for the encoding byte. buf is not modified.
func promoteToDense(buf []byte) ([]byte, error) {
	dense := newDenseBuffer()
	copy(dense[:headerSize], buf[:headerSize])
	dense[encodingByte] = byte(EncodingDense)

	err := sparseTraverse(buf, func(start int, runLen int, value int) {
		if value == 0 {
			return
		}
		for slotNo := start; slotNo < start+runLen; slotNo++ {
			denseSetRegister(dense, slotNo, value)
		}
	})
	if err != nil {
		return nil, err
	}
	return dense, nil
}

// traverseRegisters walks buf in whichever encoding its header names.
func traverseRegisters(buf []byte, onRun runFunc) error {
	if getEncoding(buf) == EncodingDense {
		denseTraverse(buf, onRun)
		return nil
	}
	return sparseTraverse(buf, onRun)
}
