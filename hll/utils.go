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
)

const (
	hllP                 = 14               // register index bits
	hllQ                 = 64 - hllP        // bits left for the pattern
	hllRegisters         = 1 << hllP        // 16384
	hllPMask             = hllRegisters - 1 // mask from hllP to extract the register index
	hllBits              = 6                // bits per dense register
	hllRegisterMax       = (1 << hllBits) - 1
	hllDenseDataSize     = (hllRegisters*hllBits + 7) / 8
	hllDenseSize         = headerSize + hllDenseDataSize
	hllHistogramSize     = 1 << hllBits
	hllSparseZeroMaxLen  = 64
	hllSparseXZeroMaxLen = 16384
	hllSparseValMaxValue = 32
	hllSparseValMaxLen   = 4
)

const (
	// hllAlphaInf is 0.5/ln(2), the asymptotic bias constant of the v5 estimator.
	hllAlphaInf = 0.721347520444481703680
)

// Encoding is the physical register layout named by byte 4 of the header.
type Encoding byte

const (
	EncodingDense  = Encoding(0)
	EncodingSparse = Encoding(1)
)

func (e Encoding) String() string {
	switch e {
	case EncodingDense:
		return "dense"
	case EncodingSparse:
		return "sparse"
	default:
		return fmt.Sprintf("Encoding(%d)", byte(e))
	}
}

// pe holds 2^(-reg) for every value a 6-bit register can take.
var pe = newInvPow2Table()

func newInvPow2Table() [hllHistogramSize]float64 {
	var table [hllHistogramSize]float64
	for i := range table {
		table[i] = invPow2(i)
	}
	return table
}
