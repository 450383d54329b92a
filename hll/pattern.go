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
	"github.com/pfutil/pfutil-go/internal"
)

// patLen hashes element and returns the register it maps to together with the
// length of the 000..1 pattern that follows the register index bits.
func patLen(variant Variant, element []byte) (slotNo int, count int) {
	return patLenFromHash(variant, internal.MurmurHash64A(element, internal.RedisHllSeed))
}

// patLenFromHash splits hash into register index and pattern length.
//
// Both generations take the register index from the low hllP bits. Redis 4
// forces bit 63 and scans upward from bit hllP, so the longest pattern is hllQ.
// Redis 5 shifts the index bits out and forces bit hllQ as the stop bit, so the
// longest pattern is hllQ+1.
func patLenFromHash(variant Variant, hash uint64) (slotNo int, count int) {
	slotNo = int(hash & hllPMask)
	if variant == VariantV4 {
		hash |= uint64(1) << 63
		return slotNo, int(internal.CountTrailingZerosFrom(hash, hllP)) + 1
	}
	hash >>= hllP
	hash |= uint64(1) << hllQ
	return slotNo, int(internal.CountTrailingZerosInU64(hash)) + 1
}
