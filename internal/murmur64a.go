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

package internal

import "encoding/binary"

const (
	M64A = 0xc6a4a7935bd1e995
	R64A = 47
)

// MurmurHash64A is the 64-bit MurmurHash2 variant used by Redis to hash HLL elements.
// The seed is zero-extended to 64 bits, as the C implementation takes an unsigned int.
func MurmurHash64A(key []byte, seed uint32) uint64 {
	h := uint64(seed) ^ (uint64(len(key)) * M64A)

	nblocks := len(key) >> 3
	for i := 0; i < nblocks; i++ {
		k := binary.LittleEndian.Uint64(key[i<<3:])
		h ^= mix64A(k)
		h *= M64A
	}

	tail := key[nblocks<<3:]
	if len(tail) > 0 {
		h ^= tailMix64A(tail)
		h *= M64A
	}

	return finalMix64A(h)
}

func mix64A(k uint64) uint64 {
	k *= M64A
	k ^= k >> R64A
	k *= M64A
	return k
}

// tailMix64A folds the last 0-7 bytes in little endian order.
func tailMix64A(tail []byte) uint64 {
	var k uint64
	for i := len(tail) - 1; i >= 0; i-- {
		k ^= uint64(tail[i]) << (uint(i) << 3)
	}
	return k
}

func finalMix64A(h uint64) uint64 {
	h ^= h >> R64A
	h *= M64A
	h ^= h >> R64A
	return h
}
