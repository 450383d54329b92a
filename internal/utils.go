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

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

const (
	// RedisHllSeed is the seed Redis passes to MurmurHash64A for every HLL element.
	RedisHllSeed = uint32(0xadc83b19)
)

const (
	PfutilTestGenerateGo = "PFUTIL_TEST_GENERATE_GO"
)

const (
	RedisPath = "../serialization_test_data/redis_generated_files"
	GoPath    = "../serialization_test_data/go_generated_files"
)

// GetShortLE gets a short value from a byte array in little endian format.
func GetShortLE(array []byte, offset int) int {
	return int(array[offset]&0xFF) | (int(array[offset+1]&0xFF) << 8)
}

// PutShortLE puts a short value into a byte array in little endian format.
func PutShortLE(array []byte, offset int, value int) {
	array[offset] = byte(value)
	array[offset+1] = byte(value >> 8)
}

// GetShortLESafe is GetShortLE for a short that may straddle the end of the array.
// A high byte past the end reads as zero.
func GetShortLESafe(array []byte, offset int) int {
	if offset+1 < len(array) {
		return GetShortLE(array, offset)
	}
	return int(array[offset] & 0xFF)
}

// PutShortLESafe is PutShortLE for a short that may straddle the end of the array.
// A high byte past the end is dropped.
func PutShortLESafe(array []byte, offset int, value int) {
	if offset+1 < len(array) {
		PutShortLE(array, offset, value)
		return
	}
	array[offset] = byte(value)
}

// InvPow2 returns 2^(-e).
func InvPow2(e int) (float64, error) {
	if (e | 1024 - e - 1) < 0 {
		return 0, fmt.Errorf("e cannot be negative or greater than 1023: %d", e)
	}
	return math.Float64frombits((1023 - uint64(e)) << 52), nil
}

func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}
