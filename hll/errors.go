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

import "errors"

var (
	// ErrInvalidRepresentation is returned when bytes handed to NewSketchFromSlice are not an
	// HLL image: too short, wrong magic, unknown encoding or a dense image of the wrong size.
	ErrInvalidRepresentation = errors.New("invalid HLL representation")

	// ErrInconsistentSparseStream is returned when the runs of a sparse image do not add up to
	// exactly the register count. No estimate is available for such an image.
	ErrInconsistentSparseStream = errors.New("sparse HLL runs do not cover the register space")

	// ErrMalformedSparseOpcode is returned when a sparse opcode is cut short by the end of the image.
	ErrMalformedSparseOpcode = errors.New("malformed sparse HLL opcode")

	ErrVariantMismatch = errors.New("cannot merge HLL sketches of different variants")
	ErrUnknownVariant  = errors.New("unknown HLL variant")
)
