// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// Varint64MaximumBytes - maximum possible number of bytes in Varint64
const Varint64MaximumBytes = 9

// AppendVarint64 - append the Varint64 form of a value to a buffer
//
// seven bits per byte, least significant group first, high bit set
// on every byte except the last; the ninth byte carries a full eight
// bits so no value needs more than Varint64MaximumBytes
func AppendVarint64(buffer []byte, value uint64) []byte {
	if value < 0x80 {
		return append(buffer, byte(value))
	}
	for i := 0; i < Varint64MaximumBytes && 0 != value; i += 1 {
		ext := uint64(0x80)
		if value < 0x80 {
			ext = 0x00
		}
		buffer = append(buffer, byte(value|ext))
		value >>= 7
	}
	return buffer
}

// FromVarint64 - convert an array of up to Varint64MaximumBytes to a uint64
//
// also return the number of bytes used as second value
// returns 0, 0 if varint64 buffer is truncated
func FromVarint64(buffer []byte) (uint64, int) {
	result := uint64(0)
	shift := uint(0)

	for count := 0; count < len(buffer); {
		currentByte := uint64(buffer[count])
		count += 1
		if count == Varint64MaximumBytes {
			return result | currentByte<<shift, count
		}
		result |= currentByte & 0x7f << shift
		if 0 == currentByte&0x80 {
			return result, count
		}
		shift += 7
	}
	return 0, 0
}

// ClippedVarint64 - return a positive clipped value as an int
// any value outside the range minimum..maximum is an error
func ClippedVarint64(buffer []byte, minimum int, maximum int) (int, int) {
	if minimum < 0 || maximum < 0 || minimum >= maximum {
		return 0, 0
	}

	value, count := FromVarint64(buffer)
	if 0 == count || value > uint64(maximum) {
		return 0, 0
	}
	iValue := int(value)
	if iValue < minimum {
		return 0, 0
	}
	return iValue, count
}
