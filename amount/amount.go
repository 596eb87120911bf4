// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package amount

import (
	"math"
	"strconv"
	"strings"

	"github.com/bitmark-inc/ledgerd/fault"
)

// Amount - fixed point value with eight fractional digits
type Amount int64

// Unit - one whole unit
const (
	Unit           Amount = 100000000
	FractionDigits        = 8
)

// Zero - the empty amount
const Zero Amount = 0

// Parse - convert a decimal string with up to eight fractional digits
func Parse(s string) (Amount, error) {
	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}
	if "" == s {
		return 0, fault.ErrAmountFormat
	}

	whole := s
	fraction := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole = s[:i]
		fraction = s[i+1:]
		if "" == whole || len(fraction) > FractionDigits {
			return 0, fault.ErrAmountFormat
		}
	}

	w, err := strconv.ParseUint(whole, 10, 63)
	if nil != err {
		return 0, fault.ErrAmountFormat
	}
	if w > uint64(math.MaxInt64/int64(Unit)) {
		return 0, fault.ErrAmountOverflow
	}

	f := uint64(0)
	if "" != fraction {
		fraction += strings.Repeat("0", FractionDigits-len(fraction))
		f, err = strconv.ParseUint(fraction, 10, 63)
		if nil != err {
			return 0, fault.ErrAmountFormat
		}
	}

	value, ok := Amount(w*uint64(Unit)).add(Amount(f))
	if !ok {
		return 0, fault.ErrAmountOverflow
	}
	if negative {
		value = -value
	}
	return value, nil
}

// String - decimal form, always with eight fractional digits
func (a Amount) String() string {
	sign := ""
	v := uint64(a)
	if a < 0 {
		sign = "-"
		v = uint64(-a)
	}
	f := strconv.FormatUint(v%uint64(Unit), 10)
	return sign + strconv.FormatUint(v/uint64(Unit), 10) + "." + strings.Repeat("0", FractionDigits-len(f)) + f
}

// MarshalText - text form for JSON
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert from text
func (a *Amount) UnmarshalText(s []byte) error {
	v, err := Parse(string(s))
	if nil != err {
		return err
	}
	*a = v
	return nil
}

// IsWhole - true if there is no fractional part
func (a Amount) IsWhole() bool {
	return 0 == a%Unit
}

// Add - sum with overflow detection
func (a Amount) Add(b Amount) (Amount, error) {
	if r, ok := a.add(b); ok {
		return r, nil
	}
	return 0, fault.ErrAmountOverflow
}

// Sub - difference with overflow detection
func (a Amount) Sub(b Amount) (Amount, error) {
	if b == math.MinInt64 {
		return 0, fault.ErrAmountOverflow
	}
	return a.Add(-b)
}

func (a Amount) add(b Amount) (Amount, bool) {
	r := a + b
	if (b > 0 && r < a) || (b < 0 && r > a) {
		return 0, false
	}
	return r, true
}
