/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package internal

import "time"

type Comparable interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

func NotZeroDuration(args ...time.Duration) time.Duration {
	for _, arg := range args {
		if arg > 0 {
			return arg
		}
	}
	return 0
}

func NotZero[T Comparable](args ...T) T {
	for _, arg := range args {
		if arg > 0 {
			return arg
		}
	}
	return 0
}

// Backoff doubles the pause between retries inside [min, max].
type Backoff struct {
	d   time.Duration
	Min time.Duration
	Max time.Duration
}

func (b *Backoff) Next() time.Duration {
	lo := NotZeroDuration(b.Min, 5*time.Millisecond)
	hi := NotZeroDuration(b.Max, time.Second)
	switch {
	case b.d == 0:
		b.d = lo
	case b.d >= hi:
		b.d = hi
	default:
		b.d <<= 1
		if b.d > hi {
			b.d = hi
		}
	}
	return b.d
}

func (b *Backoff) Reset() {
	b.d = 0
}
