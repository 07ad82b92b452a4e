/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package fd

import (
	"fmt"
	"syscall"
)

type TSyscallConn interface {
	SyscallConn() (syscall.RawConn, error)
}

// ByConnect returns the descriptor backing c. The descriptor stays owned by c.
func ByConnect(c any) (int, error) {
	sc, ok := c.(TSyscallConn)
	if !ok {
		return -1, fmt.Errorf("connect %T has no file descriptor", c)
	}
	raw, err := sc.SyscallConn()
	if err != nil {
		return -1, err
	}
	return Control(raw, func(fd int) error { return nil })
}

// Control runs call with the descriptor behind raw and returns that descriptor.
func Control(raw syscall.RawConn, call func(fd int) error) (int, error) {
	var (
		v    = -1
		cerr error
	)
	err := raw.Control(func(fd uintptr) {
		v = int(fd)
		cerr = call(v)
	})
	if err != nil {
		return -1, err
	}
	return v, cerr
}
