//go:build linux

/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package listen

import (
	"fmt"
	"net"

	"golang.org/x/sys/unix"

	"go.osspkg.com/tcpecho/fd"
)

// setBacklog re-issues listen(2) on the bound socket, linux updates the queue size in place.
func setBacklog(l net.Listener, backlog int) error {
	sc, ok := l.(fd.TSyscallConn)
	if !ok {
		return fmt.Errorf("listener %T has no file descriptor", l)
	}
	raw, err := sc.SyscallConn()
	if err != nil {
		return err
	}
	_, err = fd.Control(raw, func(v int) error {
		return unix.Listen(v, backlog)
	})
	return err
}
