//go:build linux

/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package listen_test

import (
	"net"
	"testing"

	"go.osspkg.com/casecheck"
	"golang.org/x/sys/unix"

	"go.osspkg.com/tcpecho/fd"
)

func assertKeepAlive(t *testing.T, conn net.Conn, want bool) {
	t.Helper()

	raw, err := conn.(*net.TCPConn).SyscallConn()
	casecheck.NoError(t, err)

	var on, cnt int
	_, err = fd.Control(raw, func(v int) (e error) {
		if on, e = unix.GetsockoptInt(v, unix.SOL_SOCKET, unix.SO_KEEPALIVE); e != nil {
			return
		}
		cnt, e = unix.GetsockoptInt(v, unix.IPPROTO_TCP, unix.TCP_KEEPCNT)
		return
	})
	casecheck.NoError(t, err)
	casecheck.Equal(t, want, on != 0)
	casecheck.Equal(t, 6, cnt)
}
