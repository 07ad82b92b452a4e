//go:build linux

/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package listen

import (
	"net"
	"time"

	"go.osspkg.com/errors"
	"golang.org/x/sys/unix"

	"go.osspkg.com/tcpecho/fd"
)

// setKeepAliveProbes sets the retry interval and the probe count of a keep-alive socket.
func setKeepAliveProbes(c *net.TCPConn, interval time.Duration, count int) error {
	if interval <= 0 && count <= 0 {
		return nil
	}
	raw, err := c.SyscallConn()
	if err != nil {
		return err
	}
	_, err = fd.Control(raw, func(v int) error {
		var e1, e2 error
		if secs := int(interval / time.Second); secs > 0 {
			e1 = unix.SetsockoptInt(v, unix.IPPROTO_TCP, unix.TCP_KEEPINTVL, secs)
		}
		if count > 0 {
			e2 = unix.SetsockoptInt(v, unix.IPPROTO_TCP, unix.TCP_KEEPCNT, count)
		}
		return errors.Wrap(e1, e2)
	})
	return err
}
