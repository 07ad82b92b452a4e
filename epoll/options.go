/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package epoll

import (
	"context"
	"fmt"
	"net"
)

type (
	// TConnect is a connection registered in the reactor.
	TConnect interface {
		NetConn() net.Conn
		// Interrupt wakes up a read that is in progress.
		Interrupt()
		Close() error
		Abort() error
	}

	Option struct {
		// Handler services one readable event of c on the named worker.
		// A non-nil error closes the connection.
		Handler        func(ctx context.Context, worker string, c TConnect) error
		Workers        uint
		CountEvents    uint
		WaitIntervalMS uint
	}
)

func (c Option) Validate() error {
	if c.Handler == nil {
		return fmt.Errorf("epoll handler is empty")
	}
	if c.Workers == 0 {
		return fmt.Errorf("epoll workers is empty")
	}
	if c.CountEvents == 0 {
		return fmt.Errorf("epoll count events is empty")
	}
	if c.WaitIntervalMS == 0 {
		return fmt.Errorf("epoll wait interval is empty")
	}
	return nil
}
