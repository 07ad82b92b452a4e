/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package client

import (
	"context"
	"fmt"
	"io"
	"net"

	"go.osspkg.com/algorithms/control"
	"go.osspkg.com/errors"
	"go.osspkg.com/logx"

	"go.osspkg.com/tcpecho/internal"
)

type (
	Client interface {
		Call(ctx context.Context, handler func(ctx context.Context, conn net.Conn) error) error
		Send(ctx context.Context, b []byte) ([]byte, error)
	}

	_client struct {
		conf Config
		sem  control.Semaphore
	}
)

func New(c Config) (Client, error) {
	if len(c.Network) == 0 {
		c.Network = internal.NetTCP
	}

	addr, err := c.Resolve()
	if err != nil {
		return nil, fmt.Errorf("resolve address: %w", err)
	}
	c.Address = addr.String()

	if c.MaxConns == 0 {
		c.MaxConns = 1
	}

	return &_client{
		conf: c,
		sem:  control.NewSemaphore(c.MaxConns),
	}, nil
}

func (v *_client) dial(ctx context.Context) (net.Conn, error) {
	dial := net.Dialer{Timeout: v.conf.Timeout}
	conn, err := dial.DialContext(ctx, v.conf.Network, v.conf.Address)
	if err != nil {
		logx.Warn("Client: dial", "err", err, "network", v.conf.Network, "address", v.conf.Address)
		return nil, fmt.Errorf("dial %s: %w", v.conf.Network, err)
	}
	if v.conf.Timeout > 0 {
		if err = internal.Deadline(conn, v.conf.Timeout); err != nil {
			return nil, errors.Wrap(err, conn.Close())
		}
	}
	return conn, nil
}

// Call opens a connection, passes it to handler and closes it afterwards.
// No more than MaxConns calls run at the same time.
func (v *_client) Call(ctx context.Context, handler func(ctx context.Context, conn net.Conn) error) (e error) {
	v.sem.Acquire()
	defer func() { v.sem.Release() }()

	conn, err := v.dial(ctx)
	if err != nil {
		return err
	}

	defer func() {
		e = errors.Wrap(e, internal.NormalCloseError(conn.Close()))
	}()

	e = handler(ctx, conn)

	return
}

// Send writes b, closes the write side and returns everything the server sent back.
func (v *_client) Send(ctx context.Context, b []byte) (out []byte, err error) {
	err = v.Call(ctx, func(_ context.Context, conn net.Conn) error {
		if _, e := conn.Write(b); e != nil {
			return e
		}
		if tc, ok := conn.(*net.TCPConn); ok {
			if e := tc.CloseWrite(); e != nil {
				return e
			}
		}
		var e error
		out, e = io.ReadAll(conn)
		return e
	})
	return
}
