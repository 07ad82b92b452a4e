/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package listen_test

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"go.osspkg.com/casecheck"
	"go.osspkg.com/errors"

	"go.osspkg.com/tcpecho/errs"
	"go.osspkg.com/tcpecho/listen"
)

func TestUnit_New(t *testing.T) {
	l, err := listen.New(context.TODO(), "tcp", "127.0.0.1:0", 16)
	casecheck.NoError(t, err)
	defer l.Close() //nolint: errcheck

	conn, err := net.DialTimeout("tcp", l.Addr().String(), time.Second)
	casecheck.NoError(t, err)
	casecheck.NoError(t, conn.Close())

	_, err = listen.New(context.TODO(), "tcp", l.Addr().String(), 16)
	casecheck.True(t, errors.Is(err, errs.ErrBind), fmt.Sprintf("got %v", err))

	_, err = listen.New(context.TODO(), "udp", "127.0.0.1:0", 16)
	casecheck.True(t, errors.Is(err, errs.ErrBind), fmt.Sprintf("got %v", err))
}

func TestUnit_SetKeepAlive(t *testing.T) {
	l, err := listen.New(context.TODO(), "tcp", "127.0.0.1:0", 0)
	casecheck.NoError(t, err)
	defer l.Close() //nolint: errcheck

	go func() {
		if c, e := net.Dial("tcp", l.Addr().String()); e == nil {
			time.Sleep(200 * time.Millisecond)
			c.Close() //nolint: errcheck
		}
	}()

	conn, err := l.Accept()
	casecheck.NoError(t, err)
	defer conn.Close() //nolint: errcheck

	casecheck.NoError(t, listen.SetKeepAlive(conn, listen.KeepAlive{
		Enable:   true,
		Period:   time.Minute,
		Interval: 10 * time.Second,
		Count:    6,
	}))
	assertKeepAlive(t, conn, true)

	casecheck.NoError(t, listen.SetKeepAlive(conn, listen.KeepAlive{}))
	assertKeepAlive(t, conn, false)
}
