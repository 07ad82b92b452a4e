/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package server

import (
	"context"
	"net"
	"sync"
	"time"

	"go.osspkg.com/ioutils/pool"
)

// readBuffers hold the bytes of one read event, a buffer goes back right after the event.
var readBuffers = pool.New[*readBuffer](func() *readBuffer {
	return &readBuffer{B: make([]byte, maxReadBufferSize)}
})

type readBuffer struct {
	B []byte
}

func (*readBuffer) Reset() {}

// Connect is an accepted connection. Its reads are serviced by one task at a time.
type Connect struct {
	id     uint64
	conn   net.Conn
	ctx    context.Context
	worker string

	mux      sync.Mutex
	stopping bool

	once    sync.Once
	err     error
	release func(c *Connect)
}

func newConnect(ctx context.Context, id uint64, conn net.Conn, release func(c *Connect)) *Connect {
	return &Connect{
		id:      id,
		conn:    conn,
		ctx:     ctx,
		release: release,
	}
}

func (v *Connect) ID() uint64 {
	return v.id
}

func (v *Connect) Addr() string {
	return v.conn.RemoteAddr().String()
}

func (v *Connect) Worker() string {
	return v.worker
}

func (v *Connect) Context() context.Context {
	return v.ctx
}

func (v *Connect) NetConn() net.Conn {
	return v.conn
}

func (v *Connect) Read(b []byte) (int, error) {
	return v.conn.Read(b)
}

func (v *Connect) Write(b []byte) (int, error) {
	return v.conn.Write(b)
}

// Close closes the socket once, later calls return the first result.
func (v *Connect) Close() error {
	v.once.Do(func() {
		v.err = v.conn.Close()
		if v.release != nil {
			v.release(v)
		}
	})
	return v.err
}

// Abort drops the connection without waiting for unsent data.
func (v *Connect) Abort() error {
	if tc, ok := v.conn.(*net.TCPConn); ok {
		tc.SetLinger(0) //nolint: errcheck
	}
	return v.Close()
}

// Interrupt wakes up a pending read and forbids waiting for new data.
// Writes already in progress are not touched.
func (v *Connect) Interrupt() {
	v.mux.Lock()
	defer v.mux.Unlock()

	v.stopping = true
	v.conn.SetReadDeadline(time.Now()) //nolint: errcheck
}

// waitable arms the idle deadline for the next read,
// false means the connection is being stopped and must not wait anymore.
func (v *Connect) waitable(idle time.Duration) bool {
	v.mux.Lock()
	defer v.mux.Unlock()

	if v.stopping {
		return false
	}
	if idle > 0 {
		v.conn.SetReadDeadline(time.Now().Add(idle)) //nolint: errcheck
	}
	return true
}
