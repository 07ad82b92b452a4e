/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package server

import (
	"context"
	"fmt"
	"sync"

	"go.osspkg.com/do"
	"go.osspkg.com/logx"

	"go.osspkg.com/tcpecho/internal"
)

// loopEngine services every connection with its own goroutine blocked in Read.
type loopEngine struct {
	srv   *_server
	wg    sync.WaitGroup
	drain context.Context
	abort context.Context

	drainCancel context.CancelFunc
	abortCancel context.CancelFunc
}

func newLoopEngine(s *_server) *loopEngine {
	e := &loopEngine{srv: s}
	e.drain, e.drainCancel = context.WithCancel(context.Background())
	e.abort, e.abortCancel = context.WithCancel(context.Background())
	return e
}

func (e *loopEngine) Serve(c *Connect) {
	worker := fmt.Sprintf("loop-%d", c.ID())

	e.wg.Add(1)
	do.Async(func() {
		defer e.wg.Done()
		e.handle(c, worker)
	}, func(err error) {
		logx.Error("Conn: panic", "err", err, "id", c.ID(), "addr", c.Addr())
	})
}

func (e *loopEngine) handle(c *Connect, worker string) {
	done := make(chan struct{})

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.watch(c, done)
	}()

	defer func() {
		close(done)
		internal.WriteErrLog("Conn: close", c.Close(), "id", c.ID(), "addr", c.Addr())
	}()

	for {
		if err := e.srv.readEvent(c, worker); err != nil {
			e.srv.closeReason(c, err)
			return
		}
	}
}

// watch wakes the read loop of c on drain and kills the socket on abort.
func (e *loopEngine) watch(c *Connect, done <-chan struct{}) {
	select {
	case <-done:
		return
	case <-e.abort.Done():
		internal.WriteErrLog("Conn: abort", c.Abort(), "id", c.ID(), "addr", c.Addr())
		return
	case <-e.drain.Done():
		c.Interrupt()
	}

	select {
	case <-done:
	case <-e.abort.Done():
		internal.WriteErrLog("Conn: abort", c.Abort(), "id", c.ID(), "addr", c.Addr())
	}
}

func (e *loopEngine) Drain() {
	e.drainCancel()
}

func (e *loopEngine) Abort() {
	e.abortCancel()
}

func (e *loopEngine) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
