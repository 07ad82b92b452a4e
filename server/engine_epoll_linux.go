//go:build linux

/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package server

import (
	"context"

	"go.osspkg.com/logx"

	"go.osspkg.com/tcpecho/epoll"
	"go.osspkg.com/tcpecho/internal"
)

// epollEngine multiplexes all connections over one reactor and a fixed worker pool.
type epollEngine struct {
	ep     epoll.TEpoll
	cancel context.CancelFunc
	done   chan struct{}
}

func newEpollEngine(s *_server) (engine, error) {
	ep, err := epoll.New(epoll.Option{
		Handler: func(_ context.Context, worker string, c epoll.TConnect) error {
			conn := c.(*Connect)
			err := s.readEvent(conn, worker)
			s.closeReason(conn, err)
			return err
		},
		Workers:        uint(s.conf.Workers),
		CountEvents:    s.conf.CountEvents,
		WaitIntervalMS: s.conf.WaitIntervalMS,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &epollEngine{
		ep:     ep,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(e.done)
		if err := ep.Listen(ctx); err != nil {
			logx.Error("Epoll listen connects", "err", err)
		}
	}()

	return e, nil
}

func (e *epollEngine) Serve(c *Connect) {
	internal.WriteErrLog("Epoll append connect", e.ep.Accept(c), "id", c.ID(), "addr", c.Addr())
}

func (e *epollEngine) Drain() {
	e.cancel()
}

func (e *epollEngine) Abort() {
	e.ep.Abort()
}

func (e *epollEngine) Wait(ctx context.Context) error {
	select {
	case <-e.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
