//go:build linux

/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package epoll

import (
	"context"
	"fmt"
	"sync"

	"go.osspkg.com/errors"
	"go.osspkg.com/logx"
	"go.osspkg.com/syncing"
	"golang.org/x/sys/unix"

	netfd "go.osspkg.com/tcpecho/fd"
	"go.osspkg.com/tcpecho/internal"
)

var errDraining = errors.New("epoll is draining")

type (
	_epoll struct {
		fd       int
		cfg      Option
		events   []unix.EpollEvent
		pipe     chan *connect
		conn     map[int32]*connect
		draining bool
		mux      sync.Mutex
		wg       syncing.Group
	}

	TEpoll interface {
		// Accept registers c, the reactor owns it from now on.
		Accept(c TConnect) error
		// Listen runs the reactor and the workers until ctx is done,
		// then closes idle connections and waits for the busy ones.
		Listen(ctx context.Context) error
		// Abort force-closes every registered connection.
		Abort()
		Len() int
	}
)

func New(c Option) (TEpoll, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	v, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &_epoll{
		fd:     v,
		cfg:    c,
		pipe:   make(chan *connect, c.CountEvents),
		conn:   make(map[int32]*connect, c.CountEvents),
		events: make([]unix.EpollEvent, c.CountEvents),
		wg:     syncing.NewGroup(),
	}, nil
}

func (v *_epoll) Accept(c TConnect) error {
	fd, err := netfd.ByConnect(c.NetConn())
	if err != nil {
		return errors.Wrap(err, c.Close())
	}
	fd32 := int32(fd)

	v.mux.Lock()
	defer v.mux.Unlock()

	if v.draining {
		return errors.Wrap(errDraining, c.Close())
	}

	v.conn[fd32] = &connect{c: c, fd: fd32}
	err = unix.EpollCtl(v.fd, unix.EPOLL_CTL_ADD, fd, &unix.EpollEvent{Events: epollEvents, Fd: fd32})
	if err != nil {
		delete(v.conn, fd32)
		return errors.Wrap(err, c.Close())
	}
	return nil
}

func (v *_epoll) Len() int {
	v.mux.Lock()
	defer v.mux.Unlock()

	return len(v.conn)
}

func (v *_epoll) Listen(ctx context.Context) (err error) {
	hctx := context.WithoutCancel(ctx)
	for i := uint(0); i < v.cfg.Workers; i++ {
		name := fmt.Sprintf("worker-%d", i+1)
		v.wg.Background(func() {
			for c := range v.pipe {
				v.serve(hctx, name, c)
			}
		})
	}

	err = v.loop(ctx)

	v.drain()
	close(v.pipe)
	v.wg.Wait()
	v.closeAll()

	return errors.Wrap(err, unix.Close(v.fd))
}

func (v *_epoll) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := unix.EpollWait(v.fd, v.events, int(v.cfg.WaitIntervalMS))
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return err
		}

		for i := 0; i < n; i++ {
			ev := v.events[i]

			if ev.Events&unix.EPOLLIN == 0 && ev.Events&hangupEvents != 0 {
				v.closeConn(ev.Fd, true)
				continue
			}

			c, ok := v.take(ev.Fd)
			if !ok {
				continue
			}

			select {
			case v.pipe <- c:
			case <-ctx.Done():
				v.untake(c)
			}
		}
	}
}

// take marks the connection busy, so no other worker gets it until serve is done.
func (v *_epoll) take(fd int32) (*connect, bool) {
	v.mux.Lock()
	defer v.mux.Unlock()

	c, ok := v.conn[fd]
	if !ok || c.busy || v.draining {
		return nil, false
	}
	c.busy = true
	return c, true
}

func (v *_epoll) untake(c *connect) {
	v.mux.Lock()
	defer v.mux.Unlock()

	c.busy = false
}

func (v *_epoll) serve(ctx context.Context, worker string, c *connect) {
	err := v.handle(ctx, worker, c)

	v.mux.Lock()
	c.busy = false
	closing := err != nil || v.draining
	if !closing {
		e := unix.EpollCtl(v.fd, unix.EPOLL_CTL_MOD, int(c.fd), &unix.EpollEvent{Events: epollEvents, Fd: c.fd})
		if e != nil {
			logx.Warn("Epoll re-arm connect", "err", e, "worker", worker)
			closing = true
		}
	}
	v.mux.Unlock()

	if closing {
		v.closeConn(c.fd, false)
	}
}

func (v *_epoll) handle(ctx context.Context, worker string, c *connect) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = fmt.Errorf("epoll handler panic: %v", e)
			logx.Error("Epoll handler panic", "err", err, "worker", worker)
		}
	}()
	return v.cfg.Handler(ctx, worker, c.c)
}

// drain stops dispatching, closes idle connections and interrupts the busy ones.
func (v *_epoll) drain() {
	v.mux.Lock()
	v.draining = true
	idle := make([]*connect, 0, len(v.conn))
	for fd, c := range v.conn {
		if c.busy {
			c.c.Interrupt()
			continue
		}
		idle = append(idle, c)
		delete(v.conn, fd)
	}
	v.mux.Unlock()

	for _, c := range idle {
		v.release(c)
	}
}

func (v *_epoll) closeConn(fd int32, onlyIdle bool) {
	v.mux.Lock()
	c, ok := v.conn[fd]
	if !ok || (onlyIdle && c.busy) {
		v.mux.Unlock()
		return
	}
	delete(v.conn, fd)
	v.mux.Unlock()

	v.release(c)
}

func (v *_epoll) release(c *connect) {
	unix.EpollCtl(v.fd, unix.EPOLL_CTL_DEL, int(c.fd), nil) //nolint: errcheck
	internal.WriteErrLog("Epoll close connect", c.c.Close())
}

func (v *_epoll) closeAll() {
	v.mux.Lock()
	list := make([]*connect, 0, len(v.conn))
	for fd, c := range v.conn {
		list = append(list, c)
		delete(v.conn, fd)
	}
	v.mux.Unlock()

	for _, c := range list {
		v.release(c)
	}
}

func (v *_epoll) Abort() {
	v.mux.Lock()
	v.draining = true
	list := make([]*connect, 0, len(v.conn))
	for _, c := range v.conn {
		list = append(list, c)
	}
	v.mux.Unlock()

	for _, c := range list {
		internal.WriteErrLog("Epoll abort connect", c.c.Abort())
	}
}
