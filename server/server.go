/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"runtime/debug"
	"sync/atomic"
	"time"

	"go.osspkg.com/errors"
	"go.osspkg.com/logx"
	"go.osspkg.com/syncing"

	"go.osspkg.com/tcpecho/errs"
	"go.osspkg.com/tcpecho/internal"
	"go.osspkg.com/tcpecho/listen"
)

type (
	Server interface {
		HandleFunc(h Handler)
		Start(ctx context.Context) error
		Shutdown(ctx context.Context) error
		ListenAndServe(ctx context.Context) error
		Addr() net.Addr
		ConnNum() int64
	}

	// engine delivers readable notifications of accepted connections to readEvent.
	engine interface {
		// Serve takes ownership of an accepted connection.
		Serve(c *Connect)
		// Drain asks every connection to finish, pending reads are woken up.
		Drain()
		// Wait blocks until all connections are closed or ctx is done.
		Wait(ctx context.Context) error
		// Abort force-closes whatever is still open.
		Abort()
	}

	_server struct {
		conf     Config
		handler  Handler
		listener net.Listener
		engine   engine
		ctx      context.Context
		cancel   context.CancelFunc
		accepted chan struct{}
		sync     syncing.Switch
		wg       syncing.Group
		ids      atomic.Uint64
		conns    atomic.Int64
	}
)

func New(conf Config) (Server, error) {
	return newServer(conf)
}

func newServer(conf Config) (*_server, error) {
	conf = conf.normalize()
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	h, err := NewHandler(conf.Mode)
	if err != nil {
		return nil, err
	}
	if conf.Trace {
		logx.SetLevel(logx.LevelDebug)
	}
	return &_server{
		conf:    conf,
		handler: h,
		sync:    syncing.NewSwitch(),
		wg:      syncing.NewGroup(),
	}, nil
}

// HandleFunc replaces the handler chosen by Config.Mode, it has no effect on a running server.
func (v *_server) HandleFunc(h Handler) {
	if v.sync.IsOn() || h == nil {
		return
	}
	v.handler = h
}

func (v *_server) Addr() net.Addr {
	if v.listener == nil {
		return nil
	}
	return v.listener.Addr()
}

func (v *_server) ConnNum() int64 {
	return v.conns.Load()
}

// Start binds the listener and runs the acceptor in background.
func (v *_server) Start(ctx context.Context) error {
	if !v.sync.On() {
		return errs.ErrServAlreadyRunning
	}

	l, err := listen.New(ctx, v.conf.Network, v.conf.Address, v.conf.Backlog)
	if err != nil {
		v.sync.Off()
		return err
	}

	v.ctx, v.cancel = context.WithCancel(context.WithoutCancel(ctx))
	eng, err := v.newEngine()
	if err != nil {
		v.cancel()
		v.sync.Off()
		return errors.Wrap(err, l.Close())
	}

	v.listener = l
	v.engine = eng
	v.accepted = make(chan struct{})

	v.wg.Background(func() {
		defer close(v.accepted)
		v.accept(l)
	})

	logx.Info(fmt.Sprintf("Ready for %s", l.Addr().String()),
		"mode", v.conf.Mode, "engine", v.conf.Engine, "backlog", v.conf.Backlog)
	return nil
}

func (v *_server) newEngine() (engine, error) {
	switch v.conf.Engine {
	case EngineEpoll:
		return newEpollEngine(v)
	default:
		return newLoopEngine(v), nil
	}
}

// Shutdown stops accepting, lets the connections finish within the grace period
// and force-closes the rest. In the latter case errs.ErrShutdownTimeout is returned.
func (v *_server) Shutdown(ctx context.Context) error {
	if !v.sync.Off() {
		return errs.ErrServNotRunning
	}

	internal.WriteErrLog("Server: close listener", v.listener.Close())
	v.wg.Wait()

	v.cancel()
	v.engine.Drain()

	wctx, cancel := context.WithTimeout(ctx, v.conf.GracePeriod)
	defer cancel()

	if v.engine.Wait(wctx) != nil {
		left := v.conns.Load()
		logx.Warn("Server: grace period exceeded, force close",
			"conns", left, "grace", v.conf.GracePeriod.String())

		v.engine.Abort()

		actx, acancel := context.WithTimeout(context.Background(), v.conf.GracePeriod)
		defer acancel()
		internal.WriteErrLog("Server: abort", v.engine.Wait(actx))

		return fmt.Errorf("%w: %d connections force-closed", errs.ErrShutdownTimeout, left)
	}

	logx.Info("Server stopped", "address", v.listener.Addr().String())
	return nil
}

// ListenAndServe serves until ctx is done, then shuts down with the grace period.
func (v *_server) ListenAndServe(ctx context.Context) error {
	if err := v.Start(ctx); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
	case <-v.accepted:
		logx.Error("Server: acceptor stopped unexpectedly", "address", v.listener.Addr().String())
	}

	return v.Shutdown(context.Background())
}

func (v *_server) accept(l net.Listener) {
	var backoff internal.Backoff

	for {
		conn, err := l.Accept()
		if err != nil {
			if !v.sync.IsOn() || errors.Is(err, net.ErrClosed) {
				return
			}
			if isTemporary(err) {
				d := backoff.Next()
				logx.Warn("Conn: accept temporary error", "err", err, "delay", d.String())
				time.Sleep(d)
				continue
			}
			logx.Error("Conn: accept", "err", err)
			return
		}
		backoff.Reset()

		v.welcome(conn)
	}
}

func isTemporary(err error) bool {
	te, ok := err.(interface{ Temporary() bool })
	return ok && te.Temporary()
}

func (v *_server) welcome(conn net.Conn) {
	addr := conn.RemoteAddr()

	if v.conf.MaxConns > 0 && v.conns.Load() >= int64(v.conf.MaxConns) {
		logx.Warn("Conn: rejected, limit reached", "limit", v.conf.MaxConns, "addr", addr)
		internal.WriteErrLog("Conn: close", conn.Close(), "addr", addr)
		return
	}

	err := listen.SetKeepAlive(conn, listen.KeepAlive{
		Enable:   v.conf.KeepAlive,
		Period:   v.conf.KeepAlivePeriod,
		Interval: v.conf.KeepAliveInterval,
		Count:    v.conf.KeepAliveCount,
	})
	internal.WriteErrLog("Conn: keep-alive", err, "addr", addr)

	c := newConnect(v.ctx, v.ids.Add(1), conn, v.release)
	v.conns.Add(1)
	logx.Debug("Conn: open", "id", c.ID(), "addr", addr)

	v.engine.Serve(c)
}

func (v *_server) release(c *Connect) {
	v.conns.Add(-1)
	logx.Debug("Conn: release", "id", c.ID(), "addr", c.Addr())
}

// readEvent waits for the bytes currently available on c and hands them to the handler.
func (v *_server) readEvent(c *Connect, worker string) error {
	if !c.waitable(v.conf.IdleTimeout) {
		return io.EOF
	}
	c.worker = worker

	buff := readBuffers.Get()
	defer readBuffers.Put(buff)

	n, err := c.Read(buff.B[:v.conf.ReadBufferSize])
	if n > 0 {
		if e := v.dispatch(c, buff.B[:n]); e != nil {
			return e
		}
	}
	return err
}

func (v *_server) dispatch(c *Connect, b []byte) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = fmt.Errorf("%w: panic: %v\n%s", errs.ErrHandlerFault, e, debug.Stack())
		}
	}()

	if v.conf.Trace {
		logx.Debug("Conn: read", "id", c.ID(), "worker", c.Worker(), "addr", c.Addr(), "msg", string(b))
	}

	if err = v.handler.OnRead(c, b); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrHandlerFault, err)
	}
	return nil
}

// closeReason logs why the read loop of c ended.
func (v *_server) closeReason(c *Connect, err error) {
	switch {
	case err == nil:
	case errs.IsClosed(err):
		logx.Debug("Conn: closed", "reason", err, "id", c.ID(), "addr", c.Addr())
	case errors.Is(err, errs.ErrHandlerFault):
		logx.Error("Conn: handler fault", "err", err, "id", c.ID(), "worker", c.Worker(), "addr", c.Addr())
	default:
		logx.Warn("Conn: read", "err", err, "id", c.ID(), "worker", c.Worker(), "addr", c.Addr())
	}
}
