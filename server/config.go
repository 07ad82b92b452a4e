/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package server

import (
	"fmt"
	"runtime"
	"time"

	"go.osspkg.com/tcpecho/address"
	"go.osspkg.com/tcpecho/internal"
)

type (
	Mode   string
	Engine string

	Config struct {
		Address           string        `yaml:"address"`
		Network           string        `yaml:"network"`
		Mode              Mode          `yaml:"mode"`
		Engine            Engine        `yaml:"engine"`
		Backlog           int           `yaml:"backlog"`
		KeepAlive         bool          `yaml:"keep_alive"`
		KeepAlivePeriod   time.Duration `yaml:"keep_alive_period,omitempty"`
		KeepAliveInterval time.Duration `yaml:"keep_alive_interval,omitempty"`
		KeepAliveCount    int           `yaml:"keep_alive_count,omitempty"`
		GracePeriod       time.Duration `yaml:"grace_period,omitempty"`
		IdleTimeout       time.Duration `yaml:"idle_timeout,omitempty"`
		ReadBufferSize    int           `yaml:"read_buffer_size,omitempty"`
		MaxConns          int           `yaml:"max_conns,omitempty"`
		Workers           int           `yaml:"workers,omitempty"`
		CountEvents       uint          `yaml:"count_events,omitempty"`
		WaitIntervalMS    uint          `yaml:"wait_interval_ms,omitempty"`
		Trace             bool          `yaml:"trace"`
	}
)

const (
	ModeEcho    Mode = "echo"
	ModeDiscard Mode = "discard"

	EngineGoroutine Engine = "goroutine"
	EngineEpoll     Engine = "epoll"

	maxReadBufferSize = 65535
)

// DefaultConfig is the base every config source is applied on top of.
func DefaultConfig() Config {
	return Config{
		Address:           address.ResolveBind(""),
		Network:           internal.NetTCP,
		Mode:              ModeEcho,
		Engine:            EngineGoroutine,
		Backlog:           128,
		KeepAlive:         true,
		KeepAlivePeriod:   time.Minute,
		KeepAliveInterval: 10 * time.Second,
		KeepAliveCount:    6,
		GracePeriod:       5 * time.Second,
		ReadBufferSize:    maxReadBufferSize,
		Workers:           runtime.NumCPU(),
		CountEvents:       128,
		WaitIntervalMS:    300,
	}
}

// normalize fills zero values, flags are left as they are.
func (c Config) normalize() Config {
	d := DefaultConfig()
	c.Address = address.ResolveBind(c.Address)
	if len(c.Network) == 0 {
		c.Network = d.Network
	}
	if len(c.Mode) == 0 {
		c.Mode = d.Mode
	}
	if len(c.Engine) == 0 {
		c.Engine = d.Engine
	}
	c.Backlog = internal.NotZero(c.Backlog, d.Backlog)
	c.GracePeriod = internal.NotZeroDuration(c.GracePeriod, d.GracePeriod)
	c.ReadBufferSize = internal.NotZero(c.ReadBufferSize, d.ReadBufferSize)
	c.Workers = internal.NotZero(c.Workers, d.Workers)
	c.CountEvents = internal.NotZero(c.CountEvents, d.CountEvents)
	c.WaitIntervalMS = internal.NotZero(c.WaitIntervalMS, d.WaitIntervalMS)
	return c
}

func (c Config) Validate() error {
	if err := internal.IsPassableNetwork(c.Network); err != nil {
		return err
	}
	switch c.Mode {
	case ModeEcho, ModeDiscard:
	default:
		return fmt.Errorf("invalid mode %q, use: echo, discard", c.Mode)
	}
	switch c.Engine {
	case EngineGoroutine:
	case EngineEpoll:
		if c.IdleTimeout > 0 {
			return fmt.Errorf("idle timeout is supported by the goroutine engine only")
		}
	default:
		return fmt.Errorf("invalid engine %q, use: goroutine, epoll", c.Engine)
	}
	if c.Backlog < 0 || c.MaxConns < 0 || c.Workers < 0 || c.KeepAliveCount < 0 {
		return fmt.Errorf("backlog, max conns, workers and keep-alive count must not be negative")
	}
	if c.GracePeriod < 0 || c.IdleTimeout < 0 || c.KeepAlivePeriod < 0 || c.KeepAliveInterval < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	if c.ReadBufferSize < 0 || c.ReadBufferSize > maxReadBufferSize {
		return fmt.Errorf("read buffer size must be in range 1..%d", maxReadBufferSize)
	}
	return nil
}
