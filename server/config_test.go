/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package server_test

import (
	"testing"
	"time"

	"go.osspkg.com/casecheck"

	"go.osspkg.com/tcpecho/server"
)

func TestUnit_ConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mod     func(c *server.Config)
		wantErr bool
	}{
		{name: "default", mod: func(*server.Config) {}},
		{name: "discard epoll", mod: func(c *server.Config) { c.Mode = server.ModeDiscard; c.Engine = server.EngineEpoll }},
		{name: "tcp6", mod: func(c *server.Config) { c.Network = "tcp6" }},
		{name: "udp", mod: func(c *server.Config) { c.Network = "udp" }, wantErr: true},
		{name: "bad mode", mod: func(c *server.Config) { c.Mode = "chargen" }, wantErr: true},
		{name: "bad engine", mod: func(c *server.Config) { c.Engine = "kqueue" }, wantErr: true},
		{name: "negative backlog", mod: func(c *server.Config) { c.Backlog = -1 }, wantErr: true},
		{name: "negative grace", mod: func(c *server.Config) { c.GracePeriod = -time.Second }, wantErr: true},
		{name: "huge buffer", mod: func(c *server.Config) { c.ReadBufferSize = 1 << 20 }, wantErr: true},
		{name: "idle with epoll", mod: func(c *server.Config) {
			c.Engine = server.EngineEpoll
			c.IdleTimeout = time.Second
		}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := server.DefaultConfig()
			tt.mod(&conf)

			err := conf.Validate()
			if tt.wantErr {
				casecheck.Error(t, err)
				return
			}
			casecheck.NoError(t, err)
		})
	}
}

func TestUnit_NewFillsDefaults(t *testing.T) {
	srv, err := server.New(server.Config{})
	casecheck.NoError(t, err)
	casecheck.True(t, srv.Addr() == nil)

	_, err = server.New(server.Config{Mode: "chargen"})
	casecheck.Error(t, err)
}

func TestUnit_DefaultConfig(t *testing.T) {
	conf := server.DefaultConfig()
	casecheck.Equal(t, "0.0.0.0:8080", conf.Address)
	casecheck.Equal(t, 128, conf.Backlog)
	casecheck.True(t, conf.KeepAlive)
	casecheck.Equal(t, server.ModeEcho, conf.Mode)
	casecheck.Equal(t, server.EngineGoroutine, conf.Engine)
	casecheck.NoError(t, conf.Validate())
}
