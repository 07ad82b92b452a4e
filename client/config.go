/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package client

import (
	"net"
	"time"

	"go.osspkg.com/tcpecho/internal"
)

type Config struct {
	Network  string        `yaml:"network"`
	Address  string        `yaml:"address"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
	MaxConns uint64        `yaml:"max_conns,omitempty"`
}

func (c Config) Resolve() (*net.TCPAddr, error) {
	if err := internal.IsPassableNetwork(c.Network); err != nil {
		return nil, err
	}
	return net.ResolveTCPAddr(c.Network, c.Address)
}
