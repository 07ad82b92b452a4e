/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package address

import (
	"net"
	"strings"

	"go.osspkg.com/errors"
)

const (
	DefaultHost = "0.0.0.0"
	DefaultPort = "8080"
)

var (
	ErrResolveTCPAddress = errors.New("resolve tcp address")
)

// RandomPort asks the kernel for a free port on host and releases it right away.
func RandomPort(host string) (string, error) {
	network := "tcp4"
	if strings.Contains(host, ":") {
		network = "tcp6"
	}

	host = net.JoinHostPort(host, "0")
	addr, err := net.ResolveTCPAddr(network, host)
	if err != nil {
		return host, errors.Wrap(err, ErrResolveTCPAddress)
	}

	l, err := net.ListenTCP(network, addr)
	if err != nil {
		return host, errors.Wrap(err, ErrResolveTCPAddress)
	}

	v := l.Addr().String()

	if err = l.Close(); err != nil {
		return host, errors.Wrap(err, ErrResolveTCPAddress)
	}

	return v, nil
}

// ResolveBind normalizes a listen address. An empty host binds all interfaces,
// a missing port falls back to 8080. Port 0 is kept so the kernel picks one.
func ResolveBind(address string) string {
	var host, port string

	switch {
	case len(address) == 0:

	case IsValidIP(address):
		host = address

	case address[0] == '[':
		if index := strings.IndexByte(address, ']'); index != -1 {
			host = address[1:index]
			port = strings.TrimPrefix(address[index+1:], ":")
		}
		if !IsValidIP(host) {
			host = "::"
		}

	case strings.Count(address, ":") == 1:
		index := strings.IndexByte(address, ':')
		host = address[:index]
		port = address[index+1:]

	default:
		host = address
	}

	if len(host) == 0 {
		host = DefaultHost
	}
	if len(port) == 0 {
		port = DefaultPort
	}

	return net.JoinHostPort(host, port)
}

func IsValidIP(ip string) bool {
	return net.ParseIP(ip) != nil
}
