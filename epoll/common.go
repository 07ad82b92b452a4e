//go:build linux

/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package epoll

import (
	"golang.org/x/sys/unix"
)

const (
	// one-shot: a connection is reported once and re-armed after the worker is done with it
	epollEvents = unix.EPOLLIN | unix.EPOLLRDHUP | unix.EPOLLONESHOT

	hangupEvents = unix.EPOLLHUP | unix.EPOLLRDHUP | unix.EPOLLERR
)

type connect struct {
	c    TConnect
	fd   int32
	busy bool
}
