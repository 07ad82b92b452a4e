//go:build !linux

/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package server

import "fmt"

func newEpollEngine(*_server) (engine, error) {
	return nil, fmt.Errorf("epoll engine is supported on linux only")
}
