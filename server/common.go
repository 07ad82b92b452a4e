/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package server

import (
	"context"
	"io"
)

type (
	// Ctx describes the connection a read event belongs to.
	Ctx interface {
		io.Writer
		ID() uint64
		Addr() string
		Worker() string
		Context() context.Context
	}

	// Handler processes the bytes of one read event. b is reused after OnRead returns,
	// so it must not be retained.
	Handler interface {
		OnRead(ctx Ctx, b []byte) error
	}

	HandlerFunc func(ctx Ctx, b []byte) error
)

func (f HandlerFunc) OnRead(ctx Ctx, b []byte) error {
	return f(ctx, b)
}
