/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package server

import "fmt"

// Echo writes every chunk back unchanged.
type Echo struct{}

func (Echo) OnRead(ctx Ctx, b []byte) error {
	_, err := ctx.Write(b)
	return err
}

// Discard drops every chunk.
type Discard struct{}

func (Discard) OnRead(Ctx, []byte) error {
	return nil
}

func NewHandler(m Mode) (Handler, error) {
	switch m {
	case ModeEcho:
		return Echo{}, nil
	case ModeDiscard:
		return Discard{}, nil
	default:
		return nil, fmt.Errorf("handler for mode %q not found", m)
	}
}
