/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package server_test

import (
	"bytes"
	"context"
	"testing"

	"go.osspkg.com/casecheck"

	"go.osspkg.com/tcpecho/server"
)

type mockCtx struct {
	bytes.Buffer
}

func (*mockCtx) ID() uint64               { return 1 }
func (*mockCtx) Addr() string             { return "127.0.0.1:1" }
func (*mockCtx) Worker() string           { return "test" }
func (*mockCtx) Context() context.Context { return context.TODO() }

func TestUnit_NewHandler(t *testing.T) {
	echo, err := server.NewHandler(server.ModeEcho)
	casecheck.NoError(t, err)

	ctx := &mockCtx{}
	casecheck.NoError(t, echo.OnRead(ctx, []byte("abc")))
	casecheck.NoError(t, echo.OnRead(ctx, []byte("def")))
	casecheck.Equal(t, "abcdef", ctx.String())

	discard, err := server.NewHandler(server.ModeDiscard)
	casecheck.NoError(t, err)

	ctx = &mockCtx{}
	casecheck.NoError(t, discard.OnRead(ctx, []byte("abc")))
	casecheck.Equal(t, 0, ctx.Len())

	_, err = server.NewHandler("chargen")
	casecheck.Error(t, err)
}
