/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package server

import (
	"context"

	"go.osspkg.com/errors"

	"go.osspkg.com/tcpecho/errs"
)

// Run builds a server from conf and serves until ctx is done.
// The error matches errs.ErrBind when the address could not be bound and
// errs.ErrShutdownTimeout when connections had to be force-closed.
func Run(ctx context.Context, conf Config) error {
	srv, err := New(conf)
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx)
}

// ExitCode maps the result of Run to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errs.ErrShutdownTimeout):
		return 2
	default:
		return 1
	}
}
