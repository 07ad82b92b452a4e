/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package errs

import (
	"io"
	"net"
	"os"
	"strings"

	"go.osspkg.com/errors"
)

var (
	// ErrBind is returned when the listening socket cannot be bound. It is fatal for the process.
	ErrBind = errors.New("bind address")
	// ErrShutdownTimeout reports that the grace period ran out and connections were force-closed.
	ErrShutdownTimeout = errors.New("shutdown grace period exceeded")
	// ErrHandlerFault wraps a handler error or a recovered panic while processing a read event.
	ErrHandlerFault = errors.New("handler fault")

	ErrServAlreadyRunning = errors.New("server already running")
	ErrServNotRunning     = errors.New("server not running")
)

// IsClosed reports whether err means the connection or listener ended the normal way:
// peer EOF, a closed socket or an expired deadline.
func IsClosed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, os.ErrDeadlineExceeded) ||
		strings.Contains(err.Error(), "i/o timeout") ||
		strings.Contains(err.Error(), "use of closed network connection") ||
		strings.Contains(err.Error(), "connection reset by peer") ||
		strings.Contains(err.Error(), "broken pipe") {
		return true
	}
	return false
}
