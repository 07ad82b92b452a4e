/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package listen

import (
	"context"
	"fmt"
	"net"

	"go.osspkg.com/errors"

	"go.osspkg.com/tcpecho/errs"
	"go.osspkg.com/tcpecho/internal"
)

// New binds a stream listener. Any failure is reported as errs.ErrBind.
// Keep-alive of accepted connections is left to SetKeepAlive.
func New(ctx context.Context, network, address string, backlog int) (net.Listener, error) {
	if err := internal.IsPassableNetwork(network); err != nil {
		return nil, fmt.Errorf("%w %s: %w", errs.ErrBind, address, err)
	}

	lc := net.ListenConfig{KeepAlive: -1}
	l, err := lc.Listen(ctx, network, address)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", errs.ErrBind, address, err)
	}

	if backlog > 0 {
		if err = setBacklog(l, backlog); err != nil {
			return nil, fmt.Errorf("%w %s: set backlog: %w", errs.ErrBind, address, errors.Wrap(err, l.Close()))
		}
	}

	return l, nil
}
