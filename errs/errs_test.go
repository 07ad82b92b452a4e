/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package errs_test

import (
	"fmt"
	"io"
	"net"
	"os"
	"testing"

	"go.osspkg.com/casecheck"

	"go.osspkg.com/tcpecho/errs"
)

func TestUnit_IsClosed(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{err: nil, want: false},
		{err: io.EOF, want: true},
		{err: fmt.Errorf("read: %w", io.EOF), want: true},
		{err: net.ErrClosed, want: true},
		{err: os.ErrDeadlineExceeded, want: true},
		{err: fmt.Errorf("write tcp: broken pipe"), want: true},
		{err: errs.ErrHandlerFault, want: false},
		{err: errs.ErrBind, want: false},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("Case%d", i), func(t *testing.T) {
			casecheck.Equal(t, tt.want, errs.IsClosed(tt.err))
		})
	}
}
