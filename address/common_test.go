/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package address_test

import (
	"fmt"
	"net"
	"testing"

	"go.osspkg.com/casecheck"

	"go.osspkg.com/tcpecho/address"
)

func TestUnit_ResolveBind(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{addr: "", want: "0.0.0.0:8080"},
		{addr: ":", want: "0.0.0.0:8080"},
		{addr: ":9000", want: "0.0.0.0:9000"},
		{addr: ":0", want: "0.0.0.0:0"},
		{addr: "127.0.0.1", want: "127.0.0.1:8080"},
		{addr: "127.0.0.1:", want: "127.0.0.1:8080"},
		{addr: "127.0.0.1:123", want: "127.0.0.1:123"},
		{addr: "localhost", want: "localhost:8080"},
		{addr: "localhost:123", want: "localhost:123"},
		{addr: "::1", want: "[::1]:8080"},
		{addr: "[::1]", want: "[::1]:8080"},
		{addr: "[::1]:", want: "[::1]:8080"},
		{addr: "[::1]:123", want: "[::1]:123"},
		{addr: "[bad]:123", want: "[::]:123"},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("[Case%d]=>'%s'", i, tt.addr), func(t *testing.T) {
			casecheck.Equal(t, tt.want, address.ResolveBind(tt.addr))
		})
	}
}

func TestUnit_RandomPort(t *testing.T) {
	addr, err := address.RandomPort("127.0.0.1")
	casecheck.NoError(t, err)

	host, port, err := net.SplitHostPort(addr)
	casecheck.NoError(t, err)
	casecheck.Equal(t, "127.0.0.1", host)
	casecheck.True(t, port != "0", addr)

	l, err := net.Listen("tcp", addr)
	casecheck.NoError(t, err, "port must be free again")
	casecheck.NoError(t, l.Close())
}
