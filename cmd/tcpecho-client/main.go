/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.osspkg.com/tcpecho/client"
)

func main() {
	var (
		address = flag.String("address", "127.0.0.1:8080", "server address")
		message = flag.String("m", "", "message to send, stdin when empty")
		timeout = flag.Duration("timeout", 15*time.Second, "dial and io timeout")
	)
	flag.Parse()

	cli, err := client.New(client.Config{
		Network: "tcp",
		Address: *address,
		Timeout: *timeout,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERR", err)
		os.Exit(1)
	}

	in := []byte(*message)
	if len(in) == 0 {
		if in, err = io.ReadAll(os.Stdin); err != nil {
			fmt.Fprintln(os.Stderr, "ERR", err)
			os.Exit(1)
		}
	}

	out, err := cli.Send(context.Background(), in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERR", err)
		os.Exit(1)
	}
	os.Stdout.Write(out) //nolint: errcheck
}
