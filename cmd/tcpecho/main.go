/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.osspkg.com/logx"
	"go.osspkg.com/xc"

	"go.osspkg.com/tcpecho/server"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to the yaml config")
		envFile    = flag.String("env", ".env", "path to the env file")
		address    = flag.String("address", "", "bind address, host:port")
		mode       = flag.String("mode", "", "echo or discard")
		engine     = flag.String("engine", "", "goroutine or epoll")
	)
	flag.Parse()

	conf, err := loadConfig(*configPath, *envFile)
	if err != nil {
		logx.Error("Load config", "err", err)
		os.Exit(server.ExitCode(err))
	}
	if len(*address) > 0 {
		conf.Address = *address
	}
	if len(*mode) > 0 {
		conf.Mode = server.Mode(*mode)
	}
	if len(*engine) > 0 {
		conf.Engine = server.Engine(*engine)
	}

	ctx := xc.New()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sig
		logx.Info("Shutdown requested", "signal", s.String())
		ctx.Close()
	}()

	err = server.Run(ctx.Context(), conf)
	if err != nil {
		logx.Error("Server stopped with error", "err", err)
	}
	os.Exit(server.ExitCode(err))
}
