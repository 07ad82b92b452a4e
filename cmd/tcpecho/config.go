/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.osspkg.com/errors"
	"gopkg.in/yaml.v3"

	"go.osspkg.com/tcpecho/server"
)

const envPrefix = "TCPECHO_"

// loadConfig applies, in order: defaults, the yaml file, the env file and the environment.
func loadConfig(path, envFile string) (server.Config, error) {
	conf := server.DefaultConfig()

	if len(path) > 0 {
		b, err := os.ReadFile(path)
		if err != nil {
			return conf, fmt.Errorf("read config: %w", err)
		}
		if err = yaml.Unmarshal(b, &conf); err != nil {
			return conf, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if len(envFile) > 0 {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return conf, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	if v := env("ADDRESS"); len(v) > 0 {
		conf.Address = v
	}
	if v := env("MODE"); len(v) > 0 {
		conf.Mode = server.Mode(v)
	}
	if v := env("ENGINE"); len(v) > 0 {
		conf.Engine = server.Engine(v)
	}
	if v := env("TRACE"); len(v) > 0 {
		trace, err := strconv.ParseBool(v)
		if err != nil {
			return conf, fmt.Errorf("parse %sTRACE: %w", envPrefix, err)
		}
		conf.Trace = trace
	}

	return conf, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(envPrefix + key))
}
