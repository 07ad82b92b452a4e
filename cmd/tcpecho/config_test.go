/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.osspkg.com/casecheck"

	"go.osspkg.com/tcpecho/server"
)

func TestUnit_LoadConfig(t *testing.T) {
	dir := t.TempDir()

	yml := filepath.Join(dir, "config.yaml")
	casecheck.NoError(t, os.WriteFile(yml, []byte(`
address: 127.0.0.1:9000
mode: discard
backlog: 64
keep_alive: false
grace_period: 2s
`), 0o600))

	envFile := filepath.Join(dir, ".env")
	casecheck.NoError(t, os.WriteFile(envFile, []byte("TCPECHO_ENGINE=epoll\nTCPECHO_TRACE=true\n"), 0o600))

	t.Setenv("TCPECHO_ADDRESS", "127.0.0.1:9001")
	for _, key := range []string{"TCPECHO_ENGINE", "TCPECHO_TRACE", "TCPECHO_MODE"} {
		t.Setenv(key, "")
		casecheck.NoError(t, os.Unsetenv(key))
	}

	conf, err := loadConfig(yml, envFile)
	casecheck.NoError(t, err)
	casecheck.Equal(t, "127.0.0.1:9001", conf.Address)
	casecheck.Equal(t, server.ModeDiscard, conf.Mode)
	casecheck.Equal(t, server.EngineEpoll, conf.Engine)
	casecheck.True(t, conf.Trace)
	casecheck.Equal(t, 64, conf.Backlog)
	casecheck.False(t, conf.KeepAlive)
	casecheck.Equal(t, 2*time.Second, conf.GracePeriod)
	casecheck.Equal(t, 6, conf.KeepAliveCount)
}

func TestUnit_LoadConfigMissingFiles(t *testing.T) {
	conf, err := loadConfig("", filepath.Join(t.TempDir(), "absent.env"))
	casecheck.NoError(t, err)
	casecheck.Equal(t, server.DefaultConfig().Address, conf.Address)

	_, err = loadConfig(filepath.Join(t.TempDir(), "absent.yaml"), "")
	casecheck.Error(t, err)
}
