/*
 *  Copyright (c) 2024-2025 Mikhail Knyazhev <markus621@yandex.ru>. All rights reserved.
 *  Use of this source code is governed by a BSD 3-Clause license that can be found in the LICENSE file.
 */

package listen

import (
	"net"
	"time"

	"go.osspkg.com/errors"
)

type KeepAlive struct {
	Enable   bool
	Period   time.Duration
	Interval time.Duration
	Count    int
}

func SetKeepAlive(c net.Conn, ka KeepAlive) error {
	tc, ok := c.(*net.TCPConn)
	if !ok {
		return nil
	}
	if !ka.Enable {
		return tc.SetKeepAlive(false)
	}
	if err := tc.SetKeepAlive(true); err != nil {
		return err
	}
	var err error
	if ka.Period > 0 {
		err = tc.SetKeepAlivePeriod(ka.Period)
	}
	return errors.Wrap(err, setKeepAliveProbes(tc, ka.Interval, ka.Count))
}
