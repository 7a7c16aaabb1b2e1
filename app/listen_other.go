//go:build !unix

package main

import "net"

// 其他平台无法设置 backlog，使用系统默认值
func listen(host string, port, backlog int) (net.Listener, error) {
	return listenDefault(host, port)
}
