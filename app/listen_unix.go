//go:build unix

package main

import (
	"net"
	"os"
	"syscall"
)

// listen 手动创建 IPv4 监听 socket，以便使用配置的 backlog
// 非 IPv4 地址退回到 listenDefault
func listen(host string, port, backlog int) (net.Listener, error) {
	ip := net.ParseIP(host).To4()
	if ip == nil {
		return listenDefault(host, port)
	}

	fd, err := syscall.Socket(syscall.AF_INET, syscall.SOCK_STREAM, syscall.IPPROTO_TCP)
	if err != nil {
		return nil, os.NewSyscallError("socket", err)
	}
	syscall.CloseOnExec(fd)
	if err := syscall.SetsockoptInt(fd, syscall.SOL_SOCKET, syscall.SO_REUSEADDR, 1); err != nil {
		syscall.Close(fd)
		return nil, os.NewSyscallError("setsockopt", err)
	}
	sa := &syscall.SockaddrInet4{Port: port}
	copy(sa.Addr[:], ip)
	if err := syscall.Bind(fd, sa); err != nil {
		syscall.Close(fd)
		return nil, os.NewSyscallError("bind", err)
	}
	if err := syscall.Listen(fd, backlog); err != nil {
		syscall.Close(fd)
		return nil, os.NewSyscallError("listen", err)
	}

	// FileListener 会 dup 一份 fd，原来的随 file 一起关闭
	file := os.NewFile(uintptr(fd), "listener")
	defer file.Close()
	return net.FileListener(file)
}
