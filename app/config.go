package main

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Config 服务器的静态配置，启动时构建一次，之后只读
type Config struct {
	Host       string        // 监听地址
	Port       int           // 监听端口
	Root       string        // 静态文件根目录，请求路径相对于它解析
	Timeout    time.Duration // 每个连接的读写超时
	Backlog    int           // accept 队列深度
	ReadSize   int           // 单次读取请求的字节数上限
	LogLevel   zerolog.Level // 日志级别
	Concurrent bool          // 为 true 时每个连接一个 goroutine

	DefaultDocument string              // 请求 "/" 时替换成的路径
	Redirects       map[string]string   // 源路径 -> 目标路径 (302)
	Forbidden       map[string]struct{} // 禁止访问的相对文件名 (403)
	MIMETypes       map[string]string   // 扩展名 -> Content-Type
	DefaultType     string              // 未知扩展名使用的 Content-Type
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Host:     "0.0.0.0",
		Port:     54321,
		Root:     ".",
		Timeout:  10 * time.Second,
		Backlog:  10,
		ReadSize: 1024,
		LogLevel: zerolog.InfoLevel,

		DefaultDocument: "/index.html",
		Redirects: map[string]string{
			"/page1.html": "/page2.html",
		},
		Forbidden: map[string]struct{}{
			"forbidden.html": {},
		},
		MIMETypes: map[string]string{
			"html": "text/html; charset=utf-8",
			"txt":  "text/html; charset=utf-8",
			"jpg":  "image/jpeg",
			"js":   "text/javascript; charset=UTF-8",
			"css":  "text/css",
		},
		DefaultType: "application/octet-stream",
	}
}

// Addr 返回 host:port 形式的监听地址
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate 检查配置是否可用
func (c Config) Validate() error {
	switch {
	case c.DefaultDocument == "":
		return errors.New("default document is empty")
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("invalid port %d", c.Port)
	case c.Backlog <= 0:
		return fmt.Errorf("invalid backlog %d", c.Backlog)
	case c.ReadSize <= 0:
		return fmt.Errorf("invalid read size %d", c.ReadSize)
	case c.Timeout <= 0:
		return fmt.Errorf("invalid timeout %s", c.Timeout)
	case c.DefaultType == "":
		return errors.New("default content type is empty")
	}
	return nil
}

// ParseFlags 用命令行参数覆盖默认配置
// 示例：./server -directory /tmp/www -port 8080
func ParseFlags(args []string) (Config, error) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&cfg.Host, "host", cfg.Host, "listen address")
	fs.IntVar(&cfg.Port, "port", cfg.Port, "listen port")
	fs.StringVar(&cfg.Root, "directory", cfg.Root, "directory to serve files from")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-connection read/write timeout")
	fs.IntVar(&cfg.Backlog, "backlog", cfg.Backlog, "listen backlog")
	fs.BoolVar(&cfg.Concurrent, "concurrent", cfg.Concurrent, "handle each connection in its own goroutine")
	level := fs.String("log-level", cfg.LogLevel.String(), "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		return Config{}, fmt.Errorf("invalid log level: %w", err)
	}
	cfg.LogLevel = lvl
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
