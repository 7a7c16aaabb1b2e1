package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

func main() {
	// 解析命令行参数
	// 示例：./server -directory /tmp/www -port 8080
	cfg, err := ParseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "配置错误: %v\n", err)
		os.Exit(2)
	}

	log := newLogger(os.Stderr, cfg.LogLevel)
	srv := NewServer(&cfg, log)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info().Str("signal", sig.String()).Msg("收到退出信号")
		srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("服务器启动失败")
	}
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Server 单线程的静态文件服务器
type Server struct {
	cfg      *Config
	resolver *Resolver
	log      zerolog.Logger

	mu       sync.Mutex
	listener net.Listener
}

// NewServer 创建服务器，cfg 在之后不允许再修改
func NewServer(cfg *Config, log zerolog.Logger) *Server {
	return &Server{
		cfg:      cfg,
		resolver: NewResolver(cfg),
		log:      log,
	}
}

// ListenAndServe 绑定配置的地址并开始服务
func (s *Server) ListenAndServe() error {
	listener, err := listen(s.cfg.Host, s.cfg.Port, s.cfg.Backlog)
	if err != nil {
		return fmt.Errorf("绑定端口失败: %w", err)
	}
	s.log.Info().Str("addr", s.cfg.Addr()).Int("backlog", s.cfg.Backlog).Msg("开始监听")
	return s.Serve(listener)
}

// Serve 循环接受连接，默认在当前 goroutine 中逐个处理
// 监听器被关闭后返回 nil
func (s *Server) Serve(listener net.Listener) error {
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()
	defer listener.Close()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.log.Info().Msg("监听器已关闭，停止接受新连接")
				return nil
			}
			s.log.Error().Err(err).Msg("接受连接时出错")
			continue
		}
		if s.cfg.Concurrent {
			go s.handleConnection(conn)
		} else {
			s.handleConnection(conn)
		}
	}
}

// Close 关闭监听器，使 Serve 返回；正在处理的连接不受影响
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

// listenDefault 使用系统默认的 backlog 监听
func listenDefault(host string, port int) (net.Listener, error) {
	listenConfig := new(net.ListenConfig)
	return listenConfig.Listen(context.Background(), "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
}
