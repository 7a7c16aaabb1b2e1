package main

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/rs/zerolog"
)

// handleConnection 处理一个已接受的连接：读取、校验、解析、响应、关闭
// 任何错误都只结束当前连接，不会影响 accept 循环
func (s *Server) handleConnection(conn net.Conn) {
	log := s.log.With().Str("remote", conn.RemoteAddr().String()).Logger()
	log.Debug().Msg("客户端已连接")
	defer func() {
		if v := recover(); v != nil {
			log.Error().Interface("panic", v).Msg("处理客户端请求时发生 panic")
		}
		log.Debug().Msg("关闭连接")
		if err := conn.Close(); err != nil {
			log.Debug().Err(err).Msg("关闭连接时出错")
		}
	}()

	if err := s.serveConn(conn, log); err != nil {
		log.Error().Err(err).Msg("处理客户端请求出错")
	}
}

func (s *Server) serveConn(conn net.Conn, log zerolog.Logger) error {
	if err := conn.SetDeadline(time.Now().Add(s.cfg.Timeout)); err != nil {
		return fmt.Errorf("设置超时失败: %w", err)
	}

	// 只读一次，超过缓冲区的部分直接丢弃
	buf := make([]byte, s.cfg.ReadSize)
	n, err := conn.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("读取请求失败: %w", err)
	}

	var resp Response
	if req := ValidateRequest(buf[:n]); req.OK {
		log.Info().Str("target", req.Target).Msg("收到合法的 HTTP 请求")
		resp = s.resolver.Resolve(req.Target)
	} else {
		log.Warn().Int("bytes", n).Msg("不是合法的 HTTP 请求")
		resp = newResponse(StatusInternalServerError)
	}

	written, err := conn.Write(resp.Bytes())
	if err != nil {
		return fmt.Errorf("发送响应失败: %w", err)
	}
	log.Info().Int("status", resp.Status.Code).Int("bytes", written).Msg("响应已发送")
	return nil
}
