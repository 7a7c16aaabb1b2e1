package main

import (
	"bytes"
	"io"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// startTestServer 在回环地址上启动服务器，测试结束时关闭
func startTestServer(t *testing.T, cfg *Config) string {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	srv := NewServer(cfg, zerolog.Nop())
	served := make(chan error, 1)
	go func() {
		served <- srv.Serve(listener)
	}()
	t.Cleanup(func() {
		srv.Close()
		select {
		case err := <-served:
			if err != nil {
				t.Errorf("serve returned %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("serve did not return after close")
		}
	})
	return listener.Addr().String()
}

func fetch(t *testing.T, addr, request string) []byte {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(5 * time.Second))
	if _, err := conn.Write([]byte(request)); err != nil {
		t.Fatal(err)
	}
	out, err := io.ReadAll(conn)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestServeRoundTrip(t *testing.T) {
	data := make([]byte, 200*1024)
	for i := range data {
		data[i] = byte(i % 251)
	}
	cfg := newTestRoot(t, map[string]string{"big.jpg": string(data)})
	addr := startTestServer(t, cfg)

	out := fetch(t, addr, "GET /big.jpg HTTP/1.0\r\n\r\n")
	header := "HTTP/1.0 200 OK\r\nContent-Type: image/jpeg\r\nContent-Length: " + strconv.Itoa(len(data)) + "\r\n\r\n"
	if !bytes.HasPrefix(out, []byte(header)) {
		t.Fatalf("recv header=%q", out[:min(len(out), 128)])
	}
	if body := out[len(header):]; !bytes.Equal(body, data) {
		t.Errorf("body mismatch: recv %d bytes, expect %d", len(body), len(data))
	}
}

func TestServeSequential(t *testing.T) {
	cfg := newTestRoot(t, map[string]string{"index.html": "hello"})
	addr := startTestServer(t, cfg)

	expect := []string{
		"HTTP/1.0 200 OK\r\nContent-Type: text/html; charset=utf-8\r\nContent-Length: 5\r\n\r\nhello",
		"HTTP/1.0 302 Found\r\nLocation: /page2.html\r\n\r\n",
		"HTTP/1.0 500 Internal Server Error\r\n\r\n",
	}
	requests := []string{
		"GET / HTTP/1.1\r\n\r\n",
		"GET /page1.html HTTP/1.1\r\n\r\n",
		"DELETE / HTTP/1.1\r\n\r\n",
	}
	for idx, request := range requests {
		if recv := string(fetch(t, addr, request)); recv != expect[idx] {
			t.Errorf("#%d: recv=%q, expect=%q", idx, recv, expect[idx])
		}
	}
}

func TestServeConcurrent(t *testing.T) {
	cfg := newTestRoot(t, map[string]string{"index.html": "hello"})
	cfg.Concurrent = true
	addr := startTestServer(t, cfg)

	// 一个不发送数据的客户端不应阻塞其他客户端
	idle, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatal(err)
	}
	defer idle.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conn, err := net.Dial("tcp", addr)
			if err != nil {
				t.Error(err)
				return
			}
			defer conn.Close()
			conn.SetDeadline(time.Now().Add(5 * time.Second))
			conn.Write([]byte("GET /index.html HTTP/1.1\r\n\r\n"))
			out, err := io.ReadAll(conn)
			if err != nil {
				t.Error(err)
				return
			}
			if !bytes.HasSuffix(out, []byte("\r\n\r\nhello")) {
				t.Errorf("recv=%q", out)
			}
		}()
	}
	wg.Wait()
}

func TestServerCloseBeforeServe(t *testing.T) {
	srv := NewServer(&Config{}, zerolog.Nop())
	if err := srv.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}
