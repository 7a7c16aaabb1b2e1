package main

import (
	"strings"
	"unicode/utf8"
)

// RequestLine 请求行的解析结果（不依赖 net/http）
// OK 为 false 时其余字段无意义
type RequestLine struct {
	OK      bool
	Method  string
	Target  string
	Version string
}

// ValidateRequest 解析原始请求的第一行
// 只接受 "GET <target> HTTP/<version>"，其余情况一律返回 OK=false，不返回错误
func ValidateRequest(raw []byte) RequestLine {
	// 读取的字节必须是合法的 UTF-8
	if !utf8.Valid(raw) {
		return RequestLine{}
	}
	line, _, _ := strings.Cut(string(raw), CRLF)
	// 严格按单个空格切分，连续空格会产生空字段
	parts := strings.Split(line, " ")
	if len(parts) != 3 {
		return RequestLine{}
	}
	method, target, version := parts[0], parts[1], parts[2]
	if method != "GET" || !strings.HasPrefix(version, "HTTP/") {
		return RequestLine{}
	}
	return RequestLine{
		OK:      true,
		Method:  method,
		Target:  target,
		Version: version,
	}
}
