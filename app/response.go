package main

import (
	"strconv"
)

// CRLF \r\n 是两个字符组成的序列：
// \r：carriage return，中文通常叫 回车
// \n：line feed，中文通常叫 换行
const CRLF = "\r\n"

// Status 状态码和对应的原因短语
type Status struct {
	Code   int
	Reason string
}

func (s Status) String() string {
	return strconv.Itoa(s.Code) + " " + s.Reason
}

var (
	StatusOK                  = Status{200, "OK"}
	StatusFound               = Status{302, "Found"}
	StatusForbidden           = Status{403, "Forbidden"}
	StatusNotFound            = Status{404, "Not Found"}
	StatusInternalServerError = Status{500, "Internal Server Error"}
)

// Response 一次请求对应的响应，构建后立即写入连接
type Response struct {
	Status        Status
	ContentType   string // 为空则不输出
	ContentLength int    // 小于 0 则不输出
	Location      string // 为空则不输出
	Body          []byte
}

// newResponse 返回只有状态行的响应
func newResponse(status Status) Response {
	return Response{Status: status, ContentLength: -1}
}

// Header 生成 HTTP/1.0 响应头：状态行 + 可选头部 + 空行
// 头部顺序固定为 Content-Type、Content-Length、Location
func (r Response) Header() []byte {
	buf := make([]byte, 0, 128)
	buf = append(buf, "HTTP/1.0 "...)
	buf = append(buf, r.Status.String()...)
	buf = append(buf, CRLF...)
	if r.ContentType != "" {
		buf = append(buf, "Content-Type: "...)
		buf = append(buf, r.ContentType...)
		buf = append(buf, CRLF...)
	}
	if r.ContentLength >= 0 {
		buf = append(buf, "Content-Length: "...)
		buf = strconv.AppendInt(buf, int64(r.ContentLength), 10)
		buf = append(buf, CRLF...)
	}
	if r.Location != "" {
		buf = append(buf, "Location: "...)
		buf = append(buf, r.Location...)
		buf = append(buf, CRLF...)
	}
	return append(buf, CRLF...)
}

// Bytes 返回完整报文（头部 + 正文），用于一次性写出
func (r Response) Bytes() []byte {
	header := r.Header()
	if len(r.Body) == 0 {
		return header
	}
	out := make([]byte, 0, len(header)+len(r.Body))
	out = append(out, header...)
	return append(out, r.Body...)
}
