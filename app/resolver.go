package main

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolver 根据配置表把请求路径映射为响应
// 配置在构建后不再修改，可以被多个连接同时使用
type Resolver struct {
	cfg *Config
}

// NewResolver 创建一个新的解析器
func NewResolver(cfg *Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve 按固定顺序处理：默认文档替换 -> 重定向 -> 禁止访问 -> 读取文件
//
// 注意：路径没有做任何越界检查，根目录下（以及通过 ".." 能到达的）任何文件
// 只要不在禁止列表里都可以被读取。
func (r *Resolver) Resolve(target string) Response {
	if target == "/" {
		target = r.cfg.DefaultDocument
	}

	if location, ok := r.cfg.Redirects[target]; ok {
		resp := newResponse(StatusFound)
		resp.Location = location
		return resp
	}

	relPath := strings.TrimLeft(target, "/")
	if _, ok := r.cfg.Forbidden[relPath]; ok {
		return newResponse(StatusForbidden)
	}

	data, ok := r.readFile(relPath)
	if !ok {
		return newResponse(StatusNotFound)
	}

	resp := newResponse(StatusOK)
	resp.ContentType = r.ContentType(relPath)
	resp.ContentLength = len(data)
	resp.Body = data
	return resp
}

// readFile 读取普通文件的全部内容，任何失败都视为不存在
func (r *Resolver) readFile(relPath string) ([]byte, bool) {
	filePath := filepath.Join(r.cfg.Root, relPath)
	info, err := os.Stat(filePath)
	if err != nil || !info.Mode().IsRegular() {
		return nil, false
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, false
	}
	return data, true
}

// ContentType 取最后一个 '.' 之后的扩展名查表，区分大小写
func (r *Resolver) ContentType(relPath string) string {
	i := strings.LastIndexByte(relPath, '.')
	if i < 0 {
		return r.cfg.DefaultType
	}
	if contentType, ok := r.cfg.MIMETypes[relPath[i+1:]]; ok {
		return contentType
	}
	return r.cfg.DefaultType
}
