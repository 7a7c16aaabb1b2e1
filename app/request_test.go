package main

import (
	"testing"
)

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		input  string
		ok     bool
		target string
	}{
		{"GET / HTTP/1.1\r\n\r\n", true, "/"},
		{"GET /index.html HTTP/1.0\r\nHost: localhost\r\n\r\n", true, "/index.html"},
		{"GET /a/b.txt HTTP/2\r\n", true, "/a/b.txt"},
		{"GET /x HTTP/1.1", true, "/x"},
		{"POST / HTTP/1.1\r\n\r\n", false, ""},
		{"get / HTTP/1.1\r\n\r\n", false, ""},
		{"GET / http/1.1\r\n\r\n", false, ""},
		{"GET / FTP/1.1\r\n\r\n", false, ""},
		{"GET /\r\n\r\n", false, ""},
		{"GET / HTTP/1.1 extra\r\n\r\n", false, ""},
		{"GET  / HTTP/1.1\r\n\r\n", false, ""},
		{"GET\t/\tHTTP/1.1\r\n\r\n", false, ""},
		{"\r\nGET / HTTP/1.1\r\n", false, ""},
		{"", false, ""},
		{"GET /\xff HTTP/1.1\r\n\r\n", false, ""},
	}

	for idx, test := range tests {
		recv := ValidateRequest([]byte(test.input))
		if recv.OK != test.ok || recv.Target != test.target {
			t.Errorf("#%d: recv=(%v, %q), expect=(%v, %q)", idx, recv.OK, recv.Target, test.ok, test.target)
		}
	}
}

func TestValidateRequestFields(t *testing.T) {
	req := ValidateRequest([]byte("GET /logo.jpg HTTP/1.1\r\nAccept: */*\r\n\r\n"))
	if !req.OK {
		t.Fatal("expect valid request")
	}
	if req.Method != "GET" || req.Target != "/logo.jpg" || req.Version != "HTTP/1.1" {
		t.Errorf("recv=%+v", req)
	}
}
