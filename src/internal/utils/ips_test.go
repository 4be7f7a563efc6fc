package utils

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{name: "remote addr", remoteAddr: "192.168.1.5:1234", expected: "192.168.1.5"},
		{name: "forwarded for ignored", remoteAddr: "8.8.8.8:1", headers: map[string]string{"X-Forwarded-For": "127.0.0.1, 10.2.2.2"}, expected: "8.8.8.8"},
		{name: "real ip ignored", remoteAddr: "8.8.8.8:1", headers: map[string]string{"X-Real-IP": "10.3.3.3"}, expected: "8.8.8.8"},
		{name: "no port", remoteAddr: "192.168.1.6", expected: "192.168.1.6"},
		{name: "ipv6", remoteAddr: "[::1]:8080", expected: "::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := ClientIP(req); got != tt.expected {
				t.Errorf("ClientIP() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip       string
		expected bool
	}{
		{"10.0.0.1", true},
		{"172.16.5.4", true},
		{"172.32.0.1", false},
		{"192.168.1.1", true},
		{"127.0.0.1", true},
		{"8.8.8.8", false},
		{"::1", true},
		{"fd00::1", true},
		{"fe80::1", true},
		{"2001:4860:4860::8888", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			if got := IsPrivateIP(net.ParseIP(tt.ip)); got != tt.expected {
				t.Errorf("IsPrivateIP(%s) = %v, want %v", tt.ip, got, tt.expected)
			}
		})
	}

	if IsPrivateIP(nil) {
		t.Error("Expected nil IP to be rejected")
	}
}
