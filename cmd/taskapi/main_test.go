package main

import (
	"testing"

	"github.com/sandeepkv93/taskapi/internal/config"
)

func TestServerURL(t *testing.T) {
	cases := []struct {
		addr string
		want string
	}{
		{addr: ":8080", want: "localhost:8080"},
		{addr: "127.0.0.1:9000", want: "127.0.0.1:9000"},
		{addr: "example.com:8080", want: "example.com:8080"},
	}
	for _, tc := range cases {
		cfg := config.Config{Server: config.Server{Addr: tc.addr}}
		if got := serverURL(cfg); got != tc.want {
			t.Errorf("serverURL(%q) = %q, want %q", tc.addr, got, tc.want)
		}
	}
}

func TestDoneMarkerNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if got := doneMarker(false); got != "[ ]" {
		t.Errorf("doneMarker(false) = %q, want %q", got, "[ ]")
	}
	if got := doneMarker(true); got != "[x]" {
		t.Errorf("doneMarker(true) = %q, want %q", got, "[x]")
	}
}
