package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDescribe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.ppm")
	data := "P3\n2 1\n255\n255 0 0\n255 255 0\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := describe(&out, path); err != nil {
		t.Fatalf("describe: %v", err)
	}
	want := path + ": 2x1 maxval 255 mean 1.000 0.500 0.000\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestDescribeRejectsBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.ppm")
	if err := os.WriteFile(path, []byte("P6\n1 1\n255\n\x00\x00\x00"), 0644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	err := describe(&out, path)
	if err == nil {
		t.Fatalf("expected error for binary PPM")
	}
	if n := strings.Count(err.Error(), path); n != 1 {
		t.Errorf("path appears %d times in %q", n, err)
	}
}
