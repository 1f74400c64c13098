package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScenesCommand(t *testing.T) {
	app := newApp()
	var buf bytes.Buffer
	app.Writer = &buf
	if err := app.Run([]string{"lighttransport", "scenes"}); err != nil {
		t.Fatalf("scenes failed: %v", err)
	}
	for _, name := range []string{"cornell", "environment", "fog", "smoke", "sphere"} {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("scene list is missing %q:\n%s", name, buf.String())
		}
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "frames", "sphere.png")

	tests := []struct {
		name    string
		args    []string
		files   []string
		wantErr bool
	}{
		{
			name:  "png and compressed pfm",
			args:  []string{"--scene", "sphere", "--out", out, "--pfm", "--zstd"},
			files: []string{out, filepath.Join(dir, "frames", "sphere.pfm.zst")},
		},
		{
			name:  "volumetric",
			args:  []string{"--scene", "fog", "--renderer", "volpt", "--max-length", "3", "--out", filepath.Join(dir, "fog.pfm")},
			files: []string{filepath.Join(dir, "fog.pfm")},
		},
		{
			name:    "unknown scene",
			args:    []string{"--scene", "teapot", "--out", filepath.Join(dir, "teapot.png")},
			wantErr: true,
		},
		{
			name:    "invalid mode",
			args:    []string{"--scene", "sphere", "--mode", "bidir", "--out", filepath.Join(dir, "bidir.png")},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"lighttransport", "render", "--width", "8", "--height", "6", "--spp", "1", "--workers", "2"}, tt.args...)
			err := newApp().Run(args)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("render failed: %v", err)
			}
			for _, f := range tt.files {
				if st, err := os.Stat(f); err != nil || st.Size() == 0 {
					t.Errorf("expected non-empty output %s: %v", f, err)
				}
			}
		})
	}
}
