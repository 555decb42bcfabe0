package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mapping.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRun(t *testing.T) {
	valid := writeFile(t, `
mappings:
  - source: store.OrderItem
    target: warehouse.Line
    121:
      Name: Description
`)

	invalid := writeFile(t, `
profiles:
  - name: reports
mappings:
  - source: store.Order
    target: warehouse.Shipment
    profile: report
`)

	warned := writeFile(t, `
mappings:
  - source: store.Order
    target: warehouse.Shipment
    fields:
      - target: PackedBy
        source: Customer.FullName
    ignore: [PackedBy]
`)

	tests := []struct {
		name     string
		args     []string
		code     int
		contains string
	}{
		{name: "no files", args: nil, code: exitUsage},
		{name: "unknown flag", args: []string{"-nope"}, code: exitUsage},
		{name: "valid", args: []string{valid}, code: exitOK},
		{name: "missing file", args: []string{filepath.Join(t.TempDir(), "missing.yaml")}, code: exitInvalid},
		{name: "invalid", args: []string{valid, invalid}, code: exitInvalid, contains: "did you mean reports?"},
		{name: "warning", args: []string{warned}, code: exitOK, contains: "warning: "},
		{name: "strict warning", args: []string{"-strict", warned}, code: exitInvalid},
		{name: "normalize", args: []string{"-normalize", valid}, code: exitOK, contains: "- target: Description\n        source: Name\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			code := run(tt.args, &stdout, &stderr)
			assert.Equal(t, tt.code, code, "stdout: %s\nstderr: %s", stdout.String(), stderr.String())

			if tt.contains != "" {
				assert.Contains(t, stdout.String(), tt.contains)
			}
		})
	}
}
