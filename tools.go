//go:build tools

// Package tools pins the development binaries used alongside the server:
// goose for ad-hoc migrations outside devtool, swag to regenerate docs/,
// mockery for interface mocks and golangci-lint for CI.
package tools

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "github.com/pressly/goose/v3/cmd/goose"
	_ "github.com/swaggo/swag/cmd/swag"
	_ "github.com/vektra/mockery/v2"
)
