// SPDX-License-Identifier: MPL-2.0

// Package benchmark provides benchmarks for PGO profile generation.
// They cover the hot paths of a routec run:
//   - route file decoding for each supported format
//   - include resolution and tree splicing
//   - route compilation and JSON encoding
//   - summary rendering
//
// To generate a profile, run:
//
//	go test -run=^$ -bench=. -cpuprofile=default.pgo ./internal/benchmark
package benchmark
