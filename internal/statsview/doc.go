// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package statsview runs an optional local HTTP server with runtime
// statistics of the simulator process. The server is only built with the
// statsview build tag:
//
//	go build -tags statsview ./cmd/nandsim
//
// Graphs are then available at localhost:12601/debug/statsview and pprof
// data at localhost:12601/debug/pprof/.
//
package statsview
