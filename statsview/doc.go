// Package statsview serves live runtime charts of the emulator process, heap,
// goroutines and GC pauses among them, using github.com/go-echarts/statsview.
//
// The server is only compiled in with the statsview build tag:
//
//	go build -tags statsview ./cmd/chip8
//
// Without the tag Start does nothing and Available reports false.
package statsview
