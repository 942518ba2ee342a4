// Package fmtutil contains debug-formatting helpers used by the reader's
// and writer's debug lines that dump each trace's raw data blob.
package fmtutil

import "encoding/hex"

// Hex is a byte slice that renders as a hex-dumped string.
//
// It can be used for easy lazy hex dumping of a parsed header or a
// trace's raw data blob.
type Hex []byte

func (h Hex) String() string { return hex.Dump([]byte(h)) }
