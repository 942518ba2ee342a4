package dataio

import "io"

// Writer is a writer that can write both individual bytes and sequences
// of bytes, mirroring Reader.
type Writer interface {
	io.Writer
	io.ByteWriter
}

// MakeWriter adapts w into a Writer, wrapping it only if it does not
// already implement ByteWriter.
func MakeWriter(w io.Writer) Writer {
	if dw, ok := w.(Writer); ok {
		return dw
	}
	return &simulatedWriter{w}
}

type simulatedWriter struct {
	io.Writer
}

func (w *simulatedWriter) WriteByte(c byte) error {
	d := [1]byte{c}
	switch amt, err := w.Write(d[:]); {
	case err != nil:
		return err
	case amt != 1:
		panic("invalid Writer implementation")
	default:
		return nil
	}
}
