package trs

import "github.com/StefanD986/java-trsfile/trace"

// Save is a convenience wrapper: open path for writing, add every trace
// in traces in order, then close.
func Save(path string, traces []trace.Trace, opts ...Option) error {
	w, err := OpenWriter(path, opts...)
	if err != nil {
		return err
	}
	for _, t := range traces {
		if err := w.Add(t); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}
