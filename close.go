package xdmfgo

// Close flushes the storage backend and releases its resources. The
// document needs no finalization because every operation leaves a complete
// document on disk.
//
// It is safe to call Close multiple times; operations after Close return
// ErrClosed.
func (w *TimeSeriesWriter) Close() error {
	if w == nil || w.closed {
		return nil
	}
	w.closed = true

	var firstErr error
	if err := w.backend.Flush(); err != nil && firstErr == nil {
		firstErr = translateError("close", w.docPath, err)
	}
	if err := w.backend.Close(); err != nil && firstErr == nil {
		firstErr = translateError("close", w.docPath, err)
	}

	w.logger.LogClose(w.doc.Steps(), firstErr)

	return firstErr
}
