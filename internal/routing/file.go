package routing

import (
	"fieldmon/internal/global"
	"fieldmon/internal/record"
	"fieldmon/internal/severity"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// Rotating file destination. Only the listener goroutine emits, so writes
// need no locking.
type FileSink struct {
	name     string
	level    severity.Level
	path     string
	maxBytes int64
	sink     *os.File
	written  int64
}

// Creates a file sink from a resolved handler config
func NewFileSink(name string, handler Handler) (sink *FileSink, err error) {
	if handler.Filename == "" {
		err = fmt.Errorf("%w: file handler '%s' has no resolved filename", ErrConfig, name)
		return
	}

	maxBytes := handler.MaxFileBytes
	if maxBytes == 0 {
		maxBytes = global.DefaultMaxLogFileBytes
	}

	file, err := os.OpenFile(handler.Filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
	if err != nil {
		err = fmt.Errorf("%w: failed to open log file for handler '%s': %v", ErrConfig, name, err)
		return
	}

	written := int64(0)
	info, statErr := file.Stat()
	if statErr == nil {
		written = info.Size()
	}

	sink = &FileSink{
		name:     name,
		level:    handler.Level,
		path:     handler.Filename,
		maxBytes: maxBytes,
		sink:     file,
		written:  written,
	}
	return
}

func (sink *FileSink) Name() (name string) {
	name = sink.name
	return
}

func (sink *FileSink) Level() (level severity.Level) {
	level = sink.level
	return
}

func (sink *FileSink) Emit(rec record.Record) (err error) {
	line := rec.Format() + "\n"

	data := []byte(line)
	for len(data) > 0 {
		var n int
		n, err = sink.sink.Write(data)
		if err != nil {
			return
		}
		data = data[n:] // remove the bytes that were successfully written
	}
	sink.written += int64(len(line))

	if sink.written >= sink.maxBytes {
		err = sink.rotate()
	}
	return
}

// Moves the current file aside as a gzipped previous generation and starts
// a fresh one. One previous generation is kept.
func (sink *FileSink) rotate() (err error) {
	err = sink.sink.Close()
	if err != nil {
		return
	}

	rotatedPath := sink.path + ".1"
	err = os.Rename(sink.path, rotatedPath)
	if err != nil {
		// Keep writing to the oversized file rather than wedge the sink
		err = fmt.Errorf("failed to move log file aside: %v", err)
		file, openErr := os.OpenFile(sink.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
		if openErr != nil {
			return
		}
		sink.sink = file
		return
	}

	err = compressFile(rotatedPath, sink.path+".1.gz")
	if err != nil {
		// Keep the uncompressed generation rather than lose it
		err = fmt.Errorf("failed to compress rotated log: %v", err)
	} else {
		os.Remove(rotatedPath)
	}

	file, openErr := os.OpenFile(sink.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
	if openErr != nil {
		err = fmt.Errorf("failed to reopen log file after rotation: %v", openErr)
		return
	}
	sink.sink = file
	sink.written = 0
	return
}

func compressFile(sourcePath string, destPath string) (err error) {
	source, err := os.Open(sourcePath)
	if err != nil {
		return
	}
	defer source.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return
	}
	defer dest.Close()

	compressor := gzip.NewWriter(dest)
	_, err = io.Copy(compressor, source)
	if err != nil {
		compressor.Close()
		return
	}
	err = compressor.Close()
	return
}

// Flushes to disk and closes the file
func (sink *FileSink) Close() (err error) {
	if sink.sink == nil {
		return
	}
	syncErr := sink.sink.Sync()
	err = sink.sink.Close()
	if err == nil {
		err = syncErr
	}
	sink.sink = nil
	return
}
