// Copyright 2024 BINARY Members
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bench

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/DELTA-GR0UP/deltamin/pkg/bufferpool"
	"github.com/DELTA-GR0UP/deltamin/pkg/utils"
)

// RecordLog is an append-only binary log of Records, adapted from the
// teacher's wal package: one length-prefixed, s2-compressed,
// thrift-encoded Record per entry. The harness does not interpret the
// records it persists (spec.md §4.8); it only appends and, on request,
// replays them.
type RecordLog struct {
	fd   *os.File
	path string
}

// Create opens a fresh record log file under dir.
func Create(dir string) (*RecordLog, error) {
	path := filepath.Join(dir, "bench.rlog")
	fd, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create record log: %w", err)
	}
	return &RecordLog{fd: fd, path: path}, nil
}

// Open reopens an existing record log file for append and replay.
func Open(path string) (*RecordLog, error) {
	fd, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open record log: %w", err)
	}
	return &RecordLog{fd: fd, path: path}, nil
}

// Write appends records to the log, each as a compressed, length-prefixed
// thrift payload.
func (l *RecordLog) Write(records ...Record) error {
	buf := bufferpool.Pool.Get()
	defer bufferpool.Pool.Put(buf)

	for i := range records {
		encoded, err := utils.TMarshal(&records[i])
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}

		compressed := bufferpool.Pool.Get()
		if err := utils.Compress(bytes.NewReader(encoded), compressed); err != nil {
			bufferpool.Pool.Put(compressed)
			return fmt.Errorf("compress record: %w", err)
		}

		if err := binary.Write(buf, binary.LittleEndian, uint32(compressed.Len())); err != nil {
			bufferpool.Pool.Put(compressed)
			return err
		}
		buf.Write(compressed.Bytes())
		bufferpool.Pool.Put(compressed)
	}

	if _, err := l.fd.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write record log: %w", err)
	}
	return nil
}

// Read replays every record currently persisted in the log, in append
// order.
func (l *RecordLog) Read() ([]Record, error) {
	if _, err := l.fd.Seek(0, os.SEEK_SET); err != nil {
		return nil, err
	}

	var records []Record
	for {
		var size uint32
		if err := binary.Read(l.fd, binary.LittleEndian, &size); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read record length: %w", err)
		}

		compressed := make([]byte, size)
		if _, err := io.ReadFull(l.fd, compressed); err != nil {
			return nil, fmt.Errorf("read record payload: %w", err)
		}

		decompressed := bufferpool.Pool.Get()
		if err := utils.Decompress(bytes.NewReader(compressed), decompressed); err != nil {
			bufferpool.Pool.Put(decompressed)
			return nil, fmt.Errorf("decompress record: %w", err)
		}

		var rec Record
		err := utils.TUnmarshal(decompressed.Bytes(), &rec)
		bufferpool.Pool.Put(decompressed)
		if err != nil {
			return nil, fmt.Errorf("unmarshal record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Close closes the underlying file without deleting it.
func (l *RecordLog) Close() error {
	return l.fd.Close()
}

// Delete closes and removes the log file from disk.
func (l *RecordLog) Delete() error {
	if err := l.fd.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}
	return os.Remove(l.path)
}
