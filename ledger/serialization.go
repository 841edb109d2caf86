// Copyright 2025 Poiesic Systems
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


package ledger

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MarshalRunRecord serializes a RunRecord to bytes.
func MarshalRunRecord(r *RunRecord) []byte {
	size := ord.String.Size(r.BatchID) +
		varint.Int64.Size(r.StartedAt.UnixMicro()) +
		varint.Int64.Size(r.FinishedAt.UnixMicro()) +
		ord.String.Size(r.SourceRoot) +
		ord.String.Size(r.OutputRoot) +
		varint.Int.Size(r.Succeeded) +
		varint.Int.Size(r.Failed) +
		varint.Int.Size(r.Errors) +
		varint.Int.Size(r.Warnings)
	buf := make([]byte, size)
	n := ord.String.Marshal(r.BatchID, buf)
	n += varint.Int64.Marshal(r.StartedAt.UnixMicro(), buf[n:])
	n += varint.Int64.Marshal(r.FinishedAt.UnixMicro(), buf[n:])
	n += ord.String.Marshal(r.SourceRoot, buf[n:])
	n += ord.String.Marshal(r.OutputRoot, buf[n:])
	n += varint.Int.Marshal(r.Succeeded, buf[n:])
	n += varint.Int.Marshal(r.Failed, buf[n:])
	n += varint.Int.Marshal(r.Errors, buf[n:])
	varint.Int.Marshal(r.Warnings, buf[n:])
	return buf
}

// UnmarshalRunRecord deserializes a RunRecord from bytes.
func UnmarshalRunRecord(bs []byte) (*RunRecord, error) {
	var (
		r RunRecord
		n int
	)
	batchID, c, err := ord.String.Unmarshal(bs)
	if err != nil {
		return nil, err
	}
	r.BatchID = batchID
	n += c

	started, c, err := varint.Int64.Unmarshal(bs[n:])
	if err != nil {
		return nil, err
	}
	r.StartedAt = time.UnixMicro(started).UTC()
	n += c

	finished, c, err := varint.Int64.Unmarshal(bs[n:])
	if err != nil {
		return nil, err
	}
	r.FinishedAt = time.UnixMicro(finished).UTC()
	n += c

	r.SourceRoot, c, err = ord.String.Unmarshal(bs[n:])
	if err != nil {
		return nil, err
	}
	n += c
	r.OutputRoot, c, err = ord.String.Unmarshal(bs[n:])
	if err != nil {
		return nil, err
	}
	n += c

	r.Succeeded, c, err = varint.Int.Unmarshal(bs[n:])
	if err != nil {
		return nil, err
	}
	n += c
	r.Failed, c, err = varint.Int.Unmarshal(bs[n:])
	if err != nil {
		return nil, err
	}
	n += c
	r.Errors, c, err = varint.Int.Unmarshal(bs[n:])
	if err != nil {
		return nil, err
	}
	n += c
	r.Warnings, _, err = varint.Int.Unmarshal(bs[n:])
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// MarshalFileRecord serializes a FileRecord to bytes.
func MarshalFileRecord(r *FileRecord) []byte {
	size := ord.String.Size(r.BatchID) +
		ord.String.Size(r.Department) +
		ord.String.Size(r.Filename) +
		ord.String.Size(string(r.Status)) +
		ord.String.Size(r.OutputPath) +
		varint.Int.Size(r.Rows) +
		varint.Int.Size(r.Columns) +
		varint.Uint64.Size(r.Fingerprint) +
		ord.String.Size(r.Detail)
	buf := make([]byte, size)
	n := ord.String.Marshal(r.BatchID, buf)
	n += ord.String.Marshal(r.Department, buf[n:])
	n += ord.String.Marshal(r.Filename, buf[n:])
	n += ord.String.Marshal(string(r.Status), buf[n:])
	n += ord.String.Marshal(r.OutputPath, buf[n:])
	n += varint.Int.Marshal(r.Rows, buf[n:])
	n += varint.Int.Marshal(r.Columns, buf[n:])
	n += varint.Uint64.Marshal(r.Fingerprint, buf[n:])
	ord.String.Marshal(r.Detail, buf[n:])
	return buf
}

// UnmarshalFileRecord deserializes a FileRecord from bytes.
func UnmarshalFileRecord(bs []byte) (*FileRecord, error) {
	var (
		r FileRecord
		n int
	)
	var c int
	var err error

	r.BatchID, c, err = ord.String.Unmarshal(bs)
	if err != nil {
		return nil, err
	}
	n += c
	r.Department, c, err = ord.String.Unmarshal(bs[n:])
	if err != nil {
		return nil, err
	}
	n += c
	r.Filename, c, err = ord.String.Unmarshal(bs[n:])
	if err != nil {
		return nil, err
	}
	n += c

	status, c, err := ord.String.Unmarshal(bs[n:])
	if err != nil {
		return nil, err
	}
	r.Status = FileStatus(status)
	n += c

	r.OutputPath, c, err = ord.String.Unmarshal(bs[n:])
	if err != nil {
		return nil, err
	}
	n += c
	r.Rows, c, err = varint.Int.Unmarshal(bs[n:])
	if err != nil {
		return nil, err
	}
	n += c
	r.Columns, c, err = varint.Int.Unmarshal(bs[n:])
	if err != nil {
		return nil, err
	}
	n += c
	r.Fingerprint, c, err = varint.Uint64.Unmarshal(bs[n:])
	if err != nil {
		return nil, err
	}
	n += c
	r.Detail, _, err = ord.String.Unmarshal(bs[n:])
	if err != nil {
		return nil, err
	}
	return &r, nil
}
