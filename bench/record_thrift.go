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
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
)

// Record's Read/Write implement thrift.TStruct in the shape of
// Thrift-compiler-generated Go, field by field, matching the field
// ordering of the benchmark record schema (spec.md §6). frugal encodes
// and decodes against this contract (pkg/utils.TMarshal/TUnmarshal).

var _ thrift.TStruct = (*Record)(nil)

const (
	_fieldReducer         int16 = 1
	_fieldInputID         int16 = 2
	_fieldInitialSize     int16 = 3
	_fieldFinalSize       int16 = 4
	_fieldQueryCount      int16 = 5
	_fieldCacheHitCount   int16 = 6
	_fieldFailCount       int16 = 7
	_fieldPassCount       int16 = 8
	_fieldUnresolvedCount int16 = 9
	_fieldWallTimeNanos   int16 = 10
	_fieldCompletionState int16 = 11
)

func (r *Record) Write(oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin("Record"); err != nil {
		return thrift.PrependError("write struct begin error: ", err)
	}

	if err := writeString(oprot, "Reducer", _fieldReducer, r.Reducer); err != nil {
		return err
	}
	if err := writeString(oprot, "InputID", _fieldInputID, r.InputID); err != nil {
		return err
	}
	if err := writeI64(oprot, "InitialSize", _fieldInitialSize, r.InitialSize); err != nil {
		return err
	}
	if err := writeI64(oprot, "FinalSize", _fieldFinalSize, r.FinalSize); err != nil {
		return err
	}
	if err := writeI64(oprot, "QueryCount", _fieldQueryCount, r.QueryCount); err != nil {
		return err
	}
	if err := writeI64(oprot, "CacheHitCount", _fieldCacheHitCount, r.CacheHitCount); err != nil {
		return err
	}
	if err := writeI64(oprot, "FailCount", _fieldFailCount, r.FailCount); err != nil {
		return err
	}
	if err := writeI64(oprot, "PassCount", _fieldPassCount, r.PassCount); err != nil {
		return err
	}
	if err := writeI64(oprot, "UnresolvedCount", _fieldUnresolvedCount, r.UnresolvedCount); err != nil {
		return err
	}
	if err := writeI64(oprot, "WallTimeNanos", _fieldWallTimeNanos, r.WallTimeNanos); err != nil {
		return err
	}
	if err := writeString(oprot, "CompletionState", _fieldCompletionState, r.CompletionState); err != nil {
		return err
	}

	if err := oprot.WriteFieldStop(); err != nil {
		return thrift.PrependError("write field stop error: ", err)
	}
	if err := oprot.WriteStructEnd(); err != nil {
		return thrift.PrependError("write struct end error: ", err)
	}
	return nil
}

func (r *Record) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return thrift.PrependError(fmt.Sprintf("%T read struct begin error: ", r), err)
	}
	for {
		_, fieldTypeID, fieldID, err := iprot.ReadFieldBegin()
		if err != nil {
			return thrift.PrependError(fmt.Sprintf("%T read field %d begin error: ", r, fieldID), err)
		}
		if fieldTypeID == thrift.STOP {
			break
		}
		switch fieldID {
		case _fieldReducer:
			if r.Reducer, err = iprot.ReadString(); err != nil {
				return err
			}
		case _fieldInputID:
			if r.InputID, err = iprot.ReadString(); err != nil {
				return err
			}
		case _fieldInitialSize:
			if r.InitialSize, err = iprot.ReadI64(); err != nil {
				return err
			}
		case _fieldFinalSize:
			if r.FinalSize, err = iprot.ReadI64(); err != nil {
				return err
			}
		case _fieldQueryCount:
			if r.QueryCount, err = iprot.ReadI64(); err != nil {
				return err
			}
		case _fieldCacheHitCount:
			if r.CacheHitCount, err = iprot.ReadI64(); err != nil {
				return err
			}
		case _fieldFailCount:
			if r.FailCount, err = iprot.ReadI64(); err != nil {
				return err
			}
		case _fieldPassCount:
			if r.PassCount, err = iprot.ReadI64(); err != nil {
				return err
			}
		case _fieldUnresolvedCount:
			if r.UnresolvedCount, err = iprot.ReadI64(); err != nil {
				return err
			}
		case _fieldWallTimeNanos:
			if r.WallTimeNanos, err = iprot.ReadI64(); err != nil {
				return err
			}
		case _fieldCompletionState:
			if r.CompletionState, err = iprot.ReadString(); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(fieldTypeID); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}
	if err := iprot.ReadStructEnd(); err != nil {
		return thrift.PrependError(fmt.Sprintf("%T read struct end error: ", r), err)
	}
	return nil
}

func (r *Record) String() string {
	if r == nil {
		return "<nil>"
	}
	return fmt.Sprintf("Record(%+v)", *r)
}

func writeString(oprot thrift.TProtocol, name string, id int16, v string) error {
	if err := oprot.WriteFieldBegin(name, thrift.STRING, id); err != nil {
		return thrift.PrependError(fmt.Sprintf("write field begin error %d:%s: ", id, name), err)
	}
	if err := oprot.WriteString(v); err != nil {
		return err
	}
	return oprot.WriteFieldEnd()
}

func writeI64(oprot thrift.TProtocol, name string, id int16, v int64) error {
	if err := oprot.WriteFieldBegin(name, thrift.I64, id); err != nil {
		return thrift.PrependError(fmt.Sprintf("write field begin error %d:%s: ", id, name), err)
	}
	if err := oprot.WriteI64(v); err != nil {
		return err
	}
	return oprot.WriteFieldEnd()
}
