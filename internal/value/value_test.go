// Copyright 2019 CUE Authors
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

package value_test

import (
	"encoding/json"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/efinauri/strql/internal/value"
)

func TestMarshalString(t *testing.T) {
	v := value.NewString("hello")
	b, err := json.Marshal(v)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(string(b), `"hello"`))
}

func TestMarshalEmptyObject(t *testing.T) {
	v := value.NewObject()
	b, err := json.Marshal(v)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(string(b), `{}`))
}

func TestMarshalEmptyArray(t *testing.T) {
	v := value.NewArray()
	b, err := json.Marshal(v)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(string(b), `[]`))
}

func TestMarshalNilValue(t *testing.T) {
	var v *value.Value
	b, err := v.MarshalJSON()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(string(b), `{}`))
}

func TestFieldKeysSortedDeterministically(t *testing.T) {
	v := value.NewObject()
	v.SetField("zeta", value.NewString("z"))
	v.SetField("alpha", value.NewString("a"))
	v.SetField("mid", value.NewString("m"))
	b, err := json.Marshal(v)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(string(b), `{"alpha":"a","mid":"m","zeta":"z"}`))
}

func TestFieldCreatesEmptyObjectOnFirstAccess(t *testing.T) {
	v := value.NewObject()
	child := v.Field("nested")
	qt.Assert(t, qt.Equals(child.Kind, value.KindObject))
	qt.Assert(t, qt.IsTrue(v.HasField("nested")))
	qt.Assert(t, qt.IsFalse(v.HasField("missing")))
}

func TestAppendBuildsArray(t *testing.T) {
	v := value.NewArray()
	v.Append(value.NewString("a"))
	v.Append(value.NewString("b"))
	b, err := json.Marshal(v)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(string(b), `["a","b"]`))
}

func TestNestedObjectInArray(t *testing.T) {
	root := value.NewObject()
	arr := value.NewArray()
	obj := value.NewObject()
	obj.SetField("name", value.NewString("Alice"))
	arr.Append(obj)
	root.SetField("people", arr)
	b, err := json.Marshal(root)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(string(b), `{"people":[{"name":"Alice"}]}`))
}

func TestFieldPanicsOnNonObject(t *testing.T) {
	v := value.NewString("s")
	defer func() {
		qt.Assert(t, qt.IsTrue(recover() != nil))
	}()
	v.Field("x")
}

func TestAppendPanicsOnNonArray(t *testing.T) {
	v := value.NewObject()
	defer func() {
		qt.Assert(t, qt.IsTrue(recover() != nil))
	}()
	v.Append(value.NewString("x"))
}
