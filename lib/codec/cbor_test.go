// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"testing"
	"time"
)

type entry struct {
	Name   string    `cbor:"name"`
	Data   []byte    `cbor:"data"`
	Stored time.Time `cbor:"stored"`
}

func TestMarshalDeterministic(t *testing.T) {
	first, err := Marshal(map[string]int{"b": 2, "a": 1, "c": 3})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	second, err := Marshal(map[string]int{"c": 3, "a": 1, "b": 2})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("map encoding depends on insertion order: %x vs %x", first, second)
	}
}

func TestUnmarshalIgnoresUnknownFields(t *testing.T) {
	type newer struct {
		Name  string `cbor:"name"`
		Extra int    `cbor:"extra"`
	}
	data, err := Marshal(newer{Name: "cover", Extra: 7})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded entry
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Name != "cover" {
		t.Errorf("Name = %q, want %q", decoded.Name, "cover")
	}
}

func TestTimePreserved(t *testing.T) {
	stored := time.Date(2026, 3, 14, 15, 9, 26, 535897932, time.UTC)
	data, err := Marshal(entry{Name: "cover", Data: []byte{1, 2}, Stored: stored})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded entry
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !decoded.Stored.Equal(stored) {
		t.Errorf("Stored = %v, want %v", decoded.Stored, stored)
	}
	if !bytes.Equal(decoded.Data, []byte{1, 2}) {
		t.Errorf("Data = %v", decoded.Data)
	}
}

func TestUnmarshalRejectsDuplicateKeys(t *testing.T) {
	// {"name": "a", "name": "b"}
	data := []byte{0xa2, 0x64, 'n', 'a', 'm', 'e', 0x61, 'a', 0x64, 'n', 'a', 'm', 'e', 0x61, 'b'}

	var decoded entry
	if err := Unmarshal(data, &decoded); err == nil {
		t.Errorf("Unmarshal accepted duplicate keys, decoded %+v", decoded)
	}
}
