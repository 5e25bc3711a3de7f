// File: json.go
// Title: Output Encoding
// Description: A JSON and CBOR safe form of Output. Flags become a sorted
//              array and options an array of [name, values] pairs sorted by
//              name, so equal outputs always encode to equal bytes.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-07
// Modified: 2025-11-14
//
// Change History:
// - 2025-11-07 v0.1.0: JSON form
// - 2025-11-14 v0.1.0: Canonical CBOR encoding for the history store

package output

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/msto63/argot/foundation/argot/token"
)

// JSON is the serializable form of an Output
type JSON struct {
	Ordered []token.Token `json:"ordered" cbor:"ordered"`
	Flags   []string      `json:"flags" cbor:"flags"`
	Options []OptionEntry `json:"options" cbor:"options"`
}

// OptionEntry is an option name and its values. It encodes as a two
// element array: ["name", ["v1", "v2"]].
type OptionEntry struct {
	_      struct{} `cbor:",toarray"`
	Name   string
	Values []string
}

// MarshalJSON encodes the entry as [name, values]
func (e OptionEntry) MarshalJSON() ([]byte, error) {
	values := e.Values
	if values == nil {
		values = []string{}
	}
	return json.Marshal([]interface{}{e.Name, values})
}

// UnmarshalJSON decodes [name, values]
func (e *OptionEntry) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("option entry: expected [name, values], got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &e.Name); err != nil {
		return fmt.Errorf("option entry name: %w", err)
	}
	if err := json.Unmarshal(pair[1], &e.Values); err != nil {
		return fmt.Errorf("option entry values: %w", err)
	}
	return nil
}

// ToJSON converts an output to its serializable form
func ToJSON(o Output) JSON {
	j := JSON{
		Ordered: append([]token.Token{}, o.Ordered...),
		Flags:   o.FlagNames(),
		Options: make([]OptionEntry, 0, len(o.Options)),
	}
	for _, name := range o.OptionNames() {
		j.Options = append(j.Options, OptionEntry{
			Name:   name,
			Values: append([]string{}, o.Options[name]...),
		})
	}
	return j
}

// FromJSON converts the serializable form back to an output. When the
// same option name appears more than once the later entry wins.
func FromJSON(j JSON) Output {
	o := Empty()
	o.Ordered = append(o.Ordered, j.Ordered...)
	for _, name := range j.Flags {
		o.Flags[name] = struct{}{}
	}
	for _, e := range j.Options {
		o.Options[e.Name] = append([]string{}, e.Values...)
	}
	return o
}

// MarshalJSON implements json.Marshaler
func (o Output) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToJSON(o))
}

// UnmarshalJSON implements json.Unmarshaler
func (o *Output) UnmarshalJSON(data []byte) error {
	var j JSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*o = FromJSON(j)
	return nil
}

var cborEncMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("output: cbor encoder options: %v", err))
	}
	return em
}

// EncodeCBOR encodes an output as canonical CBOR
func EncodeCBOR(o Output) ([]byte, error) {
	return cborEncMode.Marshal(ToJSON(o))
}

// DecodeCBOR decodes an output encoded by EncodeCBOR
func DecodeCBOR(data []byte) (Output, error) {
	var j JSON
	if err := cbor.Unmarshal(data, &j); err != nil {
		return Output{}, fmt.Errorf("decode output: %w", err)
	}
	return FromJSON(j), nil
}
