// Copyright 2023 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package apitypes

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sunyihoo/ethcodec/common"
	"github.com/sunyihoo/ethcodec/common/value"
)

// NameValueType is a very simple struct with Name, Value and Type. It's meant for simple
// json structures used to communicate signing-info about typed data with the UI
type NameValueType struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
	Typ   string      `json:"type"`
}

// Pprint returns a pretty-printed version of nvt
func (nvt *NameValueType) Pprint(depth int) string {
	output := bytes.Buffer{}
	output.WriteString(strings.Repeat(" ", depth*2))
	output.WriteString(fmt.Sprintf("%s [%s]: ", nvt.Name, nvt.Typ))
	if nvts, ok := nvt.Value.([]*NameValueType); ok {
		output.WriteString("\n")
		for _, next := range nvts {
			sublevel := next.Pprint(depth + 1)
			output.WriteString(sublevel)
		}
	} else {
		if nvt.Value != nil {
			output.WriteString(fmt.Sprintf("%q\n", nvt.Value))
		} else {
			output.WriteString("\n")
		}
	}
	return output.String()
}

// Format returns a representation of typedData, which can be easily displayed by a user-interface
// without in-depth knowledge about 712 rules
func (typedData *TypedData) Format() ([]*NameValueType, error) {
	domain, err := typedData.formatData(domainType, typedData.Domain.Value())
	if err != nil {
		return nil, err
	}
	ptype, err := typedData.formatData(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return nil, err
	}
	return []*NameValueType{
		{Name: domainType, Value: domain, Typ: "domain"},
		{Name: typedData.PrimaryType, Value: ptype, Typ: "primary type"},
	}, nil
}

func (typedData *TypedData) formatData(primaryType string, data value.Value) ([]*NameValueType, error) {
	fields, ok := typedData.fields(primaryType)
	if !ok {
		return nil, &TypedDataError{Kind: ErrUnknownType, Type: primaryType}
	}
	var output []*NameValueType
	for _, field := range fields {
		encValue, _ := data.Get(field.Name)
		item := &NameValueType{Name: field.Name, Typ: field.Type}
		switch {
		case field.isArray():
			elems, _ := encValue.Array()
			var out []*NameValueType
			for i, elem := range elems {
				sub, err := typedData.formatField(fmt.Sprintf("%d", i), field.typeName(), elem)
				if err != nil {
					return nil, err
				}
				out = append(out, sub)
			}
			item.Value = out
		default:
			sub, err := typedData.formatField(field.Name, field.Type, encValue)
			if err != nil {
				return nil, err
			}
			item.Value = sub.Value
		}
		output = append(output, item)
	}
	return output, nil
}

func (typedData *TypedData) formatField(name, encType string, encValue value.Value) (*NameValueType, error) {
	item := &NameValueType{Name: name, Typ: encType}
	if _, ok := typedData.fields(encType); ok {
		if encValue.IsNull() {
			item.Value = "<nil>"
			return item, nil
		}
		sub, err := typedData.formatData(encType, encValue)
		if err != nil {
			return nil, err
		}
		item.Value = sub
		return item, nil
	}
	s, err := formatPrimitiveValue(encType, encValue)
	if err != nil {
		return nil, err
	}
	item.Value = s
	return item, nil
}

func formatPrimitiveValue(encType string, encValue value.Value) (string, error) {
	switch {
	case encType == "address":
		s, ok := encValue.Str()
		if !ok {
			return "", fmt.Errorf("could not format value %#v as address", encValue)
		}
		return common.HexToAddress(s).String(), nil
	case encType == "bool":
		b, ok := encValue.Bool()
		if !ok {
			return "", fmt.Errorf("could not format value %#v as bool", encValue)
		}
		return fmt.Sprintf("%t", b), nil
	case strings.HasPrefix(encType, "bytes"), encType == "string":
		s, _ := encValue.Str()
		return s, nil
	case strings.HasPrefix(encType, "uint"), strings.HasPrefix(encType, "int"):
		b, ok := parseInteger(encValue)
		if !ok {
			return "", fmt.Errorf("could not format value %#v as %s", encValue, encType)
		}
		return fmt.Sprintf("%d (%#x)", b, b), nil
	}
	return "", fmt.Errorf("unhandled type %v", encType)
}
