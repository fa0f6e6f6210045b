// Copyright 2018 The go-ethereum Authors
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
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sunyihoo/ethcodec/accounts/abi"
	"github.com/sunyihoo/ethcodec/common/math"
	"github.com/sunyihoo/ethcodec/common/value"
)

// 定义一个正则表达式，用于验证类型化数据的引用类型
var typedDataReferenceTypeRegexp = regexp.MustCompile(`^[A-Za-z](\w*)(\[\d*\])*$`)

// Errors classifying why typed data was rejected. A *TypedDataError always
// matches exactly one of them under errors.Is.
var (
	ErrUnknownType       = errors.New("unknown type")
	ErrMissingField      = errors.New("missing field value")
	ErrInvalidFieldValue = errors.New("invalid field value")
	ErrExpectedObject    = errors.New("expected object")
	ErrInvalidType       = abi.ErrInvalidType
)

// TypedDataError describes a schema violation found while hashing typed data.
type TypedDataError struct {
	Kind  error       // one of the Err* values above
	Type  string      // struct or field type being encoded
	Field string      // field name, if any
	Value interface{} // offending value, if any
	Err   error       // underlying cause, if any
}

func (e *TypedDataError) Error() string {
	var b strings.Builder
	b.WriteString("eip712: ")
	b.WriteString(e.Kind.Error())
	if e.Type != "" {
		fmt.Fprintf(&b, " %q", e.Type)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " field %q", e.Field)
	}
	if v, ok := e.Value.(value.Value); ok {
		enc, _ := v.MarshalJSON()
		fmt.Fprintf(&b, " value %s", enc)
	} else if e.Value != nil {
		fmt.Fprintf(&b, " value %v", e.Value)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *TypedDataError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Mime types understood by the signer.
const (
	MimetypeTypedData = "data/typed"
	MimetypeTextPlain = "text/plain"
)

// SigFormat 表示签名数据的格式
type SigFormat struct {
	Mime        string // MIME 类型，用于标识数据的类型或用途。
	ByteVersion byte   // EIP-191 version byte
}

var (
	DataTyped = SigFormat{
		MimetypeTypedData,
		0x01,
	}
	TextPlain = SigFormat{
		MimetypeTextPlain,
		0x45,
	}
)

// TypedData is a type to encapsulate EIP-712 typed messages
// TypedData 是一个封装 EIP-712 类型化消息的类型
type TypedData struct {
	Types       Types           `json:"types"`       // 定义所有类型
	PrimaryType string          `json:"primaryType"` // 主类型名称，指定消息的根类型。
	Domain      TypedDataDomain `json:"domain"`      // 域分隔符，用于区分不同应用或链
	Message     value.Value     `json:"message"`     // 实际消息内容
}

// Type is the inner type of an EIP-712 message
// Type 是 EIP-712 消息的内部类型
type Type struct {
	Name string `json:"name"` // 字段名称
	Type string `json:"type"` // 字段类型（如 string, uint256, address[]）
}

// isArray returns true if the type is a fixed or variable sized array.
func (t *Type) isArray() bool {
	return strings.IndexByte(t.Type, '[') > 0
}

// typeName returns the canonical name of the type. If the type is 'Person[]' or 'Person[2]', then
// this method returns 'Person'
func (t *Type) typeName() string {
	return strings.Split(t.Type, "[")[0]
}

type Types map[string][]Type

// TypedDataDomain represents the domain part of an EIP-712 message.
// TypedDataDomain 表示 EIP-712 消息的域部分。
//
//	防止签名跨应用或链重放
type TypedDataDomain struct {
	Name              string                `json:"name"`              // 应用名称
	Version           string                `json:"version"`           // 应用版本
	ChainId           *math.HexOrDecimal256 `json:"chainId"`           // 链 ID（支持 16 进制或十进制）。
	VerifyingContract string                `json:"verifyingContract"` // 验证合约地址
	Salt              string                `json:"salt,omitempty"`    // 可选的盐值（额外唯一性）
}

// Value renders the populated domain fields as a message object.
func (domain *TypedDataDomain) Value() value.Value {
	obj := map[string]value.Value{}
	if domain.ChainId != nil {
		obj["chainId"] = value.FromQuantity(domain.ChainId.ToInt())
	}
	if len(domain.Name) > 0 {
		obj["name"] = value.String(domain.Name)
	}
	if len(domain.Version) > 0 {
		obj["version"] = value.String(domain.Version)
	}
	if len(domain.VerifyingContract) > 0 {
		obj["verifyingContract"] = value.String(domain.VerifyingContract)
	}
	if len(domain.Salt) > 0 {
		obj["salt"] = value.String(domain.Salt)
	}
	return value.Object(obj)
}

// fields lists the EIP712Domain members implied by the populated domain
// fields, in the order fixed by EIP-712.
func (domain *TypedDataDomain) fields() []Type {
	var fields []Type
	if len(domain.Name) > 0 {
		fields = append(fields, Type{Name: "name", Type: "string"})
	}
	if len(domain.Version) > 0 {
		fields = append(fields, Type{Name: "version", Type: "string"})
	}
	if domain.ChainId != nil {
		fields = append(fields, Type{Name: "chainId", Type: "uint256"})
	}
	if len(domain.VerifyingContract) > 0 {
		fields = append(fields, Type{Name: "verifyingContract", Type: "address"})
	}
	if len(domain.Salt) > 0 {
		fields = append(fields, Type{Name: "salt", Type: "bytes32"})
	}
	return fields
}

// validate checks if the given domain is valid, i.e. contains at least
// the minimum viable keys and values
func (domain *TypedDataDomain) validate() error {
	if domain.ChainId == nil && len(domain.Name) == 0 && len(domain.Version) == 0 && len(domain.VerifyingContract) == 0 && len(domain.Salt) == 0 {
		return &TypedDataError{Kind: ErrMissingField, Type: domainType, Err: errors.New("domain is undefined")}
	}
	return nil
}

const domainType = "EIP712Domain"

// fields returns the members of a struct type. The EIP712Domain entry is
// derived from the domain when the schema does not declare it.
func (typedData *TypedData) fields(name string) ([]Type, bool) {
	if fields, ok := typedData.Types[name]; ok {
		return fields, true
	}
	if name == domainType {
		return typedData.Domain.fields(), true
	}
	return nil, false
}

// Validate checks that the schema is sound and the domain is populated.
func (typedData *TypedData) Validate() error {
	if err := typedData.Types.validate(); err != nil {
		return err
	}
	if err := typedData.Domain.validate(); err != nil {
		return err
	}
	if _, ok := typedData.fields(typedData.PrimaryType); !ok {
		return &TypedDataError{Kind: ErrUnknownType, Type: typedData.PrimaryType}
	}
	return nil
}

// validate checks if the types object is conformant to the specs
func (t Types) validate() error {
	for typeKey, typeArr := range t {
		if len(typeKey) == 0 {
			return &TypedDataError{Kind: ErrUnknownType, Err: errors.New("empty type key")}
		}
		for i, typeObj := range typeArr {
			if len(typeObj.Type) == 0 {
				return &TypedDataError{Kind: ErrInvalidType, Type: typeKey, Err: fmt.Errorf("member %d: empty type", i)}
			}
			if len(typeObj.Name) == 0 {
				return &TypedDataError{Kind: ErrInvalidType, Type: typeKey, Err: fmt.Errorf("member %d: empty name", i)}
			}
			if typeKey == typeObj.Type {
				return &TypedDataError{Kind: ErrInvalidType, Type: typeKey, Err: errors.New("type cannot reference itself")}
			}
			if _, exist := t[typeObj.typeName()]; exist {
				if !typedDataReferenceTypeRegexp.MatchString(typeObj.Type) {
					return &TypedDataError{Kind: ErrInvalidType, Type: typeObj.Type, Field: typeObj.Name}
				}
				continue
			}
			if !isPrimitiveName(typeObj.typeName()) {
				return &TypedDataError{Kind: ErrUnknownType, Type: typeObj.Type, Field: typeObj.Name}
			}
			if _, err := abi.NewType(typeObj.Type); err != nil {
				return &TypedDataError{Kind: ErrInvalidType, Type: typeObj.Type, Field: typeObj.Name, Err: err}
			}
		}
	}
	return nil
}

// primitiveRegexp matches the base names of atomic and dynamic Solidity
// types, with an optional width suffix.
var primitiveRegexp = regexp.MustCompile(`^(u?int|bytes|bool|address|string)[0-9]*$`)

// isPrimitiveName reports whether name is spelled like a Solidity
// primitive. The width suffix is checked later, when the type is parsed.
func isPrimitiveName(name string) bool {
	return primitiveRegexp.MatchString(name)
}
