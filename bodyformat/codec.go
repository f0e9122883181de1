// Copyright 2025 The Rivaas Authors
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

package bodyformat

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"rivaas.dev/entity/mediatype"
)

// JSONCodec decodes JSON bodies. Numbers are kept as json.Number when
// walking records so integers round-trip exactly.
type JSONCodec struct{}

// Unmarshal implements [Codec].
func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Records implements [Codec].
func (JSONCodec) Records(data []byte) ([]Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}

	return RecordsOf(doc), nil
}

// XMLCodec decodes XML bodies. Documents declaring a non UTF-8 encoding in
// their prolog are transcoded through golang.org/x/text.
type XMLCodec struct{}

// Unmarshal implements [Codec].
func (XMLCodec) Unmarshal(data []byte, v any) error {
	return newXMLDecoder(data).Decode(v)
}

// Records implements [Codec]. Each element with child elements is a
// record; its leaf children and its attributes are the record's fields.
// A leaf element's own attributes form a record of their own. Records are
// returned in the order their elements close.
func (XMLCodec) Records(data []byte) ([]Record, error) {
	type frame struct {
		name     string
		fields   Record
		text     strings.Builder
		hasChild bool
	}

	var (
		out   []Record
		stack []*frame
	)

	dec := newXMLDecoder(data)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if n := len(stack); n > 0 {
				stack[n-1].hasChild = true
			}
			f := &frame{name: t.Name.Local}
			for _, a := range t.Attr {
				f.fields = append(f.fields, Field{Name: a.Name.Local, Value: a.Value})
			}
			stack = append(stack, f)
		case xml.CharData:
			if n := len(stack); n > 0 {
				stack[n-1].text.Write(t)
			}
		case xml.EndElement:
			n := len(stack)
			f := stack[n-1]
			stack = stack[:n-1]

			if !f.hasChild {
				leaf := Field{Name: f.name, Value: strings.TrimSpace(f.text.String())}
				if n > 1 {
					parent := stack[n-2]
					parent.fields = append(parent.fields, leaf)
				} else {
					out = append(out, Record{leaf})
				}
			}
			if len(f.fields) > 0 {
				out = append(out, f.fields)
			}
		}
	}
	if len(stack) > 0 {
		return nil, io.ErrUnexpectedEOF
	}

	return out, nil
}

func newXMLDecoder(data []byte) *xml.Decoder {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader

	return dec
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := mediatype.Lookup(label)
	if err != nil {
		return nil, err
	}

	return enc.NewDecoder().Reader(input), nil
}
