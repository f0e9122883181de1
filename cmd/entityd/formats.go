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

package main

import (
	"fmt"

	"rivaas.dev/entity/bodyformat"
	"rivaas.dev/entity/bodyformat/msgpack"
	"rivaas.dev/entity/bodyformat/proto"
	"rivaas.dev/entity/bodyformat/toml"
	"rivaas.dev/entity/bodyformat/yaml"
	"rivaas.dev/entity/config"
)

// buildRegistry creates the resolvers named in decoding.formats, in order.
func buildRegistry(d config.DecodingSettings) (*bodyformat.Registry, error) {
	resolvers := make([]bodyformat.Resolver, 0, len(d.Formats))
	for _, name := range d.Formats {
		switch name {
		case config.FormatURLEncoded:
			resolvers = append(resolvers, bodyformat.NewURLEncoded())
		case config.FormatMultipart:
			resolvers = append(resolvers, bodyformat.NewMultipart(bodyformat.WithStrictFraming(d.StrictFraming)))
		case config.FormatXML:
			resolvers = append(resolvers, bodyformat.NewXML())
		case config.FormatJSON:
			resolvers = append(resolvers, bodyformat.NewJSON())
		case config.FormatYAML:
			resolvers = append(resolvers, yaml.New())
		case config.FormatTOML:
			resolvers = append(resolvers, toml.New())
		case config.FormatMsgPack:
			resolvers = append(resolvers, msgpack.New(msgpack.WithJSONTag()))
		case config.FormatProtobuf:
			resolvers = append(resolvers, proto.New(proto.WithDiscardUnknown()))
		default:
			return nil, fmt.Errorf("unknown body format %q", name)
		}
	}

	return bodyformat.NewRegistry(resolvers...), nil
}
