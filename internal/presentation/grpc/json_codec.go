package grpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

func init() {
	encoding.RegisterCodec(dtoCodec{})
}

// dtoCodec marshals the application DTOs that stand in for generated
// messages. It is selected by ContentSubtype.
type dtoCodec struct{}

func (dtoCodec) Marshal(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", v, err)
	}
	return b, nil
}

func (dtoCodec) Unmarshal(data []byte, v interface{}) error {
	if len(data) == 0 {
		// An empty frame is a message with every field unset.
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal %T: %w", v, err)
	}
	return nil
}

func (dtoCodec) Name() string {
	return ContentSubtype
}
