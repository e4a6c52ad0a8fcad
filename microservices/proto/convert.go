package proto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	errs "mnk_engine/internal/errors"
)

// ToStruct converts a JSON-tagged value into a Struct message.
func ToStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", v, err)
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("convert %T to struct: %w", v, err)
	}
	return out, nil
}

// FromStruct decodes a Struct message into dst, rejecting unknown fields.
func FromStruct(in *structpb.Struct, dst any) error {
	raw, err := protojson.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal struct: %w", err)
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("decode struct into %T: %w", dst, err)
	}
	return nil
}

// StatusFromError maps engine errors onto gRPC status codes, one code per
// sentinel so the client can restore it.
func StatusFromError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errs.ErrIllegalMove):
		return status.Error(codes.OutOfRange, err.Error())
	case errors.Is(err, errs.ErrConfiguration):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, errs.ErrNoLegalMoves):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// ErrorFromStatus turns a gRPC status back into an engine error.
func ErrorFromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%w: %w", errs.ErrInternal, err)
	}
	switch st.Code() {
	case codes.OutOfRange:
		return fmt.Errorf("%w: %s", errs.ErrIllegalMove, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", errs.ErrConfiguration, st.Message())
	case codes.FailedPrecondition:
		return fmt.Errorf("%w: %s", errs.ErrNoLegalMoves, st.Message())
	default:
		return fmt.Errorf("%w: %s", errs.ErrInternal, st.Message())
	}
}
