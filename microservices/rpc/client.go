package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/Flamage82/WowTalentComparer/internal/domain/talent"
)

type TalentClient struct {
	cc grpc.ClientConnInterface
}

func NewTalentClient(cc grpc.ClientConnInterface) *TalentClient {
	return &TalentClient{cc: cc}
}

func (c *TalentClient) Parse(ctx context.Context, exportString string, opts ...grpc.CallOption) (*talent.SelectionRecord, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ParseMethod, wrapperspb.String(exportString), out, opts...); err != nil {
		return nil, err
	}
	var rec talent.SelectionRecord
	if err := FromStruct(out, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *TalentClient) Diff(ctx context.Context, baseline, candidate string, opts ...grpc.CallOption) (*talent.DiffResult, error) {
	in, err := structpb.NewStruct(map[string]any{
		BaselineField:  baseline,
		CandidateField: candidate,
	})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DiffMethod, in, out, opts...); err != nil {
		return nil, err
	}
	var res talent.DiffResult
	if err := FromStruct(out, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
