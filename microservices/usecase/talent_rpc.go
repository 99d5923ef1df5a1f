package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/Flamage82/WowTalentComparer/internal/domain/talent"
	talenterrors "github.com/Flamage82/WowTalentComparer/internal/errors"
	"github.com/Flamage82/WowTalentComparer/microservices/rpc"
)

type BuildService interface {
	ParseBuild(ctx context.Context, exportString string) (*talent.SelectionRecord, error)
	CompareBuilds(ctx context.Context, baseline, candidate string) (*talent.DiffResult, error)
}

type TalentRPC struct {
	log    *zap.SugaredLogger
	builds BuildService
}

var _ rpc.TalentServiceServer = (*TalentRPC)(nil)

func NewTalentRPC(log *zap.SugaredLogger, builds BuildService) *TalentRPC {
	return &TalentRPC{
		log:    log,
		builds: builds,
	}
}

func (t *TalentRPC) Parse(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	rec, err := t.builds.ParseBuild(ctx, in.GetValue())
	if err != nil {
		return nil, t.toStatus(err)
	}
	return t.reply(rec)
}

func (t *TalentRPC) Diff(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	baseline := in.GetFields()[rpc.BaselineField].GetStringValue()
	candidate := in.GetFields()[rpc.CandidateField].GetStringValue()
	if baseline == "" || candidate == "" {
		return nil, status.Error(codes.InvalidArgument, "baseline and candidate are required")
	}

	res, err := t.builds.CompareBuilds(ctx, baseline, candidate)
	if err != nil {
		return nil, t.toStatus(err)
	}
	return t.reply(res)
}

func (t *TalentRPC) reply(v any) (*structpb.Struct, error) {
	out, err := rpc.ToStruct(v)
	if err != nil {
		t.log.Errorf("failed to convert reply: %v", err)
		return nil, status.Error(codes.Internal, talenterrors.ErrInternal.Error())
	}
	return out, nil
}

func (t *TalentRPC) toStatus(err error) error {
	switch {
	case errors.Is(err, talenterrors.ErrInvalidCharacter), errors.Is(err, talenterrors.ErrTooShort):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, talenterrors.ErrSpecMismatch):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		t.log.Errorf("talent rpc failed: %v", err)
		return status.Error(codes.Internal, talenterrors.ErrInternal.Error())
	}
}
