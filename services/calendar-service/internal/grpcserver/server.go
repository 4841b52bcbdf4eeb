//go:build protogen

package grpcserver

import (
	"context"

	calendarv1 "github.com/slotwise/slotwise/protos/gen/go/calendar/v1"
	"github.com/slotwise/slotwise/services/calendar-service/internal/storage"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type server struct {
	calendarv1.UnimplementedCalendarServiceServer
	repo *storage.Repository
}

func Register(grpcServer *grpc.Server, repo *storage.Repository) {
	calendarv1.RegisterCalendarServiceServer(grpcServer, &server{repo: repo})
}

// GetEventType resolves by id when given, otherwise by (host_id, slug).
// booking-service calls this when its kafka-fed cache misses.
func (s *server) GetEventType(ctx context.Context, req *calendarv1.GetEventTypeRequest) (*calendarv1.GetEventTypeResponse, error) {
	var (
		et  storage.EventType
		err error
	)
	switch {
	case req.GetEventTypeId() != "":
		et, err = s.repo.GetEventTypeByID(ctx, req.GetEventTypeId())
	case req.GetHostId() != "" && req.GetSlug() != "":
		et, err = s.repo.GetEventTypeBySlug(ctx, req.GetHostId(), req.GetSlug())
	default:
		return nil, status.Error(codes.InvalidArgument, "event_type_id or host_id+slug required")
	}
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, status.Error(codes.NotFound, "event type not found")
		}
		return nil, status.Error(codes.Internal, "event type lookup failed")
	}
	return &calendarv1.GetEventTypeResponse{EventType: toProto(et)}, nil
}

func toProto(et storage.EventType) *calendarv1.EventType {
	out := &calendarv1.EventType{
		Id:                   et.ID,
		HostId:               et.HostID,
		Slug:                 et.Slug,
		Title:                et.Title,
		LengthMinutes:        int32(et.LengthMinutes),
		SlotIntervalMinutes:  int32(et.SlotIntervalMinutes),
		BeforeBufferMinutes:  int32(et.BeforeBufferMinutes),
		AfterBufferMinutes:   int32(et.AfterBufferMinutes),
		MinimumNoticeMinutes: int32(et.MinimumNoticeMinutes),
		SeatsPerSlot:         int32(et.SeatsPerSlot),
		OnlyFirstSlot:        et.OnlyFirstSlot,
		PriceCents:           et.PriceCents,
		Currency:             et.Currency,
		Timezone:             et.Timezone,
	}
	for _, rule := range et.Rules {
		out.Rules = append(out.Rules, &calendarv1.WeeklyRule{
			Weekday:     int32(rule.Weekday),
			StartMinute: int32(rule.StartMinute),
			EndMinute:   int32(rule.EndMinute),
		})
	}
	for _, ov := range et.Overrides {
		out.Overrides = append(out.Overrides, &calendarv1.DateOverride{
			Date:        ov.Date,
			StartMinute: int32(ov.StartMinute),
			EndMinute:   int32(ov.EndMinute),
			Closed:      ov.Closed,
		})
	}
	return out
}
