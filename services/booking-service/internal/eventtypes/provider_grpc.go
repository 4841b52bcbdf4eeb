//go:build protogen

package eventtypes

import (
	"context"
	"time"

	"github.com/slotwise/slotwise/libs/grpcx"
	calendarv1 "github.com/slotwise/slotwise/protos/gen/go/calendar/v1"
	"google.golang.org/grpc"
)

// GRPCProvider asks calendar-service directly; used when the cache has no
// entry yet (fresh deployment, consumer lag).
type GRPCProvider struct {
	conn   *grpc.ClientConn
	client calendarv1.CalendarServiceClient
}

func NewGRPCProvider(ctx context.Context, addr string) (Provider, error) {
	if addr == "" {
		return nil, nil
	}
	conn, err := grpcx.Dial(ctx, addr, grpcx.DialOptions{Timeout: 3 * time.Second})
	if err != nil {
		return nil, err
	}
	return &GRPCProvider{conn: conn, client: calendarv1.NewCalendarServiceClient(conn)}, nil
}

func (p *GRPCProvider) Close() error {
	return p.conn.Close()
}

func (p *GRPCProvider) BySlug(ctx context.Context, hostID, slug string) (EventType, error) {
	resp, err := p.client.GetEventType(ctx, &calendarv1.GetEventTypeRequest{
		HostId: hostID,
		Slug:   slug,
	})
	if err != nil {
		return EventType{}, err
	}
	return fromProto(resp.GetEventType()), nil
}

func (p *GRPCProvider) ByID(ctx context.Context, eventTypeID string) (EventType, error) {
	resp, err := p.client.GetEventType(ctx, &calendarv1.GetEventTypeRequest{
		EventTypeId: eventTypeID,
	})
	if err != nil {
		return EventType{}, err
	}
	return fromProto(resp.GetEventType()), nil
}

func fromProto(et *calendarv1.EventType) EventType {
	out := EventType{
		ID:                   et.GetId(),
		HostID:               et.GetHostId(),
		Slug:                 et.GetSlug(),
		Title:                et.GetTitle(),
		LengthMinutes:        int(et.GetLengthMinutes()),
		SlotIntervalMinutes:  int(et.GetSlotIntervalMinutes()),
		BeforeBufferMinutes:  int(et.GetBeforeBufferMinutes()),
		AfterBufferMinutes:   int(et.GetAfterBufferMinutes()),
		MinimumNoticeMinutes: int(et.GetMinimumNoticeMinutes()),
		SeatsPerSlot:         int(et.GetSeatsPerSlot()),
		OnlyFirstSlot:        et.GetOnlyFirstSlot(),
		PriceCents:           et.GetPriceCents(),
		Currency:             et.GetCurrency(),
		Timezone:             et.GetTimezone(),
	}
	for _, r := range et.GetRules() {
		out.Rules = append(out.Rules, WeeklyRule{
			Weekday:     int(r.GetWeekday()),
			StartMinute: int(r.GetStartMinute()),
			EndMinute:   int(r.GetEndMinute()),
		})
	}
	for _, ov := range et.GetOverrides() {
		out.Overrides = append(out.Overrides, DateOverride{
			Date:        ov.GetDate(),
			StartMinute: int(ov.GetStartMinute()),
			EndMinute:   int(ov.GetEndMinute()),
			Closed:      ov.GetClosed(),
		})
	}
	return out
}
