// Code generated by protoc-gen-go. DO NOT EDIT.
// versions:
// 	protoc-gen-go v1.36.10
// 	protoc        (unknown)
// source: calendar/v1/calendar.proto

package calendarv1

import (
	protoreflect "google.golang.org/protobuf/reflect/protoreflect"
	protoimpl "google.golang.org/protobuf/runtime/protoimpl"
	reflect "reflect"
	sync "sync"
	unsafe "unsafe"
)

const (
	// Verify that this generated code is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(20 - protoimpl.MinVersion)
	// Verify that runtime/protoimpl is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(protoimpl.MaxVersion - 20)
)

type GetEventTypeRequest struct {
	state protoimpl.MessageState `protogen:"open.v1"`
	// Either event_type_id, or host_id + slug.
	EventTypeId   string `protobuf:"bytes,1,opt,name=event_type_id,json=eventTypeId,proto3" json:"event_type_id,omitempty"`
	HostId        string `protobuf:"bytes,2,opt,name=host_id,json=hostId,proto3" json:"host_id,omitempty"`
	Slug          string `protobuf:"bytes,3,opt,name=slug,proto3" json:"slug,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *GetEventTypeRequest) Reset() {
	*x = GetEventTypeRequest{}
	mi := &file_calendar_v1_calendar_proto_msgTypes[0]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *GetEventTypeRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*GetEventTypeRequest) ProtoMessage() {}

func (x *GetEventTypeRequest) ProtoReflect() protoreflect.Message {
	mi := &file_calendar_v1_calendar_proto_msgTypes[0]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use GetEventTypeRequest.ProtoReflect.Descriptor instead.
func (*GetEventTypeRequest) Descriptor() ([]byte, []int) {
	return file_calendar_v1_calendar_proto_rawDescGZIP(), []int{0}
}

func (x *GetEventTypeRequest) GetEventTypeId() string {
	if x != nil {
		return x.EventTypeId
	}
	return ""
}

func (x *GetEventTypeRequest) GetHostId() string {
	if x != nil {
		return x.HostId
	}
	return ""
}

func (x *GetEventTypeRequest) GetSlug() string {
	if x != nil {
		return x.Slug
	}
	return ""
}

type GetEventTypeResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	EventType     *EventType             `protobuf:"bytes,1,opt,name=event_type,json=eventType,proto3" json:"event_type,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *GetEventTypeResponse) Reset() {
	*x = GetEventTypeResponse{}
	mi := &file_calendar_v1_calendar_proto_msgTypes[1]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *GetEventTypeResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*GetEventTypeResponse) ProtoMessage() {}

func (x *GetEventTypeResponse) ProtoReflect() protoreflect.Message {
	mi := &file_calendar_v1_calendar_proto_msgTypes[1]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use GetEventTypeResponse.ProtoReflect.Descriptor instead.
func (*GetEventTypeResponse) Descriptor() ([]byte, []int) {
	return file_calendar_v1_calendar_proto_rawDescGZIP(), []int{1}
}

func (x *GetEventTypeResponse) GetEventType() *EventType {
	if x != nil {
		return x.EventType
	}
	return nil
}

type WeeklyRule struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Weekday       int32                  `protobuf:"varint,1,opt,name=weekday,proto3" json:"weekday,omitempty"` // 0 = Sunday
	StartMinute   int32                  `protobuf:"varint,2,opt,name=start_minute,json=startMinute,proto3" json:"start_minute,omitempty"`
	EndMinute     int32                  `protobuf:"varint,3,opt,name=end_minute,json=endMinute,proto3" json:"end_minute,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *WeeklyRule) Reset() {
	*x = WeeklyRule{}
	mi := &file_calendar_v1_calendar_proto_msgTypes[2]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *WeeklyRule) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*WeeklyRule) ProtoMessage() {}

func (x *WeeklyRule) ProtoReflect() protoreflect.Message {
	mi := &file_calendar_v1_calendar_proto_msgTypes[2]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use WeeklyRule.ProtoReflect.Descriptor instead.
func (*WeeklyRule) Descriptor() ([]byte, []int) {
	return file_calendar_v1_calendar_proto_rawDescGZIP(), []int{2}
}

func (x *WeeklyRule) GetWeekday() int32 {
	if x != nil {
		return x.Weekday
	}
	return 0
}

func (x *WeeklyRule) GetStartMinute() int32 {
	if x != nil {
		return x.StartMinute
	}
	return 0
}

func (x *WeeklyRule) GetEndMinute() int32 {
	if x != nil {
		return x.EndMinute
	}
	return 0
}

type DateOverride struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Date          string                 `protobuf:"bytes,1,opt,name=date,proto3" json:"date,omitempty"` // YYYY-MM-DD in the event type's timezone
	StartMinute   int32                  `protobuf:"varint,2,opt,name=start_minute,json=startMinute,proto3" json:"start_minute,omitempty"`
	EndMinute     int32                  `protobuf:"varint,3,opt,name=end_minute,json=endMinute,proto3" json:"end_minute,omitempty"`
	Closed        bool                   `protobuf:"varint,4,opt,name=closed,proto3" json:"closed,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *DateOverride) Reset() {
	*x = DateOverride{}
	mi := &file_calendar_v1_calendar_proto_msgTypes[3]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *DateOverride) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*DateOverride) ProtoMessage() {}

func (x *DateOverride) ProtoReflect() protoreflect.Message {
	mi := &file_calendar_v1_calendar_proto_msgTypes[3]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use DateOverride.ProtoReflect.Descriptor instead.
func (*DateOverride) Descriptor() ([]byte, []int) {
	return file_calendar_v1_calendar_proto_rawDescGZIP(), []int{3}
}

func (x *DateOverride) GetDate() string {
	if x != nil {
		return x.Date
	}
	return ""
}

func (x *DateOverride) GetStartMinute() int32 {
	if x != nil {
		return x.StartMinute
	}
	return 0
}

func (x *DateOverride) GetEndMinute() int32 {
	if x != nil {
		return x.EndMinute
	}
	return 0
}

func (x *DateOverride) GetClosed() bool {
	if x != nil {
		return x.Closed
	}
	return false
}

type EventType struct {
	state                protoimpl.MessageState `protogen:"open.v1"`
	Id                   string                 `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	HostId               string                 `protobuf:"bytes,2,opt,name=host_id,json=hostId,proto3" json:"host_id,omitempty"`
	Slug                 string                 `protobuf:"bytes,3,opt,name=slug,proto3" json:"slug,omitempty"`
	Title                string                 `protobuf:"bytes,4,opt,name=title,proto3" json:"title,omitempty"`
	LengthMinutes        int32                  `protobuf:"varint,5,opt,name=length_minutes,json=lengthMinutes,proto3" json:"length_minutes,omitempty"`
	SlotIntervalMinutes  int32                  `protobuf:"varint,6,opt,name=slot_interval_minutes,json=slotIntervalMinutes,proto3" json:"slot_interval_minutes,omitempty"`
	BeforeBufferMinutes  int32                  `protobuf:"varint,7,opt,name=before_buffer_minutes,json=beforeBufferMinutes,proto3" json:"before_buffer_minutes,omitempty"`
	AfterBufferMinutes   int32                  `protobuf:"varint,8,opt,name=after_buffer_minutes,json=afterBufferMinutes,proto3" json:"after_buffer_minutes,omitempty"`
	MinimumNoticeMinutes int32                  `protobuf:"varint,9,opt,name=minimum_notice_minutes,json=minimumNoticeMinutes,proto3" json:"minimum_notice_minutes,omitempty"`
	SeatsPerSlot         int32                  `protobuf:"varint,10,opt,name=seats_per_slot,json=seatsPerSlot,proto3" json:"seats_per_slot,omitempty"`
	OnlyFirstSlot        bool                   `protobuf:"varint,11,opt,name=only_first_slot,json=onlyFirstSlot,proto3" json:"only_first_slot,omitempty"`
	PriceCents           int64                  `protobuf:"varint,12,opt,name=price_cents,json=priceCents,proto3" json:"price_cents,omitempty"`
	Currency             string                 `protobuf:"bytes,13,opt,name=currency,proto3" json:"currency,omitempty"`
	Timezone             string                 `protobuf:"bytes,14,opt,name=timezone,proto3" json:"timezone,omitempty"`
	Rules                []*WeeklyRule          `protobuf:"bytes,15,rep,name=rules,proto3" json:"rules,omitempty"`
	Overrides            []*DateOverride        `protobuf:"bytes,16,rep,name=overrides,proto3" json:"overrides,omitempty"`
	unknownFields        protoimpl.UnknownFields
	sizeCache            protoimpl.SizeCache
}

func (x *EventType) Reset() {
	*x = EventType{}
	mi := &file_calendar_v1_calendar_proto_msgTypes[4]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *EventType) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*EventType) ProtoMessage() {}

func (x *EventType) ProtoReflect() protoreflect.Message {
	mi := &file_calendar_v1_calendar_proto_msgTypes[4]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use EventType.ProtoReflect.Descriptor instead.
func (*EventType) Descriptor() ([]byte, []int) {
	return file_calendar_v1_calendar_proto_rawDescGZIP(), []int{4}
}

func (x *EventType) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

func (x *EventType) GetHostId() string {
	if x != nil {
		return x.HostId
	}
	return ""
}

func (x *EventType) GetSlug() string {
	if x != nil {
		return x.Slug
	}
	return ""
}

func (x *EventType) GetTitle() string {
	if x != nil {
		return x.Title
	}
	return ""
}

func (x *EventType) GetLengthMinutes() int32 {
	if x != nil {
		return x.LengthMinutes
	}
	return 0
}

func (x *EventType) GetSlotIntervalMinutes() int32 {
	if x != nil {
		return x.SlotIntervalMinutes
	}
	return 0
}

func (x *EventType) GetBeforeBufferMinutes() int32 {
	if x != nil {
		return x.BeforeBufferMinutes
	}
	return 0
}

func (x *EventType) GetAfterBufferMinutes() int32 {
	if x != nil {
		return x.AfterBufferMinutes
	}
	return 0
}

func (x *EventType) GetMinimumNoticeMinutes() int32 {
	if x != nil {
		return x.MinimumNoticeMinutes
	}
	return 0
}

func (x *EventType) GetSeatsPerSlot() int32 {
	if x != nil {
		return x.SeatsPerSlot
	}
	return 0
}

func (x *EventType) GetOnlyFirstSlot() bool {
	if x != nil {
		return x.OnlyFirstSlot
	}
	return false
}

func (x *EventType) GetPriceCents() int64 {
	if x != nil {
		return x.PriceCents
	}
	return 0
}

func (x *EventType) GetCurrency() string {
	if x != nil {
		return x.Currency
	}
	return ""
}

func (x *EventType) GetTimezone() string {
	if x != nil {
		return x.Timezone
	}
	return ""
}

func (x *EventType) GetRules() []*WeeklyRule {
	if x != nil {
		return x.Rules
	}
	return nil
}

func (x *EventType) GetOverrides() []*DateOverride {
	if x != nil {
		return x.Overrides
	}
	return nil
}

var File_calendar_v1_calendar_proto protoreflect.FileDescriptor

const file_calendar_v1_calendar_proto_rawDesc = "" +
	"\n" +
	"\x1acalendar/v1/calendar.proto\x12\vcalendar.v1\"f\n" +
	"\x13GetEventTypeRequest\x12\"\n" +
	"\revent_type_id\x18\x01 \x01(\tR\veventTypeId\x12\x17\n" +
	"\ahost_id\x18\x02 \x01(\tR\x06hostId\x12\x12\n" +
	"\x04slug\x18\x03 \x01(\tR\x04slug\"M\n" +
	"\x14GetEventTypeResponse\x125\n" +
	"\n" +
	"event_type\x18\x01 \x01(\v2\x16.calendar.v1.EventTypeR\teventType\"h\n" +
	"\n" +
	"WeeklyRule\x12\x18\n" +
	"\aweekday\x18\x01 \x01(\x05R\aweekday\x12!\n" +
	"\fstart_minute\x18\x02 \x01(\x05R\vstartMinute\x12\x1d\n" +
	"\n" +
	"end_minute\x18\x03 \x01(\x05R\tendMinute\"|\n" +
	"\fDateOverride\x12\x12\n" +
	"\x04date\x18\x01 \x01(\tR\x04date\x12!\n" +
	"\fstart_minute\x18\x02 \x01(\x05R\vstartMinute\x12\x1d\n" +
	"\n" +
	"end_minute\x18\x03 \x01(\x05R\tendMinute\x12\x16\n" +
	"\x06closed\x18\x04 \x01(\bR\x06closed\"\xe4\x04\n" +
	"\tEventType\x12\x0e\n" +
	"\x02id\x18\x01 \x01(\tR\x02id\x12\x17\n" +
	"\ahost_id\x18\x02 \x01(\tR\x06hostId\x12\x12\n" +
	"\x04slug\x18\x03 \x01(\tR\x04slug\x12\x14\n" +
	"\x05title\x18\x04 \x01(\tR\x05title\x12%\n" +
	"\x0elength_minutes\x18\x05 \x01(\x05R\rlengthMinutes\x122\n" +
	"\x15slot_interval_minutes\x18\x06 \x01(\x05R\x13slotIntervalMinutes\x122\n" +
	"\x15before_buffer_minutes\x18\a \x01(\x05R\x13beforeBufferMinutes\x120\n" +
	"\x14after_buffer_minutes\x18\b \x01(\x05R\x12afterBufferMinutes\x124\n" +
	"\x16minimum_notice_minutes\x18\t \x01(\x05R\x14minimumNoticeMinutes\x12$\n" +
	"\x0eseats_per_slot\x18\n" +
	" \x01(\x05R\fseatsPerSlot\x12&\n" +
	"\x0fonly_first_slot\x18\v \x01(\bR\ronlyFirstSlot\x12\x1f\n" +
	"\vprice_cents\x18\f \x01(\x03R\n" +
	"priceCents\x12\x1a\n" +
	"\bcurrency\x18\r \x01(\tR\bcurrency\x12\x1a\n" +
	"\btimezone\x18\x0e \x01(\tR\btimezone\x12-\n" +
	"\x05rules\x18\x0f \x03(\v2\x17.calendar.v1.WeeklyRuleR\x05rules\x127\n" +
	"\toverrides\x18\x10 \x03(\v2\x19.calendar.v1.DateOverrideR\toverrides2f\n" +
	"\x0fCalendarService\x12S\n" +
	"\fGetEventType\x12 .calendar.v1.GetEventTypeRequest\x1a!.calendar.v1.GetEventTypeResponseBCZAgithub.com/slotwise/slotwise/protos/gen/go/calendar/v1;calendarv1b\x06proto3"

var (
	file_calendar_v1_calendar_proto_rawDescOnce sync.Once
	file_calendar_v1_calendar_proto_rawDescData []byte
)

func file_calendar_v1_calendar_proto_rawDescGZIP() []byte {
	file_calendar_v1_calendar_proto_rawDescOnce.Do(func() {
		file_calendar_v1_calendar_proto_rawDescData = protoimpl.X.CompressGZIP(unsafe.Slice(unsafe.StringData(file_calendar_v1_calendar_proto_rawDesc), len(file_calendar_v1_calendar_proto_rawDesc)))
	})
	return file_calendar_v1_calendar_proto_rawDescData
}

var file_calendar_v1_calendar_proto_msgTypes = make([]protoimpl.MessageInfo, 5)
var file_calendar_v1_calendar_proto_goTypes = []any{
	(*GetEventTypeRequest)(nil),  // 0: calendar.v1.GetEventTypeRequest
	(*GetEventTypeResponse)(nil), // 1: calendar.v1.GetEventTypeResponse
	(*WeeklyRule)(nil),           // 2: calendar.v1.WeeklyRule
	(*DateOverride)(nil),         // 3: calendar.v1.DateOverride
	(*EventType)(nil),            // 4: calendar.v1.EventType
}
var file_calendar_v1_calendar_proto_depIdxs = []int32{
	4, // 0: calendar.v1.GetEventTypeResponse.event_type:type_name -> calendar.v1.EventType
	2, // 1: calendar.v1.EventType.rules:type_name -> calendar.v1.WeeklyRule
	3, // 2: calendar.v1.EventType.overrides:type_name -> calendar.v1.DateOverride
	0, // 3: calendar.v1.CalendarService.GetEventType:input_type -> calendar.v1.GetEventTypeRequest
	1, // 4: calendar.v1.CalendarService.GetEventType:output_type -> calendar.v1.GetEventTypeResponse
	4, // [4:5] is the sub-list for method output_type
	3, // [3:4] is the sub-list for method input_type
	3, // [3:3] is the sub-list for extension type_name
	3, // [3:3] is the sub-list for extension extendee
	0, // [0:3] is the sub-list for field type_name
}

func init() { file_calendar_v1_calendar_proto_init() }
func file_calendar_v1_calendar_proto_init() {
	if File_calendar_v1_calendar_proto != nil {
		return
	}
	type x struct{}
	out := protoimpl.TypeBuilder{
		File: protoimpl.DescBuilder{
			GoPackagePath: reflect.TypeOf(x{}).PkgPath(),
			RawDescriptor: unsafe.Slice(unsafe.StringData(file_calendar_v1_calendar_proto_rawDesc), len(file_calendar_v1_calendar_proto_rawDesc)),
			NumEnums:      0,
			NumMessages:   5,
			NumExtensions: 0,
			NumServices:   1,
		},
		GoTypes:           file_calendar_v1_calendar_proto_goTypes,
		DependencyIndexes: file_calendar_v1_calendar_proto_depIdxs,
		MessageInfos:      file_calendar_v1_calendar_proto_msgTypes,
	}.Build()
	File_calendar_v1_calendar_proto = out.File
	file_calendar_v1_calendar_proto_goTypes = nil
	file_calendar_v1_calendar_proto_depIdxs = nil
}
