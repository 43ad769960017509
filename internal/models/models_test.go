package models

import (
	"errors"
	"testing"

	"class-attendance-bot/internal/attendance"
	"class-attendance-bot/pkg/dateutil"
)

func TestRecordsToDomainKeepsOrder(t *testing.T) {
	rows := []*AttendanceRecord{
		{ID: "a", UserID: 1, SlotID: "mon_1", Date: "2025-12-15", Status: "ABSENT"},
		{ID: "b", UserID: 1, SlotID: "mon_1", Date: "2025-12-15", Status: "PRESENT"},
	}
	records, err := RecordsToDomain(rows)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if records[0].ID != "a" || records[1].ID != "b" {
		t.Fatalf("order not preserved: %+v", records)
	}
	if records[1].Status != attendance.StatusPresent || records[1].OwnerID != 1 {
		t.Fatalf("unexpected record: %+v", records[1])
	}
}

func TestToDomainRejectsBadDate(t *testing.T) {
	_, err := RecordsToDomain([]*AttendanceRecord{{ID: "a", UserID: 1, SlotID: "mon_1", Date: "15.12.2025", Status: "PRESENT"}})
	var verr *dateutil.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	_, err = HolidaysToDomain([]*Holiday{{ID: "h", UserID: 1, Date: "2025-13-01"}})
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for holiday, got %v", err)
	}
}

func TestAttendanceRecordIsValid(t *testing.T) {
	ok := &AttendanceRecord{UserID: 1, SlotID: "mon_1", Date: "2025-12-15", Status: "PRESENT"}
	if !ok.IsValid() {
		t.Fatalf("expected valid record")
	}
	bad := []*AttendanceRecord{
		{UserID: 0, SlotID: "mon_1", Date: "2025-12-15", Status: "PRESENT"},
		{UserID: 1, SlotID: "", Date: "2025-12-15", Status: "PRESENT"},
		{UserID: 1, SlotID: "mon_1", Date: "2025-12-32", Status: "PRESENT"},
		{UserID: 1, SlotID: "mon_1", Date: "2025-12-15", Status: "LATE"},
	}
	for i, r := range bad {
		if r.IsValid() {
			t.Fatalf("case %d: expected invalid", i)
		}
	}
}

func TestUserRole(t *testing.T) {
	u := &User{FirstName: "Ivan", Role: string(RoleClient)}
	if u.IsAdmin() {
		t.Fatalf("client must not be admin")
	}
	u.SetRole(RoleAdmin)
	if !u.IsAdmin() {
		t.Fatalf("expected admin after SetRole")
	}
	if u.FullName() != "Ivan" {
		t.Fatalf("unexpected full name %q", u.FullName())
	}
}
