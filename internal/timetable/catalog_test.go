package timetable

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if got := len(c.Subjects()); got != 11 {
		t.Fatalf("expected 11 subjects, got %d", got)
	}
	if got := len(c.SlotsFor(time.Sunday)); got != 0 {
		t.Fatalf("expected no sunday slots, got %d", got)
	}
	if got := len(c.SlotsFor(time.Monday)); got != 7 {
		t.Fatalf("expected 7 monday slots, got %d", got)
	}
	lab, ok := c.Subject("AI_ML_LAB")
	if !ok || lab.Weight != 3 {
		t.Fatalf("expected lab weight 3, got %+v", lab)
	}
	if ids := c.UnknownSubjectSlots(); len(ids) != 0 {
		t.Fatalf("default catalog references unknown subjects: %v", ids)
	}
}

func TestSlotsSortedByStart(t *testing.T) {
	c, err := NewCatalog(
		[]Subject{{ID: "A", Name: "A", Weight: 1}},
		[]Slot{
			{ID: "late", Weekday: time.Monday, SubjectID: "A", Start: "14:00", End: "15:00"},
			{ID: "early", Weekday: time.Monday, SubjectID: "A", Start: "09:00", End: "10:00"},
		},
	)
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	slots := c.SlotsFor(time.Monday)
	if slots[0].ID != "early" || slots[1].ID != "late" {
		t.Fatalf("unexpected order: %v", slots)
	}
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	_, err := NewCatalog([]Subject{{ID: "A", Name: "A", Weight: 1}, {ID: "A", Name: "B", Weight: 1}}, nil)
	if err == nil {
		t.Fatalf("expected duplicate subject error")
	}
	_, err = NewCatalog([]Subject{{ID: "A", Name: "A", Weight: 1}}, []Slot{
		{ID: "s", Weekday: time.Monday, SubjectID: "A", Start: "09:00", End: "10:00"},
		{ID: "s", Weekday: time.Tuesday, SubjectID: "A", Start: "09:00", End: "10:00"},
	})
	if err == nil {
		t.Fatalf("expected duplicate slot error")
	}
}

func TestLoadValidatesFile(t *testing.T) {
	valid := `{
		"subjects": [{"id": "DB", "name": "Databases", "type": "THEORY", "weight": 1}],
		"slots": [{"id": "mon_1", "weekday": 1, "subject_id": "DB", "start": "09:30", "end": "10:20"},
		          {"id": "mon_2", "weekday": 1, "subject_id": "GHOST", "start": "10:30", "end": "11:20"}]
	}`
	c, err := Load([]byte(valid))
	if err != nil {
		t.Fatalf("load valid timetable: %v", err)
	}
	if ids := c.UnknownSubjectSlots(); len(ids) != 1 || ids[0] != "mon_2" {
		t.Fatalf("expected mon_2 to reference unknown subject, got %v", ids)
	}

	cases := map[string]string{
		"weight":  `{"subjects":[{"id":"DB","name":"D","weight":0}],"slots":[]}`,
		"weekday": `{"subjects":[{"id":"DB","name":"D","weight":1}],"slots":[{"id":"x","weekday":7,"subject_id":"DB","start":"09:00","end":"10:00"}]}`,
		"clock":   `{"subjects":[{"id":"DB","name":"D","weight":1}],"slots":[{"id":"x","weekday":1,"subject_id":"DB","start":"9am","end":"10:00"}]}`,
		"order":   `{"subjects":[{"id":"DB","name":"D","weight":1}],"slots":[{"id":"x","weekday":1,"subject_id":"DB","start":"11:00","end":"10:00"}]}`,
		"type":    `{"subjects":[{"id":"DB","name":"D","type":"SEMINAR","weight":1}],"slots":[]}`,
	}
	for name, body := range cases {
		if _, err := Load([]byte(body)); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}

	if _, err := Load([]byte("{")); err == nil || !strings.Contains(err.Error(), "unmarshal") {
		t.Fatalf("expected unmarshal error, got %v", err)
	}
}

func TestLabel(t *testing.T) {
	c := Default()
	slot, _ := c.Slot("mon_4")
	if got := c.Label(slot); got != "DL&CO (CLC)" {
		t.Fatalf("expected display name, got %q", got)
	}
	slot, _ = c.Slot("mon_1")
	if got := c.Label(slot); got != "Environmental Science" {
		t.Fatalf("expected subject name, got %q", got)
	}
}
