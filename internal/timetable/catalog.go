package timetable

import (
	"fmt"
	"sort"
	"time"
)

type SubjectType string

const (
	SubjectTheory SubjectType = "THEORY"
	SubjectLab    SubjectType = "LAB"
)

// Subject - предмет; Weight - вклад одного занятия в итоги (теория 1, лаба 3)
type Subject struct {
	ID     string      `json:"id" validate:"required"`
	Name   string      `json:"name" validate:"required"`
	Type   SubjectType `json:"type" validate:"omitempty,oneof=THEORY LAB"`
	Weight int         `json:"weight" validate:"min=1"`
}

// Slot - пара в недельном расписании
type Slot struct {
	ID          string       `json:"id" validate:"required"`
	Weekday     time.Weekday `json:"weekday" validate:"min=0,max=6"`
	SubjectID   string       `json:"subject_id" validate:"required"`
	DisplayName string       `json:"display_name,omitempty"`
	Start       string       `json:"start" validate:"required,clock"`
	End         string       `json:"end" validate:"required,clock"`
}

// Catalog - неизменяемое расписание. Создается один раз при старте
type Catalog struct {
	subjects     []Subject
	subjectIndex map[string]Subject
	slots        map[string]Slot
	byWeekday    [7][]Slot
}

// NewCatalog строит каталог. Слоты с неизвестным предметом сохраняются,
// их пропускает подсчет статистики
func NewCatalog(subjects []Subject, slots []Slot) (*Catalog, error) {
	c := &Catalog{
		subjects:     make([]Subject, 0, len(subjects)),
		subjectIndex: make(map[string]Subject, len(subjects)),
		slots:        make(map[string]Slot, len(slots)),
	}

	for _, s := range subjects {
		if _, dup := c.subjectIndex[s.ID]; dup {
			return nil, fmt.Errorf("duplicate subject id %q", s.ID)
		}
		if s.Weight <= 0 {
			return nil, fmt.Errorf("subject %q: weight must be positive", s.ID)
		}
		c.subjects = append(c.subjects, s)
		c.subjectIndex[s.ID] = s
	}

	for _, slot := range slots {
		if _, dup := c.slots[slot.ID]; dup {
			return nil, fmt.Errorf("duplicate slot id %q", slot.ID)
		}
		if slot.Weekday < time.Sunday || slot.Weekday > time.Saturday {
			return nil, fmt.Errorf("slot %q: weekday %d out of range", slot.ID, slot.Weekday)
		}
		c.slots[slot.ID] = slot
		c.byWeekday[slot.Weekday] = append(c.byWeekday[slot.Weekday], slot)
	}

	for i := range c.byWeekday {
		day := c.byWeekday[i]
		sort.SliceStable(day, func(a, b int) bool { return day[a].Start < day[b].Start })
	}

	return c, nil
}

// Subjects возвращает предметы в порядке объявления
func (c *Catalog) Subjects() []Subject {
	out := make([]Subject, len(c.subjects))
	copy(out, c.subjects)
	return out
}

func (c *Catalog) Subject(id string) (Subject, bool) {
	s, ok := c.subjectIndex[id]
	return s, ok
}

func (c *Catalog) Slot(id string) (Slot, bool) {
	s, ok := c.slots[id]
	return s, ok
}

// SlotsFor возвращает пары дня недели, отсортированные по времени начала.
// Возвращаемый срез нельзя изменять
func (c *Catalog) SlotsFor(w time.Weekday) []Slot {
	if w < time.Sunday || w > time.Saturday {
		return nil
	}
	return c.byWeekday[w]
}

// UnknownSubjectSlots - слоты, ссылающиеся на отсутствующие предметы
func (c *Catalog) UnknownSubjectSlots() []string {
	var ids []string
	for _, day := range c.byWeekday {
		for _, slot := range day {
			if _, ok := c.subjectIndex[slot.SubjectID]; !ok {
				ids = append(ids, slot.ID)
			}
		}
	}
	return ids
}

// Label - название пары для вывода
func (c *Catalog) Label(slot Slot) string {
	if slot.DisplayName != "" {
		return slot.DisplayName
	}
	if s, ok := c.subjectIndex[slot.SubjectID]; ok {
		return s.Name
	}
	return slot.SubjectID
}
