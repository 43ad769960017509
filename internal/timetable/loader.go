package timetable

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// File - формат JSON-файла расписания
type File struct {
	Subjects []Subject `json:"subjects" validate:"required,min=1,dive"`
	Slots    []Slot    `json:"slots" validate:"dive"`
}

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
	return v
}

// LoadFile читает и проверяет расписание из JSON-файла
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timetable file: %w", err)
	}
	return Load(data)
}

// Load разбирает JSON расписания
func Load(data []byte) (*Catalog, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal timetable: %w", err)
	}

	if err := newValidator().Struct(f); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return nil, fmt.Errorf("invalid timetable: field %s failed %q", first.Namespace(), first.Tag())
		}
		return nil, fmt.Errorf("invalid timetable: %w", err)
	}

	for _, slot := range f.Slots {
		if slot.End <= slot.Start {
			return nil, fmt.Errorf("slot %q: end %s is not after start %s", slot.ID, slot.End, slot.Start)
		}
	}

	return NewCatalog(f.Subjects, f.Slots)
}
