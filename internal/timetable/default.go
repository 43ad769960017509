package timetable

import "time"

// DefaultTermStart - начало семестра по умолчанию
const DefaultTermStart = "2025-12-10"

var defaultSubjects = []Subject{
	{ID: "EVS", Name: "Environmental Science", Type: SubjectTheory, Weight: 1},
	{ID: "DL_CO", Name: "DL & CO", Type: SubjectTheory, Weight: 1},
	{ID: "P_S", Name: "Prob & Stats", Type: SubjectTheory, Weight: 1},
	{ID: "ML", Name: "Machine Learning", Type: SubjectTheory, Weight: 1},
	{ID: "DTI", Name: "Design Thinking", Type: SubjectTheory, Weight: 1},
	{ID: "DBMS", Name: "DBMS", Type: SubjectTheory, Weight: 1},
	{ID: "OT", Name: "Optimization Tech", Type: SubjectTheory, Weight: 1},
	{ID: "COUNSELING", Name: "Counseling", Type: SubjectTheory, Weight: 1},
	{ID: "AI_ML_LAB", Name: "AI & ML Lab", Type: SubjectLab, Weight: 3},
	{ID: "FSD_LAB", Name: "Full Stack Lab", Type: SubjectLab, Weight: 3},
	{ID: "DBMS_LAB", Name: "DBMS Lab", Type: SubjectLab, Weight: 3},
}

var defaultSlots = []Slot{
	{ID: "mon_1", Weekday: time.Monday, SubjectID: "EVS", Start: "09:30", End: "10:20"},
	{ID: "mon_2", Weekday: time.Monday, SubjectID: "DL_CO", Start: "10:20", End: "11:10"},
	{ID: "mon_3", Weekday: time.Monday, SubjectID: "P_S", Start: "11:10", End: "12:00"},
	{ID: "mon_4", Weekday: time.Monday, SubjectID: "DL_CO", DisplayName: "DL&CO (CLC)", Start: "12:00", End: "12:50"},
	{ID: "mon_5", Weekday: time.Monday, SubjectID: "ML", DisplayName: "ML (CLC)", Start: "13:50", End: "14:40"},
	{ID: "mon_6", Weekday: time.Monday, SubjectID: "DTI", Start: "14:40", End: "15:30"},
	{ID: "mon_7", Weekday: time.Monday, SubjectID: "COUNSELING", Start: "15:30", End: "16:20"},

	{ID: "tue_1", Weekday: time.Tuesday, SubjectID: "DBMS", Start: "09:30", End: "10:20"},
	{ID: "tue_2", Weekday: time.Tuesday, SubjectID: "AI_ML_LAB", DisplayName: "AI & ML LAB", Start: "10:20", End: "12:50"},
	{ID: "tue_3", Weekday: time.Tuesday, SubjectID: "P_S", Start: "13:50", End: "14:40"},
	{ID: "tue_4", Weekday: time.Tuesday, SubjectID: "OT", Start: "14:40", End: "15:30"},
	{ID: "tue_5", Weekday: time.Tuesday, SubjectID: "OT", DisplayName: "OT (CLC)", Start: "15:30", End: "16:20"},

	{ID: "wed_1", Weekday: time.Wednesday, SubjectID: "DL_CO", Start: "09:30", End: "10:20"},
	{ID: "wed_2", Weekday: time.Wednesday, SubjectID: "EVS", Start: "10:20", End: "11:10"},
	{ID: "wed_3", Weekday: time.Wednesday, SubjectID: "OT", Start: "11:10", End: "12:00"},
	{ID: "wed_4", Weekday: time.Wednesday, SubjectID: "DTI", Start: "12:00", End: "12:50"},
	{ID: "wed_5", Weekday: time.Wednesday, SubjectID: "DBMS", Start: "13:50", End: "14:40"},
	{ID: "wed_6", Weekday: time.Wednesday, SubjectID: "ML", Start: "14:40", End: "15:30"},
	{ID: "wed_7", Weekday: time.Wednesday, SubjectID: "P_S", Start: "15:30", End: "16:20"},

	{ID: "thu_1", Weekday: time.Thursday, SubjectID: "DBMS", Start: "09:30", End: "10:20"},
	{ID: "thu_2", Weekday: time.Thursday, SubjectID: "ML", Start: "10:20", End: "11:10"},
	{ID: "thu_3", Weekday: time.Thursday, SubjectID: "P_S", DisplayName: "P&S (CLC)", Start: "11:10", End: "12:00"},
	{ID: "thu_4", Weekday: time.Thursday, SubjectID: "OT", Start: "12:00", End: "12:50"},
	{ID: "thu_5", Weekday: time.Thursday, SubjectID: "DTI", DisplayName: "DTI (CLC)", Start: "13:50", End: "14:40"},
	{ID: "thu_6", Weekday: time.Thursday, SubjectID: "DL_CO", Start: "14:40", End: "15:30"},
	{ID: "thu_7", Weekday: time.Thursday, SubjectID: "DBMS", DisplayName: "DBMS (CLC)", Start: "15:30", End: "16:20"},

	{ID: "fri_1", Weekday: time.Friday, SubjectID: "ML", Start: "09:30", End: "10:20"},
	{ID: "fri_2", Weekday: time.Friday, SubjectID: "FSD_LAB", DisplayName: "FSD-I LAB", Start: "10:20", End: "12:50"},
	{ID: "fri_3", Weekday: time.Friday, SubjectID: "P_S", Start: "13:50", End: "14:40"},
	{ID: "fri_4", Weekday: time.Friday, SubjectID: "DTI", Start: "14:40", End: "15:30"},
	{ID: "fri_5", Weekday: time.Friday, SubjectID: "OT", Start: "15:30", End: "16:20"},

	{ID: "sat_1", Weekday: time.Saturday, SubjectID: "DTI", Start: "09:30", End: "10:20"},
	{ID: "sat_2", Weekday: time.Saturday, SubjectID: "ML", Start: "10:20", End: "11:10"},
	{ID: "sat_3", Weekday: time.Saturday, SubjectID: "DBMS", Start: "11:10", End: "12:00"},
	{ID: "sat_4", Weekday: time.Saturday, SubjectID: "DL_CO", Start: "12:00", End: "12:50"},
	{ID: "sat_5", Weekday: time.Saturday, SubjectID: "DBMS_LAB", DisplayName: "DBMS LAB", Start: "13:50", End: "16:20"},
}

// Default возвращает встроенное расписание группы
func Default() *Catalog {
	c, err := NewCatalog(defaultSubjects, defaultSlots)
	if err != nil {
		panic(err)
	}
	return c
}
