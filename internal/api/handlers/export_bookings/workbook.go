package export_bookings

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/PTM-BookingService/internal/domain"
	"github.com/m04kA/PTM-BookingService/internal/service/bookings/models"
)

const (
	SheetBookings = "Записи на прием"
	SheetByDate   = "Статистика по дням"

	dateLayout     = "02.01.2006"
	dateTimeLayout = "02.01.2006 15:04"
	roomUnknown    = "не указан"
	totalLabel     = "ИТОГО"
)

var bookingColumns = []struct {
	title string
	width float64
}{
	{"ID записи", 16},
	{"Учитель", 25},
	{"Кабинет", 10},
	{"Дата приема", 12},
	{"День недели", 15},
	{"Время приема", 15},
	{"ФИО родителя", 25},
	{"Телефон родителя", 18},
	{"Email родителя", 25},
	{"ФИО ученика", 25},
	{"Класс ученика", 12},
	{"Статус записи", 15},
	{"Дата создания записи", 20},
	{"Комментарий", 40},
}

var byDateColumns = []struct {
	title string
	width float64
}{
	{"Дата приема", 15},
	{"Количество записей", 20},
	{"Количество учителей", 20},
	{"Занятые слоты", 40},
}

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "Понедельник",
	time.Tuesday:   "Вторник",
	time.Wednesday: "Среда",
	time.Thursday:  "Четверг",
	time.Friday:    "Пятница",
	time.Saturday:  "Суббота",
	time.Sunday:    "Воскресенье",
}

// WriteWorkbook пишет xlsx с листом записей и листом сводки по датам приёма
func WriteWorkbook(w io.Writer, bookings []models.BookingResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetBookings); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeBookingsSheet(f, bookings); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetByDate); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := writeByDateSheet(f, bookings); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeBookingsSheet(f *excelize.File, bookings []models.BookingResponse) error {
	header := make([]interface{}, len(bookingColumns))
	for i, col := range bookingColumns {
		header[i] = col.title
	}
	if err := setRow(f, SheetBookings, 1, header); err != nil {
		return err
	}

	for i, b := range bookings {
		date, weekday := formatDate(b.Date)

		teacher := b.TeacherName
		if teacher == "" {
			teacher = b.TeacherID
		}
		room := b.TeacherRoom
		if room == "" {
			room = roomUnknown
		}

		row := []interface{}{
			b.ID,
			teacher,
			room,
			date,
			weekday,
			b.SelectedTime,
			b.ParentName,
			b.Phone,
			b.Email,
			b.StudentName,
			b.StudentClass,
			b.Status,
			b.CreatedAt.Format(dateTimeLayout),
			b.Comment,
		}
		if err := setRow(f, SheetBookings, i+2, row); err != nil {
			return err
		}
	}

	return setWidths(f, SheetBookings, len(bookingColumns), func(i int) float64 { return bookingColumns[i].width })
}

type dateSummary struct {
	date     string
	count    int
	teachers map[string]struct{}
	slots    []string
}

func writeByDateSheet(f *excelize.File, bookings []models.BookingResponse) error {
	header := make([]interface{}, len(byDateColumns))
	for i, col := range byDateColumns {
		header[i] = col.title
	}
	if err := setRow(f, SheetByDate, 1, header); err != nil {
		return err
	}

	summaries := summarizeByDate(bookings)

	allTeachers := make(map[string]struct{})
	for _, b := range bookings {
		allTeachers[b.TeacherID] = struct{}{}
	}

	for i, s := range summaries {
		date, _ := formatDate(s.date)
		row := []interface{}{date, s.count, len(s.teachers), strings.Join(s.slots, ", ")}
		if err := setRow(f, SheetByDate, i+2, row); err != nil {
			return err
		}
	}

	total := []interface{}{
		totalLabel,
		len(bookings),
		len(allTeachers),
		fmt.Sprintf("Всего дней приёма: %d", len(summaries)),
	}
	if err := setRow(f, SheetByDate, len(summaries)+2, total); err != nil {
		return err
	}

	return setWidths(f, SheetByDate, len(byDateColumns), func(i int) float64 { return byDateColumns[i].width })
}

// summarizeByDate группирует записи по дате приёма, даты по возрастанию
func summarizeByDate(bookings []models.BookingResponse) []*dateSummary {
	byDate := make(map[string]*dateSummary)
	for _, b := range bookings {
		s, ok := byDate[b.Date]
		if !ok {
			s = &dateSummary{date: b.Date, teachers: make(map[string]struct{})}
			byDate[b.Date] = s
		}
		s.count++
		s.teachers[b.TeacherID] = struct{}{}
		s.slots = append(s.slots, b.SelectedTime)
	}

	out := make([]*dateSummary, 0, len(byDate))
	for _, s := range byDate {
		sort.Strings(s.slots)
		out = append(out, s)
	}
	// YYYY-MM-DD сортируется лексикографически
	sort.Slice(out, func(i, j int) bool { return out[i].date < out[j].date })

	return out
}

func formatDate(raw string) (string, string) {
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return raw, ""
	}
	return date.Format(dateLayout), weekdayNames[date.Weekday()]
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("set row %d on %q: %w", row, sheet, err)
	}
	return nil
}

func setWidths(f *excelize.File, sheet string, n int, width func(int) float64) error {
	for i := 0; i < n; i++ {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(sheet, col, col, width(i)); err != nil {
			return fmt.Errorf("set width %s on %q: %w", col, sheet, err)
		}
	}
	return nil
}
