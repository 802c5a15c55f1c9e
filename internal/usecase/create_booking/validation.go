package create_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/PTM-BookingService/internal/domain"
)

// normalizeRequest обрезает пробелы во всех текстовых полях
func normalizeRequest(req *Request) {
	req.TeacherID = strings.TrimSpace(req.TeacherID)
	req.Slot = strings.TrimSpace(req.Slot)
	req.ParentName = strings.TrimSpace(req.ParentName)
	req.StudentName = strings.TrimSpace(req.StudentName)
	req.StudentClass = strings.TrimSpace(req.StudentClass)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.TrimSpace(req.Email)
	req.Comment = strings.TrimSpace(req.Comment)
}

// validateRequiredFields проверяет наличие обязательных полей (шаг 1)
func validateRequiredFields(req *Request) error {
	required := []struct {
		name  string
		value string
	}{
		{"teacherId", req.TeacherID},
		{"slot", req.Slot},
		{"parentName", req.ParentName},
		{"studentName", req.StudentName},
		{"studentClass", req.StudentClass},
		{"phone", req.Phone},
	}

	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date", ErrMissingField)
	}

	limits := []struct {
		name  string
		value string
		max   int
	}{
		{"parentName", req.ParentName, domain.MaxNameLength},
		{"studentName", req.StudentName, domain.MaxNameLength},
		{"studentClass", req.StudentClass, domain.MaxNameLength},
		{"phone", req.Phone, domain.MaxNameLength},
		{"email", req.Email, domain.MaxNameLength},
		{"comment", req.Comment, domain.MaxCommentLength},
	}

	for _, f := range limits {
		if utf8.RuneCountInString(f.value) > f.max {
			return fmt.Errorf("%w: %s is longer than %d characters", ErrInvalidInput, f.name, f.max)
		}
	}

	return nil
}

// validateSlot проверяет формат слота и его принадлежность календарю (шаг 3)
func validateSlot(raw string, window domain.SlotWindow) (domain.Slot, error) {
	slot, err := domain.ParseSlot(raw)
	if err != nil {
		return domain.Slot{}, fmt.Errorf("%w: %q", ErrInvalidSlot, raw)
	}

	ok, err := window.Contains(slot)
	if err != nil {
		return domain.Slot{}, fmt.Errorf("%w: slot window: %v", ErrInternal, err)
	}
	if !ok {
		return domain.Slot{}, fmt.Errorf("%w: %s", ErrInvalidSlot, slot)
	}

	return slot, nil
}

// lockKey ключ взаимного исключения для учителя и даты
func lockKey(teacherID string, date string) string {
	return teacherID + "|" + date
}
