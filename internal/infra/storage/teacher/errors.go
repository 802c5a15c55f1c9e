package teacher

import "errors"

var (
	// ErrTeacherNotFound возвращается, когда учителя нет в справочнике
	ErrTeacherNotFound = errors.New("teacher.repository: teacher not found")

	// ErrDuplicateTeacher возвращается при повторяющемся ID в справочнике
	ErrDuplicateTeacher = errors.New("teacher.repository: duplicate teacher id")

	// ErrInvalidTeacher возвращается, когда у учителя не заполнены ID или имя
	ErrInvalidTeacher = errors.New("teacher.repository: invalid teacher")

	// ErrAmbiguousTeacher возвращается, когда по имени подходит несколько учителей
	ErrAmbiguousTeacher = errors.New("teacher.repository: ambiguous teacher label")
)
