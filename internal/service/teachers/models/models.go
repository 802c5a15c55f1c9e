package models

import "github.com/m04kA/PTM-BookingService/internal/domain"

// TeacherResponse учитель в публичном справочнике
type TeacherResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Room string `json:"room,omitempty"`
}

// TeacherListResponse список учителей
type TeacherListResponse struct {
	Teachers []TeacherResponse `json:"teachers"`
}

// FromDomainTeachers конвертирует справочник в DTO
func FromDomainTeachers(teachers []domain.Teacher) *TeacherListResponse {
	resp := &TeacherListResponse{Teachers: make([]TeacherResponse, 0, len(teachers))}
	for _, t := range teachers {
		resp.Teachers = append(resp.Teachers, TeacherResponse{ID: t.ID, Name: t.Name, Room: t.Room})
	}
	return resp
}
