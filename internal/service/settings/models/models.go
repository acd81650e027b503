package models

import (
	"time"

	"github.com/m04kA/SMC-ClassroomService/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на обновление глобальных настроек расписания
// Незаполненные поля сохраняют текущие значения
type UpdateSettingsRequest struct {
	OperatingStart       *string `json:"operatingStart,omitempty"`       // "08:00"
	OperatingEnd         *string `json:"operatingEnd,omitempty"`         // "18:00"
	DefaultMaxTimePerDay *int    `json:"defaultMaxTimePerDay,omitempty"` // Минуты в день по умолчанию
	SlotDurationMinutes  *int    `json:"slotDurationMinutes,omitempty"`  // Шаг сетки слотов
}

// UpdateClassroomConfigRequest запрос на обновление политики аудитории
// Незаполненные поля сохраняют текущие значения
type UpdateClassroomConfigRequest struct {
	Active           *bool    `json:"active,omitempty"`
	Permission       *string  `json:"permission,omitempty"` // student или admin_only
	RequiresApproval *bool    `json:"requiresApproval,omitempty"`
	MaxTimePerDay    *int     `json:"maxTimePerDay,omitempty"` // -1 без лимита, 0 глобальный дефолт
	AssignedAdmins   *[]int64 `json:"assignedAdmins,omitempty"`
}

// Response модели

// SettingsResponse ответ с глобальными настройками расписания
type SettingsResponse struct {
	OperatingStart       string    `json:"operatingStart"`
	OperatingEnd         string    `json:"operatingEnd"`
	DefaultMaxTimePerDay int       `json:"defaultMaxTimePerDay"`
	SlotDurationMinutes  int       `json:"slotDurationMinutes"`
	UpdatedAt            time.Time `json:"updatedAt"`
	UpdatedBy            *int64    `json:"updatedBy,omitempty"`
}

// ClassroomResponse ответ с конфигурацией аудитории
type ClassroomResponse struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Description      *string   `json:"description,omitempty"`
	Active           bool      `json:"active"`
	Permission       string    `json:"permission"`
	RequiresApproval bool      `json:"requiresApproval"`
	MaxTimePerDay    int       `json:"maxTimePerDay"`
	AssignedAdmins   []int64   `json:"assignedAdmins"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ClassroomListResponse ответ со списком аудиторий
type ClassroomListResponse struct {
	Classrooms []ClassroomResponse `json:"classrooms"`
}

// Методы конвертации

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.Settings) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		OperatingStart:       s.OperatingStart.String(),
		OperatingEnd:         s.OperatingEnd.String(),
		DefaultMaxTimePerDay: s.DefaultMaxTimePerDay,
		SlotDurationMinutes:  s.SlotDurationMinutes,
		UpdatedAt:            s.UpdatedAt,
	}

	// Ноль означает, что настройки ещё никто не менял
	if s.UpdatedBy != 0 {
		updatedBy := s.UpdatedBy
		resp.UpdatedBy = &updatedBy
	}

	return resp
}

// FromDomainClassroom конвертирует domain модель в DTO
func FromDomainClassroom(c *domain.Classroom) *ClassroomResponse {
	if c == nil {
		return nil
	}

	admins := c.AssignedAdmins
	if admins == nil {
		admins = []int64{}
	}

	return &ClassroomResponse{
		ID:               c.ID,
		Name:             c.Name,
		Description:      c.Description,
		Active:           c.Active,
		Permission:       string(c.Permission),
		RequiresApproval: c.RequiresApproval,
		MaxTimePerDay:    c.MaxTimePerDay,
		AssignedAdmins:   admins,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// FromDomainClassroomList конвертирует список domain моделей в DTO
func FromDomainClassroomList(classrooms []*domain.Classroom) *ClassroomListResponse {
	result := &ClassroomListResponse{
		Classrooms: make([]ClassroomResponse, 0, len(classrooms)),
	}

	for _, c := range classrooms {
		if resp := FromDomainClassroom(c); resp != nil {
			result.Classrooms = append(result.Classrooms, *resp)
		}
	}

	return result
}
