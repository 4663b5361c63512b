package http

import (
	"time"

	"github.com/khoahotran/namelookup/internal/domain/user"
)

// Callable DTOs

type LookupPayload struct {
	DisplayName string `json:"displayName"`
}

// CallableLookupRequest accepts the callable envelope {"data": {...}} as well
// as a bare payload.
type CallableLookupRequest struct {
	Data        *LookupPayload `json:"data"`
	DisplayName string         `json:"displayName"`
}

func (r *CallableLookupRequest) GetDisplayName() string {
	if r.Data != nil {
		return r.Data.DisplayName
	}
	return r.DisplayName
}

type LookupResultDTO struct {
	Email string `json:"email"`
}

type CallableLookupResponse struct {
	Result LookupResultDTO `json:"result"`
}

// User DTOs

type RegisterUserRequest struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName" binding:"required"`
	Email       string `json:"email" binding:"required"`
}

type UserDTO struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		CreatedAt:   u.CreatedAt,
	}
}
