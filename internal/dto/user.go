package dto

import "github.com/BruksfildServices01/realty-api/internal/models"

type UserDTO struct {
	ID             uint    `json:"id"`
	Email          string  `json:"email"`
	Username       string  `json:"username"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	PhoneNumber    *string `json:"phone_number"`
	DateOfBirth    *string `json:"date_of_birth"`
	ProfilePicture *string `json:"profile_picture"`
	Bio            string  `json:"bio"`
	DigitalID      *string `json:"digital_id"`
	Address        *string `json:"address"`
	City           *string `json:"city"`
	Role           string  `json:"role"`
}

// AdminUserDTO adds account state shown to admins.
type AdminUserDTO struct {
	UserDTO
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
	DateJoined  string `json:"date_joined"`
}

type AuthDTO struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

func User(u *models.User, url URLFunc) UserDTO {
	out := UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		DateOfBirth: formatDate(u.DateOfBirth),
		Bio:         u.Bio,
		DigitalID:   u.DigitalID,
		Address:     u.Address,
		City:        u.City,
		Role:        u.Role,
	}
	if u.ProfilePicture != nil && *u.ProfilePicture != "" {
		link := url(*u.ProfilePicture)
		out.ProfilePicture = &link
	}
	return out
}

func Users(users []models.User, url URLFunc) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, User(&users[i], url))
	}
	return out
}

func AdminUser(u *models.User, url URLFunc) AdminUserDTO {
	return AdminUserDTO{
		UserDTO:     User(u, url),
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		DateJoined:  u.DateJoined.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
