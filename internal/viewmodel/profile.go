package viewmodel

import (
	"icc-dashboard/internal/models"
	"icc-dashboard/internal/timeutil"
)

// ProfileView is the settings screen's read-only header plus form values.
type ProfileView struct {
	ID             int    `json:"id"`
	FullName       string `json:"full_name"`
	Initials       string `json:"initials"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Role           string `json:"role"`
	RoleLabel      string `json:"role_label"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	Address        string `json:"address,omitempty"`
	Postcode       string `json:"postcode,omitempty"`
	MemberSince    string `json:"member_since,omitempty"`
	// Cleaner only.
	DBAStatus string `json:"dba_status,omitempty"`
}

func MapProfile(u models.User) ProfileView {
	v := ProfileView{
		ID:             u.ID,
		FullName:       u.FullName(),
		Initials:       Initials(u.FirstName, u.LastName),
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		Phone:          u.Profile.Phone,
		Role:           u.Role,
		RoleLabel:      StatusLabel(u.Role),
		ProfilePicture: u.Profile.ProfilePicture,
		Address:        u.Profile.Address,
		Postcode:       u.Profile.Postcode,
		MemberSince:    timeutil.FormatDate(u.DateJoined),
	}
	if u.Role == "cleaner" {
		switch {
		case u.Profile.DBAVerified:
			v.DBAStatus = "Verified"
		case u.Profile.DBADocument != "":
			v.DBAStatus = "Pending Review"
		default:
			v.DBAStatus = "Not Uploaded"
		}
	}
	return v
}
