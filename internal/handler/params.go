package handler

type RegisterParams struct {
	Username       string `json:"username"        form:"username"`
	Email          string `json:"email"           form:"email"`
	Password       string `json:"password"        form:"password"`
	FullName       string `json:"full_name"       form:"full_name"`
	Initials       string `json:"initials"        form:"initials"`
	ContactNumber  string `json:"contact_number"  form:"contact_number"`
	Address        string `json:"address"         form:"address"`
	GuardianName   string `json:"guardian_name"   form:"guardian_name"`
	GuardianNumber string `json:"guardian_number" form:"guardian_number"`
}

// LoginParams accepts the identifier under any of its three names.
type LoginParams struct {
	Identifier string `json:"identifier" form:"identifier"`
	Username   string `json:"username"   form:"username"`
	Email      string `json:"email"      form:"email"`
	Password   string `json:"password"   form:"password"`
}

func (p *LoginParams) identifier() string {
	switch {
	case p.Identifier != "":
		return p.Identifier
	case p.Email != "":
		return p.Email
	default:
		return p.Username
	}
}

type ChangePasswordParams struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password"     form:"new_password"`
}

type ForgotPasswordParams struct {
	Email string `json:"email" form:"email"`
}

type ResetPasswordParams struct {
	Email       string `json:"email"        form:"email"`
	Code        string `json:"code"         form:"code"`
	ResetCode   string `json:"reset_code"   form:"reset_code"`
	NewPassword string `json:"new_password" form:"new_password"`
}

func (p *ResetPasswordParams) code() string {
	if p.Code != "" {
		return p.Code
	}
	return p.ResetCode
}

type SuperAdminLoginParams struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type PatchUserRoleParams struct {
	UserID int64  `param:"user_id"`
	Role   string `                json:"role" form:"role"`
}

type LoginHistoryParams struct {
	Limit int `query:"limit"`
}

type TeacherIDParams struct {
	TeacherID int64 `param:"teacher_id"`
}

type CourseIDParams struct {
	CourseID int64 `param:"course_id"`
}
