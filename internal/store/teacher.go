package store

type Teacher struct {
	TeacherID          int64   `json:"id"`
	LecturerName       string  `json:"lecturer_name"`
	Address            string  `json:"address"`
	Telephone          string  `json:"telephone"`
	Qualification      string  `json:"qualification"`
	RatePerHour        float64 `json:"rate_per_hour"`
	Username           string  `json:"username"`
	PasswordHash       string  `json:"-"`
	ModuleName         string  `json:"module_name"`
	NoOfHoursAllocated int64   `json:"no_of_hours_allocated"`
	ProfilePicture     string  `json:"-"`
}
