package store

type Course struct {
	CourseID             int64   `json:"id"`
	CourseName           string  `json:"course_name"`
	CourseDuration       string  `json:"course_duration"`
	CoverPhoto           string  `json:"-"`
	CourseDescription    string  `json:"course_description"`
	CourseSyllabus       string  `json:"course_syllabus"`
	TeacherName          string  `json:"teacher_name"`
	TeacherQualification string  `json:"teacher_qualification"`
	Duration             string  `json:"duration"`
	Payment              string  `json:"payment"`
	FullPrice            float64 `json:"full_price"`
	AdmissionFees        float64 `json:"admission_fees"`
}
