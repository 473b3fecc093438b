package handler

import (
	"context"
	"net/http"

	"github.com/haatos/simple-lms/internal/service"
	"github.com/haatos/simple-lms/internal/store"
	"github.com/labstack/echo/v4"
)

type CourseServicer interface {
	CreateCourse(context.Context, service.CourseParams, *service.Upload) (*store.Course, error)
	GetCourse(context.Context, int64) (*store.Course, error)
	ListCourses(context.Context) ([]*store.Course, error)
	UpdateCourse(context.Context, int64, service.CourseParams, *service.Upload) (*store.Course, error)
	DeleteCourse(context.Context, int64) error
}

type courseResponse struct {
	*store.Course
	CoverPhotoURL string `json:"cover_photo"`
}

func newCourseResponse(course *store.Course) courseResponse {
	return courseResponse{Course: course, CoverPhotoURL: uploadURL(course.CoverPhoto)}
}

// SetupCourseRoutes registers the course routes. Reads are public, writes
// need the super admin.
func SetupCourseRoutes(g *echo.Group, courseService CourseServicer) {
	h := NewCourseHandler(courseService)
	g.GET("", h.GetCourses)
	g.GET("/:course_id", h.GetCourse)
	g.POST("/add", h.PostCourse, RequireSuperAdmin)
	g.PUT("/update/:course_id", h.PutCourse, RequireSuperAdmin)
	g.DELETE("/delete/:course_id", h.DeleteCourse, RequireSuperAdmin)
}

type CourseHandler struct {
	courseService CourseServicer
}

func NewCourseHandler(courseService CourseServicer) *CourseHandler {
	return &CourseHandler{courseService}
}

func (h *CourseHandler) GetCourses(c echo.Context) error {
	courses, err := h.courseService.ListCourses(c.Request().Context())
	if err != nil {
		return serviceError(c, err, "unable to list courses")
	}
	res := make([]courseResponse, 0, len(courses))
	for _, course := range courses {
		res = append(res, newCourseResponse(course))
	}
	return c.JSON(http.StatusOK, res)
}

func (h *CourseHandler) GetCourse(c echo.Context) error {
	cp := new(CourseIDParams)
	if err := c.Bind(cp); err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid course id")
	}
	course, err := h.courseService.GetCourse(c.Request().Context(), cp.CourseID)
	if err != nil {
		return serviceError(c, err, "unable to read course")
	}
	return c.JSON(http.StatusOK, newCourseResponse(course))
}

func (h *CourseHandler) PostCourse(c echo.Context) error {
	p, err := courseParamsFromForm(c)
	if err != nil {
		return serviceError(c, err, "invalid course data")
	}
	cover, closeCover, err := formUpload(c, "cover_photo")
	if err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid cover photo")
	}
	defer closeCover()

	course, err := h.courseService.CreateCourse(c.Request().Context(), p, cover)
	if err != nil {
		return serviceError(c, err, "unable to add course")
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Course added successfully!",
		"course":  newCourseResponse(course),
	})
}

func (h *CourseHandler) PutCourse(c echo.Context) error {
	cp := new(CourseIDParams)
	if err := c.Bind(cp); err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid course id")
	}
	p, err := courseParamsFromForm(c)
	if err != nil {
		return serviceError(c, err, "invalid course data")
	}
	cover, closeCover, err := formUpload(c, "cover_photo")
	if err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid cover photo")
	}
	defer closeCover()

	course, err := h.courseService.UpdateCourse(c.Request().Context(), cp.CourseID, p, cover)
	if err != nil {
		return serviceError(c, err, "unable to update course")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Course updated successfully!",
		"course":  newCourseResponse(course),
	})
}

func (h *CourseHandler) DeleteCourse(c echo.Context) error {
	cp := new(CourseIDParams)
	if err := c.Bind(cp); err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid course id")
	}
	if err := h.courseService.DeleteCourse(c.Request().Context(), cp.CourseID); err != nil {
		return serviceError(c, err, "unable to delete course")
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Course deleted successfully!"})
}

func courseParamsFromForm(c echo.Context) (service.CourseParams, error) {
	fullPrice, err := formFloat(c, "full_price")
	if err != nil {
		return service.CourseParams{}, err
	}
	admissionFees, err := formFloat(c, "admission_fees")
	if err != nil {
		return service.CourseParams{}, err
	}
	return service.CourseParams{
		CourseName:           formString(c, "course_name"),
		CourseDuration:       formString(c, "course_duration"),
		CourseDescription:    formString(c, "course_description"),
		CourseSyllabus:       formString(c, "course_syllabus"),
		TeacherName:          formString(c, "teacher_name"),
		TeacherQualification: formString(c, "teacher_qualification"),
		Duration:             formString(c, "duration"),
		Payment:              formString(c, "payment"),
		FullPrice:            fullPrice,
		AdmissionFees:        admissionFees,
	}, nil
}
