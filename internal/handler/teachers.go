package handler

import (
	"context"
	"net/http"

	"github.com/haatos/simple-lms/internal/service"
	"github.com/haatos/simple-lms/internal/store"
	"github.com/labstack/echo/v4"
)

type TeacherServicer interface {
	CreateTeacher(context.Context, service.TeacherParams, *service.Upload) (*store.Teacher, error)
	GetTeacher(context.Context, int64) (*store.Teacher, error)
	ListTeachers(context.Context) ([]*store.Teacher, error)
	UpdateTeacher(context.Context, int64, service.TeacherParams, *service.Upload) (*store.Teacher, error)
	DeleteTeacher(context.Context, int64) error
}

type teacherResponse struct {
	*store.Teacher
	ProfilePic string `json:"profile_pic"`
}

func newTeacherResponse(t *store.Teacher) teacherResponse {
	return teacherResponse{Teacher: t, ProfilePic: uploadURL(t.ProfilePicture)}
}

func SetupTeacherRoutes(g *echo.Group, teacherService TeacherServicer) {
	h := NewTeacherHandler(teacherService)
	g.Use(RequireSuperAdmin)
	g.GET("", h.GetTeachers)
	g.POST("/add", h.PostTeacher)
	g.GET("/:teacher_id", h.GetTeacher)
	g.PUT("/:teacher_id", h.PutTeacher)
	g.DELETE("/:teacher_id", h.DeleteTeacher)
}

type TeacherHandler struct {
	teacherService TeacherServicer
}

func NewTeacherHandler(teacherService TeacherServicer) *TeacherHandler {
	return &TeacherHandler{teacherService}
}

func (h *TeacherHandler) GetTeachers(c echo.Context) error {
	teachers, err := h.teacherService.ListTeachers(c.Request().Context())
	if err != nil {
		return serviceError(c, err, "unable to list teachers")
	}
	res := make([]teacherResponse, 0, len(teachers))
	for _, t := range teachers {
		res = append(res, newTeacherResponse(t))
	}
	return c.JSON(http.StatusOK, res)
}

func (h *TeacherHandler) GetTeacher(c echo.Context) error {
	tp := new(TeacherIDParams)
	if err := c.Bind(tp); err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid teacher id")
	}
	t, err := h.teacherService.GetTeacher(c.Request().Context(), tp.TeacherID)
	if err != nil {
		return serviceError(c, err, "unable to read teacher")
	}
	return c.JSON(http.StatusOK, newTeacherResponse(t))
}

func (h *TeacherHandler) PostTeacher(c echo.Context) error {
	p, err := teacherParamsFromForm(c)
	if err != nil {
		return serviceError(c, err, "invalid teacher data")
	}
	picture, closePicture, err := formUpload(c, "profile_pic")
	if err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid profile picture")
	}
	defer closePicture()

	t, err := h.teacherService.CreateTeacher(c.Request().Context(), p, picture)
	if err != nil {
		return serviceError(c, err, "unable to add teacher")
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Teacher added successfully!",
		"teacher": newTeacherResponse(t),
	})
}

func (h *TeacherHandler) PutTeacher(c echo.Context) error {
	tp := new(TeacherIDParams)
	if err := c.Bind(tp); err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid teacher id")
	}
	p, err := teacherParamsFromForm(c)
	if err != nil {
		return serviceError(c, err, "invalid teacher data")
	}
	picture, closePicture, err := formUpload(c, "profile_pic")
	if err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid profile picture")
	}
	defer closePicture()

	t, err := h.teacherService.UpdateTeacher(c.Request().Context(), tp.TeacherID, p, picture)
	if err != nil {
		return serviceError(c, err, "unable to update teacher")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Teacher updated successfully!",
		"teacher": newTeacherResponse(t),
	})
}

func (h *TeacherHandler) DeleteTeacher(c echo.Context) error {
	tp := new(TeacherIDParams)
	if err := c.Bind(tp); err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid teacher id")
	}
	if err := h.teacherService.DeleteTeacher(c.Request().Context(), tp.TeacherID); err != nil {
		return serviceError(c, err, "unable to delete teacher")
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Teacher deleted successfully"})
}

func teacherParamsFromForm(c echo.Context) (service.TeacherParams, error) {
	rate, err := formFloat(c, "rate_per_hour")
	if err != nil {
		return service.TeacherParams{}, err
	}
	hours, err := formInt(c, "no_of_hours_allocated")
	if err != nil {
		return service.TeacherParams{}, err
	}
	return service.TeacherParams{
		LecturerName:       formString(c, "lecturer_name"),
		Address:            formString(c, "address"),
		Telephone:          formString(c, "telephone"),
		Qualification:      formString(c, "qualification"),
		RatePerHour:        rate,
		Username:           formString(c, "username"),
		Password:           formString(c, "password"),
		ModuleName:         formString(c, "module_name"),
		NoOfHoursAllocated: hours,
	}, nil
}
