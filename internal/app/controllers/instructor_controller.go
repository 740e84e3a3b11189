package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courseroom/backend/internal/app/models/dto"
	"github.com/courseroom/backend/internal/app/services"
	"github.com/courseroom/backend/internal/pkg/apperrors"
)

// InstructorController handles instructor related operations
type InstructorController struct {
	instructorService services.InstructorService
}

// NewInstructorController creates a new instructor controller
func NewInstructorController(instructorService services.InstructorService) *InstructorController {
	return &InstructorController{
		instructorService: instructorService,
	}
}

// handleInstructorError is a helper function to handle common instructor error scenarios
func handleInstructorError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrEntityNotFound):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Instructor not found")
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
	case errors.Is(err, apperrors.ErrEntityAlreadyExists):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Instructor already exists")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(errorDetail))
	case errors.Is(err, apperrors.ErrValidationFailed):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
	case errors.Is(err, apperrors.ErrBadRequest):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Bad request")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
	default:
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "An unexpected error occurred")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
	}
}

// CreateInstructor registers a new instructor role
func (c *InstructorController) CreateInstructor(ctx *gin.Context) {
	var req dto.CreateInstructorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.instructorService.CreateInstructor(ctx.Request.Context(), &req)
	if err != nil {
		handleInstructorError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// GetInstructor fetches one instructor role by (courseId, googleId) or
// (courseId, email), depending on which query parameters are present
func (c *InstructorController) GetInstructor(ctx *gin.Context) {
	courseID := ctx.Query("courseId")
	googleID := ctx.Query("googleId")
	email := ctx.Query("email")

	var (
		resp *dto.InstructorResponse
		err  error
	)
	switch {
	case googleID != "":
		resp, err = c.instructorService.GetInstructorByGoogleID(ctx.Request.Context(), courseID, googleID)
	case email != "":
		resp, err = c.instructorService.GetInstructorByEmail(ctx.Request.Context(), courseID, email)
	default:
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Either googleId or email query parameter is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err != nil {
		handleInstructorError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// ListInstructors lists instructor roles filtered by courseId or googleId.
// With no filter it returns every role in the system (admin use only; the
// result is not paginated).
func (c *InstructorController) ListInstructors(ctx *gin.Context) {
	courseID := ctx.Query("courseId")
	googleID := ctx.Query("googleId")

	var (
		list []*dto.InstructorResponse
		err  error
	)
	switch {
	case courseID != "":
		list, err = c.instructorService.ListInstructorsForCourse(ctx.Request.Context(), courseID)
	case googleID != "":
		list, err = c.instructorService.ListInstructorsForGoogleID(ctx.Request.Context(), googleID)
	default:
		list, err = c.instructorService.ListAllInstructors(ctx.Request.Context())
	}

	if err != nil {
		handleInstructorError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.InstructorListResponse{Instructors: list, Count: len(list)})
}

// UpdateInstructor renames an existing instructor role
func (c *InstructorController) UpdateInstructor(ctx *gin.Context) {
	var req dto.UpdateInstructorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.instructorService.UpdateInstructor(ctx.Request.Context(), &req)
	if err != nil {
		handleInstructorError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// DeleteInstructors removes instructor roles. With both courseId and
// googleId it deletes one role; with only one of them it bulk-deletes all
// matching roles. All variants succeed silently when nothing matches.
func (c *InstructorController) DeleteInstructors(ctx *gin.Context) {
	courseID := ctx.Query("courseId")
	googleID := ctx.Query("googleId")

	var err error
	switch {
	case courseID != "" && googleID != "":
		err = c.instructorService.DeleteInstructor(ctx.Request.Context(), courseID, googleID)
	case courseID != "":
		err = c.instructorService.DeleteInstructorsForCourse(ctx.Request.Context(), courseID)
	case googleID != "":
		err = c.instructorService.DeleteInstructorsForGoogleID(ctx.Request.Context(), googleID)
	default:
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "At least one of courseId or googleId is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err != nil {
		handleInstructorError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Instructors deleted"})
}
