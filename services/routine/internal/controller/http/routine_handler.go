package http

import (
	"net/http"
	"strconv"

	"fitsocial/pkg/apperror"
	"fitsocial/pkg/logger"
	"fitsocial/services/routine/internal/usecase"

	"github.com/gin-gonic/gin"
)

type RoutineHandler struct {
	routineUseCase usecase.RoutineUseCase
	logger         *logger.Logger
}

func NewRoutineHandler(routineUseCase usecase.RoutineUseCase, logger *logger.Logger) *RoutineHandler {
	return &RoutineHandler{
		routineUseCase: routineUseCase,
		logger:         logger,
	}
}

type RoutineExerciseRequest struct {
	ExerciseID  string `json:"exercise_id" binding:"required"`
	Sets        int    `json:"sets"`
	Reps        int    `json:"reps"`
	RestSeconds int    `json:"rest_seconds"`
}

type CreateRoutineRequest struct {
	Name        string                   `json:"name" binding:"required"`
	Description string                   `json:"description"`
	Exercises   []RoutineExerciseRequest `json:"exercises" binding:"required,dive"`
}

func pagination(c *gin.Context) (int, int) {
	limit := 20
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	return limit, offset
}

// ListExercises godoc
// @Summary      Exercise catalog
// @Tags         exercises
// @Produce      json
// @Param        muscle_group query string false "Filter by muscle group"
// @Success      200  {object}  map[string]interface{}
// @Router       /exercises [get]
func (h *RoutineHandler) ListExercises(c *gin.Context) {
	exercises, err := h.routineUseCase.ListExercises(c.Query("muscle_group"))
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to list exercises")
		return
	}

	c.JSON(http.StatusOK, gin.H{"exercises": exercises, "count": len(exercises)})
}

// CreateRoutine godoc
// @Summary      Create a routine
// @Tags         routines
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateRoutineRequest true "Routine"
// @Success      201  {object}  entity.Routine
// @Failure      400  {object}  map[string]string
// @Router       /routines [post]
func (h *RoutineHandler) CreateRoutine(c *gin.Context) {
	var req CreateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := usecase.CreateRoutineInput{
		Name:        req.Name,
		Description: req.Description,
		Exercises:   make([]usecase.ExerciseInput, len(req.Exercises)),
	}
	for i, e := range req.Exercises {
		input.Exercises[i] = usecase.ExerciseInput{
			ExerciseID:  e.ExerciseID,
			Sets:        e.Sets,
			Reps:        e.Reps,
			RestSeconds: e.RestSeconds,
		}
	}

	routine, err := h.routineUseCase.CreateRoutine(c.GetString("user_id"), input)
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to create routine")
		return
	}

	c.JSON(http.StatusCreated, routine)
}

// GetRoutine godoc
// @Summary      Get routine by ID
// @Tags         routines
// @Produce      json
// @Param        id path string true "Routine ID"
// @Success      200  {object}  entity.Routine
// @Failure      404  {object}  map[string]string
// @Router       /routines/{id} [get]
func (h *RoutineHandler) GetRoutine(c *gin.Context) {
	routine, err := h.routineUseCase.GetRoutine(c.Param("id"), c.GetString("user_id"))
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to get routine")
		return
	}

	c.JSON(http.StatusOK, routine)
}

// GetUserRoutines godoc
// @Summary      Routines created by a user
// @Tags         routines
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        limit query int false "Limit" default(20)
// @Param        offset query int false "Offset" default(0)
// @Success      200  {object}  map[string]interface{}
// @Router       /routines/user/{user_id} [get]
func (h *RoutineHandler) GetUserRoutines(c *gin.Context) {
	limit, offset := pagination(c)

	routines, err := h.routineUseCase.GetUserRoutines(c.Param("user_id"), c.GetString("user_id"), limit, offset)
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to get routines")
		return
	}

	c.JSON(http.StatusOK, gin.H{"routines": routines, "count": len(routines), "offset": offset})
}

// DeleteRoutine godoc
// @Summary      Delete routine
// @Description  Only the creator can delete a routine
// @Tags         routines
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Routine ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /routines/{id} [delete]
func (h *RoutineHandler) DeleteRoutine(c *gin.Context) {
	if err := h.routineUseCase.DeleteRoutine(c.Param("id"), c.GetString("user_id")); err != nil {
		apperror.Respond(c, h.logger, err, "Failed to delete routine")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Routine deleted successfully"})
}

// CopyRoutine godoc
// @Summary      Copy routine
// @Description  Create a personal copy that credits the original creator
// @Tags         routines
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Routine ID"
// @Success      201  {object}  entity.Routine
// @Failure      404  {object}  map[string]string
// @Router       /routines/{id}/copy [post]
func (h *RoutineHandler) CopyRoutine(c *gin.Context) {
	routine, err := h.routineUseCase.CopyRoutine(c.Param("id"), c.GetString("user_id"))
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to copy routine")
		return
	}

	c.JSON(http.StatusCreated, routine)
}

// SaveRoutine godoc
// @Summary      Save routine
// @Description  Toggle whether the routine is in the caller's saved list
// @Tags         routines
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Routine ID"
// @Success      200  {object}  map[string]bool
// @Failure      409  {object}  map[string]string
// @Router       /routines/{id}/save [post]
func (h *RoutineHandler) SaveRoutine(c *gin.Context) {
	saved, err := h.routineUseCase.ToggleSave(c.GetString("user_id"), c.Param("id"))
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to save routine")
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

// GetSavedRoutines godoc
// @Summary      Saved routines
// @Tags         routines
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Limit" default(20)
// @Param        offset query int false "Offset" default(0)
// @Success      200  {object}  map[string]interface{}
// @Router       /routines/saved [get]
func (h *RoutineHandler) GetSavedRoutines(c *gin.Context) {
	limit, offset := pagination(c)

	routines, err := h.routineUseCase.GetSavedRoutines(c.GetString("user_id"), limit, offset)
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to get saved routines")
		return
	}

	c.JSON(http.StatusOK, gin.H{"routines": routines, "count": len(routines), "offset": offset})
}

// LikeRoutine godoc
// @Summary      Like routine
// @Description  Like a routine (toggle - if already liked, removes like)
// @Tags         routines
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Routine ID"
// @Success      200  {object}  map[string]bool
// @Router       /routines/{id}/like [post]
func (h *RoutineHandler) LikeRoutine(c *gin.Context) {
	liked, err := h.routineUseCase.ToggleLike(c.GetString("user_id"), c.Param("id"))
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to like routine")
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// UseRoutine godoc
// @Summary      Record a workout with this routine
// @Tags         routines
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Routine ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /routines/{id}/use [post]
func (h *RoutineHandler) UseRoutine(c *gin.Context) {
	if err := h.routineUseCase.UseRoutine(c.GetString("user_id"), c.Param("id")); err != nil {
		apperror.Respond(c, h.logger, err, "Failed to record routine use")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Routine usage recorded"})
}

// GetTrending godoc
// @Summary      Trending routines
// @Description  The most recent routines ordered by saves, uses and likes decayed by age
// @Tags         routines
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /routines/trending [get]
func (h *RoutineHandler) GetTrending(c *gin.Context) {
	routines, err := h.routineUseCase.GetTrending(c.GetString("user_id"))
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to get trending routines")
		return
	}

	c.JSON(http.StatusOK, gin.H{"routines": routines, "count": len(routines)})
}
