package handlers

import (
	"net/http"
	"time"

	"github.com/fbraintech-stack/weekboard/internal/middleware"
	"github.com/fbraintech-stack/weekboard/internal/models"
	"github.com/fbraintech-stack/weekboard/internal/services"
	"github.com/fbraintech-stack/weekboard/internal/utils"
	"github.com/fbraintech-stack/weekboard/internal/week"
)

// BoardHandler serves the board-level endpoints: week/calendar info,
// the weekly rollover trigger, and the per-week summary.
type BoardHandler struct {
	rolloverService *services.RolloverService
	boardService    *services.BoardService
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(rs *services.RolloverService, bs *services.BoardService) *BoardHandler {
	return &BoardHandler{
		rolloverService: rs,
		boardService:    bs,
	}
}

// GetWeekInfo returns the calendar context the board renders against
func (h *BoardHandler) GetWeekInfo(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	info := models.WeekInfo{
		WeekYear:     week.IdentifierOf(now),
		PreviousWeek: week.PreviousIdentifier(now),
		Day:          int(week.DayOf(now)),
		Monday:       week.MondayOf(now).Format("2006-01-02"),
		RangeLabel:   week.RangeLabel(now),
	}
	utils.RespondWithJSON(w, http.StatusOK, info)
}

// RunRollover triggers the once-per-week rollover for the caller.
// Responds 200 with the summary when a rollover ran, 204 when there
// was nothing to do.
func (h *BoardHandler) RunRollover(w http.ResponseWriter, r *http.Request) {
	authContext, err := middleware.GetAuthContext(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	summary, err := h.rolloverService.RunRolloverIfNeeded(r.Context(), authContext.UserID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to run weekly rollover")
		return
	}
	if summary == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, summary)
}

// GetWeekSummary returns aggregate counts for the requested (default
// current) week
func (h *BoardHandler) GetWeekSummary(w http.ResponseWriter, r *http.Request) {
	authContext, err := middleware.GetAuthContext(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	weekYear := r.URL.Query().Get("week")
	if weekYear == "" {
		weekYear = week.IdentifierOf(time.Now())
	}

	summary, err := h.boardService.GetWeekSummary(r.Context(), authContext.UserID, weekYear)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve week summary")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, summary)
}
