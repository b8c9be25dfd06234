package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mizman/internal/calendar"
	"mizman/internal/mind"
	"mizman/internal/records"
	"mizman/internal/services"
	"mizman/internal/settings"
	"mizman/internal/spirit"
	"mizman/internal/utils"
	"mizman/internal/wealth"
)

type Handler struct {
	sm *services.ServiceManager
}

func NewHandler(sm *services.ServiceManager) *Handler {
	return &Handler{sm: sm}
}

func writeError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}

// statusFor maps domain validation errors to 400 and everything else to 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, records.ErrInvalidDate),
		errors.Is(err, spirit.ErrUnknownTradition),
		errors.Is(err, spirit.ErrUnknownActivity),
		errors.Is(err, wealth.ErrUnknownCategory),
		errors.Is(err, wealth.ErrNegativeAmount),
		errors.Is(err, wealth.ErrMissingID),
		errors.Is(err, settings.ErrUnknownNationality),
		errors.Is(err, settings.ErrUnknownCurrency),
		errors.Is(err, settings.ErrUnknownTheme):
		return http.StatusBadRequest
	case errors.Is(err, mind.ErrResetNotConfirmed):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// monthFilter applies ?month=YYYY-MM when present.
func monthFilter(c *gin.Context, markers map[string]calendar.Marker) (map[string]calendar.Marker, bool) {
	month := c.Query("month")
	if month == "" {
		return markers, true
	}
	if !utils.ValidMonth(month) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return nil, false
	}
	return calendar.Month(markers, month), true
}

func (h *Handler) spiritRecords(c *gin.Context) {
	c.JSON(http.StatusOK, h.sm.Spirit.Records(c.Request.Context()))
}

func (h *Handler) spiritMarkers(c *gin.Context) {
	if markers, ok := monthFilter(c, h.sm.Spirit.Markers(c.Request.Context())); ok {
		c.JSON(http.StatusOK, markers)
	}
}

// saveSpirit takes the stored flat shape: {"Fajr": true, ..., "tradition": "Muslim"}.
func (h *Handler) saveSpirit(c *gin.Context) {
	var rec spirit.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}

	date := c.Param("date")
	markers, err := h.sm.Spirit.Save(c.Request.Context(), date, rec)
	if err != nil {
		log.Printf("save spirit %s: %v", date, err)
		writeError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": rec, "markers": markers})
}

func (h *Handler) bodyRecords(c *gin.Context) {
	c.JSON(http.StatusOK, h.sm.Body.Records(c.Request.Context()))
}

func (h *Handler) bodyMarkers(c *gin.Context) {
	if markers, ok := monthFilter(c, h.sm.Body.Markers(c.Request.Context())); ok {
		c.JSON(http.StatusOK, markers)
	}
}

func (h *Handler) saveBody(c *gin.Context) {
	var req struct {
		WorkoutDone *bool `json:"workoutDone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	if req.WorkoutDone == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workoutDone is required"})
		return
	}

	date := c.Param("date")
	markers, err := h.sm.Body.Save(c.Request.Context(), date, *req.WorkoutDone)
	if err != nil {
		log.Printf("save body %s: %v", date, err)
		writeError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workoutDone": *req.WorkoutDone, "markers": markers})
}

func (h *Handler) streak(c *gin.Context) {
	c.JSON(http.StatusOK, h.sm.Mind.Streak(c.Request.Context()))
}

func (h *Handler) resetStreak(c *gin.Context) {
	var req struct {
		Confirm bool `json:"confirm"`
	}
	// an empty body is an unconfirmed reset
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, err)
			return
		}
	}

	confirmation := mind.NotConfirmed
	if req.Confirm {
		confirmation = mind.Confirmed
	}
	view, err := h.sm.Mind.Reset(c.Request.Context(), confirmation)
	if err != nil {
		writeError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) screenTime(c *gin.Context) {
	c.JSON(http.StatusOK, h.sm.Mind.ScreenTime(c.Request.Context()))
}

func (h *Handler) syncScreenTime(c *gin.Context) {
	c.JSON(http.StatusOK, h.sm.Mind.SyncScreenTime(c.Request.Context()))
}

func (h *Handler) assets(c *gin.Context) {
	c.JSON(http.StatusOK, h.sm.Wealth.Assets(c.Request.Context()))
}

func (h *Handler) saveAsset(c *gin.Context) {
	var a wealth.Asset
	if err := c.ShouldBindJSON(&a); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := h.sm.Wealth.SaveAsset(c.Request.Context(), a)
	if err != nil {
		writeError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *Handler) deleteAsset(c *gin.Context) {
	// Removing an unknown id is a no-op.
	h.sm.Wealth.DeleteAsset(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) wealthSummary(c *gin.Context) {
	summary, err := h.sm.Wealth.Summary(c.Request.Context())
	if err != nil {
		writeError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) settings(c *gin.Context) {
	c.JSON(http.StatusOK, h.sm.Settings.Current())
}

// updateSettings applies the given fields in order. A nationality also
// switches the currency unless a currency is given too.
func (h *Handler) updateSettings(c *gin.Context) {
	var req struct {
		Nationality *string `json:"nationality"`
		Currency    *string `json:"currency"`
		Theme       *string `json:"theme"`
		Tradition   *string `json:"tradition"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	prefs := h.sm.Settings
	apply := func(err error) bool {
		if err != nil {
			writeError(c, statusFor(err), err)
			return false
		}
		return true
	}

	if req.Nationality != nil {
		n, err := settings.ParseNationality(*req.Nationality)
		if err == nil {
			_, err = prefs.SetNationality(ctx, n)
		}
		if !apply(err) {
			return
		}
	}
	if req.Currency != nil {
		if _, err := prefs.SetCurrency(ctx, *req.Currency); !apply(err) {
			return
		}
	}
	if req.Theme != nil {
		th, err := settings.ParseTheme(*req.Theme)
		if err == nil {
			_, err = prefs.SetTheme(ctx, th)
		}
		if !apply(err) {
			return
		}
	}
	if req.Tradition != nil {
		tr, err := spirit.ParseTradition(*req.Tradition)
		if err == nil {
			_, err = prefs.SetTradition(ctx, tr)
		}
		if !apply(err) {
			return
		}
	}

	c.JSON(http.StatusOK, prefs.Current())
}

func (h *Handler) dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.sm.Analytics.Dashboard(c.Request.Context()))
}
