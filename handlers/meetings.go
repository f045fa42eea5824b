package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ahmad435-vlaygo/adminValygobackend/email"
	"github.com/ahmad435-vlaygo/adminValygobackend/middleware"
	"github.com/ahmad435-vlaygo/adminValygobackend/models"
	"github.com/ahmad435-vlaygo/adminValygobackend/utils"
)

type attendeeView struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handlers) resolveAttendees(ids models.IDList) []attendeeView {
	out := make([]attendeeView, 0, len(ids))
	if len(ids) == 0 {
		return out
	}
	var admins []models.AdminUser
	if err := h.db.Where("id IN ?", []uint(ids)).Find(&admins).Error; err != nil {
		log.Printf("attendee lookup failed: %v", err)
		return out
	}
	for _, a := range admins {
		out = append(out, attendeeView{ID: a.ID, Name: a.Name, Email: a.Email})
	}
	return out
}

func (h *Handlers) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		sendError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var req models.MeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		sendError(w, http.StatusBadRequest, "Validation failed", utils.FormatValidationError(err))
		return
	}

	meeting := models.Meeting{
		Title:       utils.SanitizeString(req.Title),
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Attendees:   models.IDList(req.Attendees),
		CreatedBy:   claims.UserID,
		MeetingLink: req.MeetingLink,
		Status:      "scheduled",
	}

	if err := h.db.Create(&meeting).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to create meeting", nil)
		return
	}

	h.logAudit(r, &claims.UserID, "CREATE", "MEETING", "Meeting created: "+meeting.Title)

	attendees := h.resolveAttendees(meeting.Attendees)

	// Invites are fire-and-forget; a delivery failure never fails the create.
	go func(title, start, link string, attendees []attendeeView) {
		subject, html := email.MeetingInvite(title, start, link)
		for _, a := range attendees {
			if err := h.mailer.Send(a.Email, subject, html); err != nil {
				log.Printf("Failed to send meeting invite to %s: %v", a.Email, err)
			}
		}
	}(meeting.Title, meeting.StartTime.Format(time.RFC1123), meeting.MeetingLink, attendees)

	sendJSON(w, http.StatusCreated, map[string]interface{}{
		"meeting":   meeting,
		"attendees": attendees,
	})
}

func (h *Handlers) GetMeetings(w http.ResponseWriter, r *http.Request) {
	var meetings []models.Meeting
	if err := h.db.Order("start_time DESC").Find(&meetings).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to fetch meetings", nil)
		return
	}

	type meetingView struct {
		models.Meeting
		AttendeeDetails []attendeeView `json:"attendee_details"`
	}
	data := make([]meetingView, 0, len(meetings))
	for _, m := range meetings {
		data = append(data, meetingView{
			Meeting:         m,
			AttendeeDetails: h.resolveAttendees(m.Attendees),
		})
	}

	sendJSON(w, http.StatusOK, data)
}

func (h *Handlers) UpdateMeeting(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		sendError(w, http.StatusBadRequest, "Invalid meeting id", nil)
		return
	}

	var req models.MeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	var meeting models.Meeting
	if err := h.db.First(&meeting, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			sendError(w, http.StatusNotFound, "Meeting not found", nil)
			return
		}
		sendError(w, http.StatusInternalServerError, "Failed to fetch meeting", nil)
		return
	}

	if title := utils.SanitizeString(req.Title); title != "" {
		meeting.Title = title
	}
	if req.Description != "" {
		meeting.Description = req.Description
	}
	if !req.StartTime.IsZero() {
		meeting.StartTime = req.StartTime
	}
	if !req.EndTime.IsZero() {
		meeting.EndTime = req.EndTime
	}
	if req.Attendees != nil {
		meeting.Attendees = models.IDList(req.Attendees)
	}
	if req.MeetingLink != "" {
		meeting.MeetingLink = req.MeetingLink
	}
	if req.Status != "" {
		status := strings.ToLower(utils.SanitizeString(req.Status))
		if !utils.IsOneOf(status, models.MeetingStatuses) {
			sendError(w, http.StatusBadRequest, "Invalid status",
				"Status must be one of: "+strings.Join(models.MeetingStatuses, ", "))
			return
		}
		meeting.Status = status
	}

	if err := h.db.Save(&meeting).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to update meeting", nil)
		return
	}

	if claims := middleware.GetUserFromContext(r); claims != nil {
		h.logAudit(r, &claims.UserID, "UPDATE", "MEETING", "Meeting updated: "+meeting.Title)
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"meeting":   meeting,
		"attendees": h.resolveAttendees(meeting.Attendees),
	})
}

func (h *Handlers) DeleteMeeting(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		sendError(w, http.StatusBadRequest, "Invalid meeting id", nil)
		return
	}

	result := h.db.Delete(&models.Meeting{}, id)
	if result.Error != nil {
		sendError(w, http.StatusInternalServerError, "Failed to delete meeting", nil)
		return
	}
	if result.RowsAffected == 0 {
		sendError(w, http.StatusNotFound, "Meeting not found", nil)
		return
	}

	if claims := middleware.GetUserFromContext(r); claims != nil {
		h.logAudit(r, &claims.UserID, "DELETE", "MEETING", "Meeting deleted")
	}

	sendJSON(w, http.StatusOK, map[string]string{
		"message": "Meeting deleted successfully",
	})
}
