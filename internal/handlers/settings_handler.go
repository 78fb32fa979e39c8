package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"icc-dashboard/internal/backend"
	"icc-dashboard/internal/middleware"
	"icc-dashboard/internal/models"
	"icc-dashboard/internal/services"
	"icc-dashboard/internal/session"
	"icc-dashboard/internal/upload"
	"icc-dashboard/internal/viewmodel"
	"icc-dashboard/pkg/utils"

	"github.com/sirupsen/logrus"
)

// multipartSlack covers the form fields and boundaries around the file.
const multipartSlack = 1 * upload.MB

type SettingsHandler struct {
	Service  *services.ProfileService
	Sessions *session.Manager
	log      *logrus.Logger
}

func NewSettingsHandler(s *services.ProfileService, sessions *session.Manager, log *logrus.Logger) *SettingsHandler {
	return &SettingsHandler{Service: s, Sessions: sessions, log: log}
}

func (h *SettingsHandler) Profile(w http.ResponseWriter, r *http.Request) {
	u, err := h.Service.Get(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, viewmodel.MapProfile(*u), nil)
}

func (h *SettingsHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if !decode(w, r, &req) {
		return
	}
	u, err := h.Service.Update(r.Context(), &req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.refreshUser(r, u)
	utils.OK(w, viewmodel.MapProfile(*u), utils.SuccessToast("Profile updated"))
}

func (h *SettingsHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if !decode(w, r, &req) {
		return
	}
	msg, err := h.Service.ChangePassword(r.Context(), &req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if msg == "" {
		msg = "Password changed"
	}
	utils.OK(w, nil, utils.SuccessToast(msg))
}

func (h *SettingsHandler) UploadPicture(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, upload.ProfilePicture, upload.ProfilePictureField, h.Service.UploadPicture, "Profile picture updated")
}

// UploadDBADocument is cleaner only
func (h *SettingsHandler) UploadDBADocument(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, upload.DBADocument, upload.DBADocumentField, h.Service.UploadDBADocument, "DBA document uploaded for review")
}

type uploadFunc func(context.Context, upload.File, backend.FilePart) (*models.User, error)

// upload validates the form file before anything is sent to the backend.
func (h *SettingsHandler) upload(w http.ResponseWriter, r *http.Request, rule upload.Rule, field string, send uploadFunc, done string) {
	r.Body = http.MaxBytesReader(w, r.Body, rule.MaxBytes+multipartSlack)
	if err := r.ParseMultipartForm(rule.MaxBytes + multipartSlack); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			utils.Error(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File size must be less than %dMB", rule.MaxBytes/upload.MB))
			return
		}
		utils.Error(w, http.StatusBadRequest, "Invalid upload")
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		utils.Error(w, http.StatusBadRequest, "Please select a file to upload")
		return
	}

	file, src, err := upload.FromMultipart(headers[0])
	if err != nil {
		h.log.WithError(err).Warn("failed to read upload")
		utils.Error(w, http.StatusBadRequest, "Invalid upload")
		return
	}
	defer src.Close()

	if err := upload.Validate(rule, file); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	u, err := send(r.Context(), file, backend.FilePart{Reader: src})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.refreshUser(r, u)
	utils.OK(w, viewmodel.MapProfile(*u), utils.SuccessToast(done))
}

// refreshUser keeps the cached user in step with the backend so the shell
// header and other tabs show the change.
func (h *SettingsHandler) refreshUser(r *http.Request, u *models.User) {
	ac := middleware.GetAuth(r)
	if u.Role == "" && ac.User != nil {
		u.Role = ac.User.Role
	}
	if err := h.Sessions.UpdateUser(r.Context(), ac.SessionID, u); err != nil {
		h.log.WithError(err).Warn("failed to refresh cached user")
	}
}
