package handlers

import (
	"fmt"
	"net/http"

	"icc-dashboard/internal/audit"
	"icc-dashboard/internal/middleware"
	"icc-dashboard/internal/models"
	"icc-dashboard/internal/services"
	"icc-dashboard/internal/timeutil"
	"icc-dashboard/internal/viewmodel"
	"icc-dashboard/pkg/utils"

	"github.com/sirupsen/logrus"
)

type DisputeHandler struct {
	Service *services.DisputeService
	Audit   *audit.Recorder
	log     *logrus.Logger
}

func NewDisputeHandler(s *services.DisputeService, recorder *audit.Recorder, log *logrus.Logger) *DisputeHandler {
	return &DisputeHandler{Service: s, Audit: recorder, log: log}
}

// DisputeDetail is one dispute with its comment thread.
type DisputeDetail struct {
	viewmodel.DisputeRow
	Description string        `json:"description"`
	Comments    []CommentView `json:"comments"`
}

type CommentView struct {
	Author   string `json:"author"`
	Initials string `json:"initials"`
	Comment  string `json:"comment"`
	PostedOn string `json:"posted_on"`
}

func mapDetail(d models.Dispute) DisputeDetail {
	detail := DisputeDetail{
		DisputeRow:  viewmodel.MapDisputes([]models.Dispute{d})[0],
		Description: d.Description,
		Comments:    make([]CommentView, 0, len(d.Comments)),
	}
	for _, c := range d.Comments {
		detail.Comments = append(detail.Comments, CommentView{
			Author:   c.Author,
			Initials: viewmodel.Initials(c.Author, ""),
			Comment:  c.Comment,
			PostedOn: timeutil.FormatDate(c.CreatedAt),
		})
	}
	return detail
}

func (h *DisputeHandler) List(w http.ResponseWriter, r *http.Request) {
	disputes, err := h.Service.List(r.Context(), middleware.GetAuth(r).Role(), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, viewmodel.MapDisputes(disputes), nil)
}

func (h *DisputeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	d, err := h.Service.Get(r.Context(), middleware.GetAuth(r).Role(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, mapDetail(*d), nil)
}

func (h *DisputeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDisputeRequest
	if !decode(w, r, &req) {
		return
	}
	d, err := h.Service.Create(r.Context(), middleware.GetAuth(r).Role(), &req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.Created(w, mapDetail(*d), utils.SuccessToast("Dispute raised"))
}

func (h *DisputeHandler) Comment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.DisputeCommentRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := h.Service.Comment(r.Context(), middleware.GetAuth(r).Role(), id, &req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.Created(w, CommentView{
		Author:   c.Author,
		Initials: viewmodel.Initials(c.Author, ""),
		Comment:  c.Comment,
		PostedOn: timeutil.FormatDate(c.CreatedAt),
	}, utils.SuccessToast("Comment added"))
}

// Resolve is admin only
func (h *DisputeHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.ResolveDisputeRequest
	if !decode(w, r, &req) {
		return
	}

	d, err := h.Service.Resolve(r.Context(), id, &req)
	recordAdmin(h.Audit, r, "resolve", "dispute", id,
		fmt.Sprintf("Dispute %d set to %s: %s", id, req.Status, req.Resolution), err)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, mapDetail(*d), utils.SuccessToast("Dispute "+viewmodel.StatusLabel(req.Status)))
}
