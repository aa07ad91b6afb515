package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"hireflow-backend/internal/apperr"
	"hireflow-backend/internal/domain"
	"hireflow-backend/internal/service"
)

type InterviewHandler struct {
	svc service.InterviewService
}

func NewInterviewHandler(svc service.InterviewService) *InterviewHandler {
	return &InterviewHandler{svc: svc}
}

func (h *InterviewHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var form ScheduleForm
	if err := decode(w, r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	in := service.ScheduleInput{
		CandidatureID: form.CandidatureID,
		JobOfferID:    form.JobOfferID,
		Date:          form.Date,
		Time:          form.Time,
	}
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		in.CreatedBy = claims.UserID
	}

	iv, err := h.svc.Schedule(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCreated(w, "Interview scheduled; the responsible has been asked to confirm", MapInterviewForAdmin(iv))
}

// Responsible link

func (h *InterviewHandler) GetForResponsible(w http.ResponseWriter, r *http.Request) {
	iv, err := h.svc.GetForResponsible(r.Context(), domain.ResponsibleToken(mux.Vars(r)["token"]))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, "Interview found", MapInterviewForLink(iv))
}

func (h *InterviewHandler) ConfirmByResponsible(w http.ResponseWriter, r *http.Request) {
	var form SlotForm
	if err := decode(w, r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	iv, err := h.svc.ConfirmByResponsible(r.Context(), domain.ResponsibleToken(mux.Vars(r)["token"]), form.Date, form.Time)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, "Interview confirmed; the candidate has been invited", MapInterviewForLink(iv))
}

func (h *InterviewHandler) ModifyByResponsible(w http.ResponseWriter, r *http.Request) {
	var form SlotForm
	if err := decode(w, r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	iv, err := h.svc.ModifyByResponsible(r.Context(), domain.ResponsibleToken(mux.Vars(r)["token"]), form.Date, form.Time, form.Notes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, "Change request sent to the administrator", MapInterviewForLink(iv))
}

// Candidate link

func (h *InterviewHandler) GetForCandidate(w http.ResponseWriter, r *http.Request) {
	iv, err := h.svc.GetForCandidate(r.Context(), domain.CandidateToken(mux.Vars(r)["token"]))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, "Interview found", MapInterviewForLink(iv))
}

func (h *InterviewHandler) ConfirmByCandidate(w http.ResponseWriter, r *http.Request) {
	iv, err := h.svc.ConfirmByCandidate(r.Context(), domain.CandidateToken(mux.Vars(r)["token"]))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, "Interview confirmed", MapInterviewForLink(iv))
}

func (h *InterviewHandler) RescheduleByCandidate(w http.ResponseWriter, r *http.Request) {
	var form SlotForm
	if err := decode(w, r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	iv, err := h.svc.RescheduleByCandidate(r.Context(), domain.CandidateToken(mux.Vars(r)["token"]), form.Date, form.Time, form.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, "Reschedule request sent", MapInterviewForLink(iv))
}

// Admin arbitration

func (h *InterviewHandler) Approve(w http.ResponseWriter, r *http.Request) {
	iv, err := h.svc.ApproveModification(r.Context(), mux.Vars(r)["id"])
	h.respondStaff(w, r, iv, err, "Change approved; the responsible has been asked to confirm")
}

func (h *InterviewHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var form ReasonForm
	if err := decode(w, r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	iv, err := h.svc.RejectModification(r.Context(), mux.Vars(r)["id"], form.Reason)
	h.respondStaff(w, r, iv, err, "Change rejected")
}

func (h *InterviewHandler) AcceptReschedule(w http.ResponseWriter, r *http.Request) {
	iv, err := h.svc.AcceptReschedule(r.Context(), mux.Vars(r)["id"])
	h.respondStaff(w, r, iv, err, "Candidate date accepted; the responsible has been asked to confirm")
}

func (h *InterviewHandler) DeclineReschedule(w http.ResponseWriter, r *http.Request) {
	var form ReasonForm
	if err := decode(w, r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	iv, err := h.svc.DeclineReschedule(r.Context(), mux.Vars(r)["id"], form.Reason)
	h.respondStaff(w, r, iv, err, "Candidate reschedule declined")
}

func (h *InterviewHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var form ReasonForm
	if err := decode(w, r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	iv, err := h.svc.Cancel(r.Context(), mux.Vars(r)["id"], form.Reason)
	h.respondStaff(w, r, iv, err, "Interview cancelled")
}

// Read projections

func (h *InterviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	iv, err := h.svc.GetInterview(r.Context(), mux.Vars(r)["id"])
	h.respondStaff(w, r, iv, err, "Interview found")
}

func (h *InterviewHandler) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 365 {
			writeError(w, r, apperr.Validation("days must be an integer between 1 and 365"))
			return
		}
		days = n
	}
	list, err := h.svc.ListUpcoming(r.Context(), days)
	h.respondList(w, r, list, err)
}

func (h *InterviewHandler) ListByCandidature(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListByCandidature(r.Context(), mux.Vars(r)["id"])
	h.respondList(w, r, list, err)
}

func (h *InterviewHandler) ListByJobOffer(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListByJobOffer(r.Context(), mux.Vars(r)["id"])
	h.respondList(w, r, list, err)
}

func (h *InterviewHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListByUser(r.Context(), mux.Vars(r)["id"])
	h.respondList(w, r, list, err)
}

func (h *InterviewHandler) respondStaff(w http.ResponseWriter, r *http.Request, iv *domain.InterviewWithJob, err error, message string) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, message, projectionFor(r)(iv))
}

func (h *InterviewHandler) respondList(w http.ResponseWriter, r *http.Request, list []domain.InterviewWithJob, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, strconv.Itoa(len(list))+" interview(s)", MapInterviews(list, projectionFor(r)))
}

// projectionFor returns the admin projection only to ADMIN callers.
func projectionFor(r *http.Request) func(*domain.InterviewWithJob) *InterviewView {
	if claims, ok := ClaimsFromContext(r.Context()); ok && claims.Role == domain.UserRoleAdmin {
		return MapInterviewForAdmin
	}
	return MapInterviewForStaff
}
