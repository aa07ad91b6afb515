package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"hireflow-backend/internal/apperr"
	"hireflow-backend/internal/domain"
)

const maxBodyBytes = 1 << 20

var dateRule = validation.Date(domain.DateLayout).Error("must be a date in YYYY-MM-DD format")

type ScheduleForm struct {
	CandidatureID string `json:"candidatureId"`
	JobOfferID    string `json:"jobOfferId"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}

func (f ScheduleForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.CandidatureID, validation.Required),
		validation.Field(&f.JobOfferID, validation.Required),
		validation.Field(&f.Date, validation.Required, dateRule),
		validation.Field(&f.Time, validation.Required, validation.Length(1, 32)),
	)
}

// SlotForm is a date/time pair with an optional free-text note, used by
// responsible-confirm, responsible-modify and candidate-reschedule.
type SlotForm struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Notes  string `json:"notes,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func (f SlotForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Date, validation.Required, dateRule),
		validation.Field(&f.Time, validation.Required, validation.Length(1, 32)),
		validation.Field(&f.Notes, validation.Length(0, 2000)),
		validation.Field(&f.Reason, validation.Length(0, 2000)),
	)
}

type ReasonForm struct {
	Reason string `json:"reason"`
}

func (f ReasonForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Reason, validation.Length(0, 2000)),
	)
}

type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f LoginForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, validation.Required, is.Email),
		validation.Field(&f.Password, validation.Required),
	)
}

// decode reads a JSON body into form and validates it. An empty body is
// accepted so that forms with only optional fields may be omitted.
func decode(w http.ResponseWriter, r *http.Request, form validation.Validatable) error {
	if r.Body != nil && r.ContentLength != 0 {
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err := dec.Decode(form); err != nil && !errors.Is(err, io.EOF) {
			return apperr.Validation("malformed JSON body: %v", err)
		}
	}
	if err := form.Validate(); err != nil {
		return apperr.MarkValidation(err)
	}
	return nil
}
