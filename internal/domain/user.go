package domain

import "time"

type UserRole string

const (
	UserRoleAdmin       UserRole = "ADMIN"
	UserRoleResponsible UserRole = "RESPONSIBLE"
	UserRoleRecruiter   UserRole = "RECRUITER"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         UserRole  `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// JobOffer is the slice of a job posting the coordination protocol reads.
type JobOffer struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	AssignedUserID string `json:"assigned_user_id"`
}

// Candidature is the slice of an application the coordination protocol reads.
type Candidature struct {
	ID             string `json:"id"`
	JobOfferID     string `json:"job_offer_id"`
	CandidateName  string `json:"candidate_name"`
	CandidateEmail string `json:"candidate_email"`
}
