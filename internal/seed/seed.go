// Package seed loads development fixtures: staff users, job offers and
// candidatures that interviews can be scheduled against.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"hireflow-backend/internal/domain"
	"hireflow-backend/internal/logger"
)

var hashCost = bcrypt.DefaultCost

type User struct {
	ID       string `yaml:"id"`
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Password string `yaml:"password"`
}

func (u User) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Email, validation.Required, is.Email),
		validation.Field(&u.Name, validation.Required),
		validation.Field(&u.Role, validation.Required, validation.In(
			string(domain.UserRoleAdmin), string(domain.UserRoleResponsible), string(domain.UserRoleRecruiter))),
		validation.Field(&u.Password, validation.Required, validation.Length(8, 72)),
	)
}

type JobOffer struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`

	// AssignedEmail names one of the seeded users; empty leaves the offer
	// without a responsible.
	AssignedEmail string `yaml:"assigned_email"`
}

type Candidature struct {
	ID             string `yaml:"id"`
	JobOfferID     string `yaml:"job_offer_id"`
	CandidateName  string `yaml:"candidate_name"`
	CandidateEmail string `yaml:"candidate_email"`
}

type Data struct {
	Users        []User        `yaml:"users"`
	JobOffers    []JobOffer    `yaml:"job_offers"`
	Candidatures []Candidature `yaml:"candidatures"`
}

// Load reads and validates a seed file.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read seed file %s", path)
	}
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrapf(err, "parse seed file %s", path)
	}
	for i, u := range data.Users {
		if err := u.Validate(); err != nil {
			return nil, errors.Wrapf(err, "user %d", i)
		}
	}
	return &data, nil
}

// Apply upserts data in a single transaction. Users are matched by email,
// job offers and candidatures by id.
func Apply(ctx context.Context, db *sql.DB, data *Data) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	userIDs := make(map[string]string, len(data.Users))
	for _, u := range data.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), hashCost)
		if err != nil {
			return errors.Wrapf(err, "hash password for %s", u.Email)
		}
		id := u.ID
		if id == "" {
			id = uuid.NewString()
		}
		email := strings.ToLower(u.Email)

		var stored string
		err = tx.QueryRowContext(ctx, `
			INSERT INTO users (id, email, name, role, password_hash)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (email) DO UPDATE
			SET name = EXCLUDED.name, role = EXCLUDED.role, password_hash = EXCLUDED.password_hash
			RETURNING id`,
			id, email, u.Name, u.Role, string(hash),
		).Scan(&stored)
		if err != nil {
			return errors.Wrapf(err, "upsert user %s", email)
		}
		userIDs[email] = stored
		logger.Info("Seeded user", "email", email, "id", stored, "role", u.Role)
	}

	for _, j := range data.JobOffers {
		var assigned sql.NullString
		if j.AssignedEmail != "" {
			id, ok := userIDs[strings.ToLower(j.AssignedEmail)]
			if !ok {
				return fmt.Errorf("job offer %s: assigned user %s is not part of the seed", j.ID, j.AssignedEmail)
			}
			assigned = sql.NullString{String: id, Valid: true}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO job_offers (id, title, assigned_user_id)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE
			SET title = EXCLUDED.title, assigned_user_id = EXCLUDED.assigned_user_id`,
			j.ID, j.Title, assigned,
		)
		if err != nil {
			return errors.Wrapf(err, "upsert job offer %s", j.ID)
		}
		logger.Info("Seeded job offer", "id", j.ID, "title", j.Title)
	}

	for _, c := range data.Candidatures {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO candidatures (id, job_offer_id, candidate_name, candidate_email)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE
			SET job_offer_id = EXCLUDED.job_offer_id, candidate_name = EXCLUDED.candidate_name,
			    candidate_email = EXCLUDED.candidate_email`,
			c.ID, c.JobOfferID, c.CandidateName, c.CandidateEmail,
		)
		if err != nil {
			return errors.Wrapf(err, "upsert candidature %s", c.ID)
		}
		logger.Info("Seeded candidature", "id", c.ID, "candidate", c.CandidateName)
	}

	return tx.Commit()
}
