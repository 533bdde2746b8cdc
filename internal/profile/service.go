package profile

import (
	"context"
	"errors"

	"backend-erickshaw/internal/db"

	"github.com/jackc/pgx/v5"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidRole     = errors.New("invalid role")
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// CreateProfile inserts the profile unless one already exists for the uid,
// in which case the stored profile is returned unchanged.
func (s *Service) CreateProfile(ctx context.Context, input Profile) (Profile, error) {
	return s.CreateProfileWith(ctx, s.db, input)
}

// CreateProfileWith is CreateProfile on q, so callers can include it in
// their own transaction.
func (s *Service) CreateProfileWith(ctx context.Context, q db.Querier, input Profile) (Profile, error) {
	if input.Role == "" {
		input.Role = RoleStudent
	}
	if !ValidRole(input.Role) {
		return Profile{}, ErrInvalidRole
	}

	row := q.QueryRow(ctx, `
		INSERT INTO profiles (uid, name, roll, email, hostel, role)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (uid) DO NOTHING
		RETURNING created_at, updated_at
	`, input.UID, input.Name, input.Roll, input.Email, input.Hostel, input.Role)
	err := row.Scan(&input.CreatedAt, &input.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return getProfile(ctx, q, input.UID)
	}
	if err != nil {
		return Profile{}, err
	}
	return input, nil
}

func (s *Service) GetProfile(ctx context.Context, uid string) (Profile, error) {
	return getProfile(ctx, s.db, uid)
}

func getProfile(ctx context.Context, q db.Querier, uid string) (Profile, error) {
	row := q.QueryRow(ctx, `
		SELECT uid, name, roll, email, hostel, role, created_at, updated_at
		FROM profiles WHERE uid=$1
	`, uid)
	var p Profile
	if err := row.Scan(&p.UID, &p.Name, &p.Roll, &p.Email, &p.Hostel, &p.Role, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrProfileNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

// UpdateProfile applies the non-empty fields of patch and stamps updated_at.
// A role change is written to the account as well, in the same transaction,
// since tokens are issued from users.role.
func (s *Service) UpdateProfile(ctx context.Context, uid string, patch Profile) (Profile, error) {
	p, err := s.GetProfile(ctx, uid)
	if err != nil {
		return Profile{}, err
	}
	if patch.Name != "" {
		p.Name = patch.Name
	}
	if patch.Roll != "" {
		p.Roll = patch.Roll
	}
	if patch.Email != "" {
		p.Email = patch.Email
	}
	if patch.Hostel != "" {
		p.Hostel = patch.Hostel
	}
	roleChanged := false
	if patch.Role != "" {
		if !ValidRole(patch.Role) {
			return Profile{}, ErrInvalidRole
		}
		roleChanged = patch.Role != p.Role
		p.Role = patch.Role
	}

	if !roleChanged {
		err = updateProfile(ctx, s.db, &p)
	} else {
		err = db.WithTx(ctx, s.db, func(tx db.Querier) error {
			if err := updateProfile(ctx, tx, &p); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `
				UPDATE users SET role=$2, updated_at=now()
				WHERE id=$1
			`, p.UID, p.Role)
			return err
		})
	}
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}

func updateProfile(ctx context.Context, q db.Querier, p *Profile) error {
	row := q.QueryRow(ctx, `
		UPDATE profiles
		SET name=$2, roll=$3, email=$4, hostel=$5, role=$6, updated_at=now()
		WHERE uid=$1
		RETURNING updated_at
	`, p.UID, p.Name, p.Roll, p.Email, p.Hostel, p.Role)
	return row.Scan(&p.UpdatedAt)
}
