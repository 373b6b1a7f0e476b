package storage

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Intechlligent1/AttendanceSystem/storage/model"
)

// UsersStorage manages operator accounts. Password hashes never leave this
// type: every returned User has the hash cleared.
type UsersStorage struct {
	db     *gorm.DB
	params Argon2idParams
}

// UsersStorage returns a UsersStorage using the configured hashing parameters.
func (s *Storage) UsersStorage() *UsersStorage {
	return &UsersStorage{db: s.db, params: s.userParams}
}

// Count returns the number of operator accounts.
func (s *UsersStorage) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "users: count failed")
	}
	return count, nil
}

// List returns all operator accounts.
func (s *UsersStorage) List() ([]model.User, error) {
	var users []model.User
	if err := s.db.Order("username").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "users: list failed")
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *UsersStorage) get(username string) (*model.User, error) {
	var u model.User
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NotFoundErrorFmt("user not found: %s", username)
		}
		return nil, errors.Wrap(err, "users: get failed")
	}
	return &u, nil
}

// Get returns an operator account by username.
func (s *UsersStorage) Get(username string) (*model.User, error) {
	u, err := s.get(username)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

// Create adds an operator account, hashing the password with the configured
// argon2id parameters.
func (s *UsersStorage) Create(username, password, displayName string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, errors.New("users: username and password are required")
	}
	hash, err := hashPassword(password, s.params)
	if err != nil {
		return nil, err
	}
	u := model.User{
		Username:     username,
		PasswordHash: hash,
		DisplayName:  displayName,
	}
	if err = s.db.Create(&u).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, model.AlreadyExistsErrorFmt("user already exists: %s", username)
		}
		return nil, errors.Wrap(err, "users: create failed")
	}
	u.PasswordHash = ""
	return &u, nil
}

// Update changes display name, password and/or the disabled flag of an
// operator account. Nil pointers leave the field untouched.
func (s *UsersStorage) Update(username string, displayName *string, newPassword *string, disabled *bool) (*model.User, error) {
	u, err := s.get(username)
	if err != nil {
		return nil, err
	}
	if displayName != nil {
		u.DisplayName = *displayName
	}
	if disabled != nil {
		u.Disabled = *disabled
	}
	if newPassword != nil {
		if *newPassword == "" {
			return nil, errors.New("users: password cannot be empty")
		}
		if u.PasswordHash, err = hashPassword(*newPassword, s.params); err != nil {
			return nil, err
		}
	}
	if err = s.db.Save(u).Error; err != nil {
		return nil, errors.Wrap(err, "users: update failed")
	}
	u.PasswordHash = ""
	return u, nil
}

// Delete removes an operator account by username.
func (s *UsersStorage) Delete(username string) error {
	res := s.db.Where("username = ?", username).Delete(&model.User{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "users: delete failed")
	}
	if res.RowsAffected == 0 {
		return model.NotFoundErrorFmt("user not found: %s", username)
	}
	return nil
}

// Authenticate validates a username/password combination. When the stored
// hash was created with different parameters than currently configured, it is
// transparently rehashed with the current ones.
func (s *UsersStorage) Authenticate(username, password string) (*model.User, error) {
	u, err := s.get(username)
	if err != nil {
		return nil, err
	}
	if u.Disabled {
		return nil, errors.Errorf("users: account disabled: %s", username)
	}
	ok, err := verifyPassword(u.PasswordHash, password)
	if err != nil || !ok {
		return nil, errors.New("users: invalid credentials")
	}
	if stored, perr := parseStoredParams(u.PasswordHash); perr == nil && !stored.equals(s.params) {
		if rehash, herr := hashPassword(password, s.params); herr == nil {
			_ = s.db.Model(&model.User{}).Where("id = ?", u.ID).
				Update("password_hash", rehash).Error
		}
	}
	u.PasswordHash = ""
	return u, nil
}

func parseStoredParams(encoded string) (Argon2idParams, error) {
	p, _, _, err := parsePasswordHash(encoded)
	return p, err
}
