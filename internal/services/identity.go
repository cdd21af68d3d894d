package services

import (
	"errors"
	"fmt"
	"log"

	"kindling/internal/models"
	"kindling/internal/utils"

	"gorm.io/gorm"
)

type IdentityService struct {
	db *gorm.DB
}

func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{db: db}
}

// Register creates a user with a bcrypt-hashed password. A taken username
// surfaces as a conflict.
func (s *IdentityService) Register(username, password, about string) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: hash,
		About:        about,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username taken", models.ErrConflict)
		}
		// AutoMigrate leaves the duplicate detection to the driver on some
		// backends; a second lookup disambiguates.
		var existing models.User
		if lookupErr := s.db.First(&existing, "username = ?", username).Error; lookupErr == nil {
			return nil, fmt.Errorf("%w: username taken", models.ErrConflict)
		}
		return nil, err
	}
	return &user, nil
}

// VerifyCredentials checks a login attempt. Unknown user and wrong password
// are logged distinctly but both come back as ErrUnauthorized so responses
// cannot be used to enumerate usernames.
func (s *IdentityService) VerifyCredentials(username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("login failed: unknown user %q", username)
			return nil, models.ErrUnauthorized
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		log.Printf("login failed: bad password for %q", username)
		return nil, models.ErrUnauthorized
	}

	if user.Banned {
		return nil, fmt.Errorf("%w: account banned", models.ErrForbidden)
	}
	return &user, nil
}

// Get returns a public profile.
func (s *IdentityService) Get(username string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfileParams carries the fields a user may change about themselves.
type UpdateProfileParams struct {
	About       *string
	ShowDead    *bool
	NewPassword *string
}

// Update applies profile changes for username.
func (s *IdentityService) Update(username string, p UpdateProfileParams) (*models.User, error) {
	var user models.User
	err := inTx(s.db, func(tx *gorm.DB) error {
		if err := tx.First(&user, "username = ?", username).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}
		if p.About != nil {
			user.About = *p.About
		}
		if p.ShowDead != nil {
			user.ShowDead = *p.ShowDead
		}
		if p.NewPassword != nil {
			hash, err := utils.HashPassword(*p.NewPassword)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes an account. Only the account owner or a moderator may do
// it. Content stays; votes held by the user are withdrawn so point totals
// keep matching the ledger.
func (s *IdentityService) Delete(username, requester string, isModerator bool) error {
	if username != requester && !isModerator {
		return models.ErrForbidden
	}
	return inTx(s.db, func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "username = ?", username).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}

		var votes []models.Vote
		if err := tx.Where("username = ?", username).Find(&votes).Error; err != nil {
			return err
		}
		for _, v := range votes {
			if v.ContentType == models.ContentItem {
				if err := tx.Model(&models.Item{}).Where("id = ?", v.ContentID).
					UpdateColumn("points", gorm.Expr("points - ?", v.Value)).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Model(&models.Comment{}).Where("id = ?", v.ContentID).
					UpdateColumn("points", gorm.Expr("points - ?", v.Value)).Error; err != nil {
					return err
				}
			}
		}
		if err := tx.Where("username = ?", username).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("username = ?", username).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("username = ?", username).Delete(&models.Hidden{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}
