package services

import (
	"errors"
	"time"

	"github.com/StevenOyar/RegenArdhi/config"
	"github.com/StevenOyar/RegenArdhi/models"
	"github.com/StevenOyar/RegenArdhi/utils"

	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email already registered")

func RegisterUser(firstName, lastName, email string, age int, location, password string) (*models.User, error) {
	var existing models.User
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Age:          age,
		Location:     location,
		PasswordHash: hashed,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func AuthenticateUser(email, password string) (string, *models.User, error) {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil, errors.New("invalid email or password")
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return "", nil, errors.New("invalid email or password")
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// StartPasswordReset issues a reset token and emails it. Unknown emails
// return nil so the endpoint cannot be used to probe accounts.
func StartPasswordReset(email string) error {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil
	}

	token, err := utils.GenerateResetToken(32)
	if err != nil {
		return err
	}

	exp := time.Now().Add(time.Hour)
	user.ResetToken = token
	user.ResetTokenExp = &exp
	if err := config.DB.Save(&user).Error; err != nil {
		return err
	}

	return utils.SendResetEmail(user.Email, token)
}

func ResetPassword(token, newPassword string) error {
	var user models.User
	err := config.DB.Where("reset_token = ?", token).First(&user).Error
	if err != nil {
		return errors.New("invalid or expired reset token")
	}
	if user.ResetTokenExp == nil || user.ResetTokenExp.Before(time.Now()) {
		return errors.New("invalid or expired reset token")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hashed
	user.ResetToken = ""
	user.ResetTokenExp = nil
	return config.DB.Save(&user).Error
}

func GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

type ProfileUpdate struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Age       *int    `json:"age"`
	Location  *string `json:"location"`
}

func UpdateProfile(id uint, upd ProfileUpdate) (*models.User, error) {
	user, err := GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if upd.FirstName != nil {
		user.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		user.LastName = *upd.LastName
	}
	if upd.Age != nil {
		if *upd.Age < 13 || *upd.Age > 120 {
			return nil, errors.New("age must be between 13 and 120")
		}
		user.Age = *upd.Age
	}
	if upd.Location != nil {
		user.Location = *upd.Location
	}
	if err := config.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// TogglePush flips push delivery for all of the user's devices.
func TogglePush(db *gorm.DB, userID uint, enabled bool) error {
	if err := db.Model(&models.UserDevice{}).Where("user_id = ?", userID).
		Update("enabled", enabled).Error; err != nil {
		return err
	}
	return db.Model(&models.User{}).Where("id = ?", userID).
		Update("push_enabled", enabled).Error
}
