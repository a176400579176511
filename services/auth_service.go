package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nikgav1/calorie-tracking-app/models"
	"github.com/nikgav1/calorie-tracking-app/utils"
)

// AuthService owns signup, login, and the password reset flow.
type AuthService struct {
	db        *gorm.DB
	mailer    *utils.Mailer
	jwtSecret string
}

func NewAuthService(db *gorm.DB, mailer *utils.Mailer, jwtSecret string) *AuthService {
	return &AuthService{db: db, mailer: mailer, jwtSecret: jwtSecret}
}

// SignupInput carries credentials plus the optional onboarding profile.
// Numeric fields tolerate strings; unparsable values are simply not stored.
type SignupInput struct {
	Email            string      `json:"email" binding:"required,email"`
	Password         string      `json:"password" binding:"required"`
	Age              interface{} `json:"age"`
	Sex              string      `json:"sex"`
	Weight           interface{} `json:"weight"`
	Height           interface{} `json:"height"`
	ActivityLevel    string      `json:"activityLevel"`
	Calories         interface{} `json:"ccal"`
	Protein          interface{} `json:"protein"`
	Fat              interface{} `json:"fat"`
	Carbohydrates    interface{} `json:"carbohydrates"`
	UTCOffsetMinutes interface{} `json:"utcOffsetMinutes"`
}

// SignUp creates the account and returns a login token.
func (s *AuthService) SignUp(ctx context.Context, in SignupInput) (string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return "", ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return "", err
	}

	user := models.User{
		Email:         email,
		Password:      hashed,
		Sex:           in.Sex,
		ActivityLevel: in.ActivityLevel,
		CalorieGoal:   2000,
	}
	if f, ok := toFloat(in.Age); ok {
		a := int(f)
		user.Age = &a
	}
	if f, ok := toFloat(in.Weight); ok {
		user.Weight = &f
	}
	if f, ok := toFloat(in.Height); ok {
		user.Height = &f
	}
	if f, ok := toFloat(in.Calories); ok && f > 0 {
		user.CalorieGoal = int(f)
	}
	if f, ok := toFloat(in.Protein); ok {
		user.ProteinGoal = f
	}
	if f, ok := toFloat(in.Fat); ok {
		user.FatGoal = f
	}
	if f, ok := toFloat(in.Carbohydrates); ok {
		user.CarbohydratesGoal = f
	}
	if f, ok := toFloat(in.UTCOffsetMinutes); ok {
		u := int(f)
		if u >= utils.MinUTCOffsetMinutes && u <= utils.MaxUTCOffsetMinutes {
			user.UTCOffsetMinutes = &u
		}
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return "", err
	}
	return utils.GenerateJWT(s.jwtSecret, user.ID, user.Email)
}

// Login verifies credentials and returns a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", ErrInvalidCredentials
	}
	return utils.GenerateJWT(s.jwtSecret, user.ID, user.Email)
}

// ForgotPassword issues a short-lived reset code. An unknown email is
// silently accepted so the endpoint cannot be used to probe accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil
	}

	user.ResetToken = utils.GenerateRandomToken(6)
	user.ResetTokenExp = time.Now().Add(15 * time.Minute)
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return err
	}

	return s.mailer.SendResetEmail(ctx, user.Email, user.ResetToken)
}

// ResetPassword exchanges a valid reset code for a new password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	var user models.User
	err := s.db.WithContext(ctx).Where("reset_token = ?", token).First(&user).Error
	if err != nil || token == "" || time.Now().After(user.ResetTokenExp) {
		return ErrInvalidResetToken
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.Password = hashed
	user.ResetToken = ""
	user.ResetTokenExp = time.Time{}
	return s.db.WithContext(ctx).Save(&user).Error
}
