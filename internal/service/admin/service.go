package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"nmjl-service/internal/config"
	"nmjl-service/internal/model"
	pkgAuth "nmjl-service/pkg/auth"
	appErr "nmjl-service/pkg/errors"
	"nmjl-service/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const statusActive = "active"

// Service authenticates card curators.
type Service struct {
	db *gorm.DB
}

type LoginResult struct {
	Token    string      `json:"token"`
	ExpireAt time.Time   `json:"expireAt"`
	Curator  CuratorInfo `json:"curator"`
}

type CuratorInfo struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"displayName"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) find(ctx context.Context, query string, arg interface{}) (*model.Admin, error) {
	var admin model.Admin
	err := s.db.WithContext(ctx).Where(query, arg).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErr.ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, appErr.ErrInvalidAdminPassword
	}

	admin, err := s.find(ctx, "username = ?", username)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(admin.Status, statusActive) {
		return nil, appErr.ErrAdminDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, appErr.ErrInvalidAdminPassword
	}

	token, expireAt, err := pkgAuth.GenerateAdminToken(admin.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).
		Model(admin).
		Updates(map[string]interface{}{
			"last_login_at": now,
			"updated_at":    now,
		}).Error; err != nil {
		return nil, err
	}
	admin.LastLoginAt = &now

	logger.Log.Info("curator logged in", zap.String("username", admin.Username))
	return &LoginResult{
		Token:    token,
		ExpireAt: expireAt,
		Curator:  curatorInfo(*admin),
	}, nil
}

// Profile returns an active curator by id.
func (s *Service) Profile(ctx context.Context, id int64) (*CuratorInfo, error) {
	admin, err := s.find(ctx, "id = ?", id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(admin.Status, statusActive) {
		return nil, appErr.ErrAdminDisabled
	}
	info := curatorInfo(*admin)
	return &info, nil
}

// EnsureDefaultAdmin seeds the configured curator account once.
func (s *Service) EnsureDefaultAdmin(ctx context.Context) error {
	cfg := config.GlobalConfig.Admin
	if cfg.DefaultUsername == "" || cfg.DefaultPassword == "" {
		logger.Log.Warn("default curator credentials not configured; skipping bootstrap")
		return nil
	}

	var exists int64
	if err := s.db.WithContext(ctx).
		Model(&model.Admin{}).
		Where("username = ?", cfg.DefaultUsername).
		Count(&exists).Error; err != nil {
		return err
	}
	if exists > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.Admin{
		Username:     cfg.DefaultUsername,
		PasswordHash: string(hash),
		DisplayName:  cfg.DefaultUsername,
		Status:       statusActive,
	}
	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return err
	}
	logger.Log.Info("default curator account created",
		zap.String("username", cfg.DefaultUsername))
	return nil
}

func curatorInfo(admin model.Admin) CuratorInfo {
	return CuratorInfo{
		ID:          admin.ID,
		Username:    admin.Username,
		DisplayName: admin.DisplayName,
		Status:      admin.Status,
		LastLoginAt: admin.LastLoginAt,
	}
}
