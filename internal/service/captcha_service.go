package service

import (
	"strings"
	"sync"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"

	"github.com/mojocn/base64Captcha"
)

const captchaCharset = "0123456789abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"

// CaptchaVerifyPayload 验证码校验请求载荷
type CaptchaVerifyPayload struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// CaptchaImageChallenge 图片验证码挑战
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaPublicSetting 前台可见的验证码开关
type CaptchaPublicSetting struct {
	Enabled  bool `json:"enabled"`
	Login    bool `json:"login"`
	Register bool `json:"register"`
}

// CaptchaService 图片验证码服务，按场景开关决定是否需要校验
type CaptchaService struct {
	cfg config.CaptchaConfig

	once  sync.Once
	store base64Captcha.Store
}

// NewCaptchaService 创建验证码服务
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	return &CaptchaService{cfg: normalizeCaptchaConfig(cfg)}
}

// PublicSetting 获取公开配置
func (s *CaptchaService) PublicSetting() CaptchaPublicSetting {
	if s == nil {
		return CaptchaPublicSetting{}
	}
	return CaptchaPublicSetting{
		Enabled:  s.cfg.Enabled,
		Login:    s.SceneEnabled(constants.CaptchaSceneLogin),
		Register: s.SceneEnabled(constants.CaptchaSceneRegister),
	}
}

// SceneEnabled 场景是否需要验证码
func (s *CaptchaService) SceneEnabled(scene string) bool {
	if s == nil || !s.cfg.Enabled {
		return false
	}
	switch strings.TrimSpace(scene) {
	case constants.CaptchaSceneLogin:
		return s.cfg.Login
	case constants.CaptchaSceneRegister:
		return s.cfg.Register
	default:
		return false
	}
}

// GenerateImageChallenge 生成图片验证码
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	if s == nil || !s.cfg.Enabled {
		return nil, ErrCaptchaConfigInvalid
	}
	driver := base64Captcha.NewDriverString(
		s.cfg.Height,
		s.cfg.Width,
		s.cfg.NoiseCount,
		s.cfg.ShowLine,
		s.cfg.Length,
		captchaCharset,
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	captcha := base64Captcha.NewCaptcha(driver, s.imageStore())
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaImageChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify 按场景校验验证码，不区分大小写，校验后立即作废
func (s *CaptchaService) Verify(scene string, payload CaptchaVerifyPayload) error {
	if !s.SceneEnabled(scene) {
		return nil
	}
	captchaID := strings.TrimSpace(payload.CaptchaID)
	captchaCode := strings.TrimSpace(payload.CaptchaCode)
	if captchaID == "" || captchaCode == "" {
		return ErrCaptchaRequired
	}
	answer := s.imageStore().Get(captchaID, true)
	if answer == "" || !strings.EqualFold(answer, captchaCode) {
		return ErrCaptchaInvalid
	}
	return nil
}

func (s *CaptchaService) imageStore() base64Captcha.Store {
	s.once.Do(func() {
		s.store = base64Captcha.NewMemoryStore(s.cfg.MaxStore, time.Duration(s.cfg.ExpireSeconds)*time.Second)
	})
	return s.store
}

func normalizeCaptchaConfig(cfg config.CaptchaConfig) config.CaptchaConfig {
	if cfg.Length < 4 || cfg.Length > 8 {
		cfg.Length = 5
	}
	if cfg.Width < 80 || cfg.Width > 400 {
		cfg.Width = 240
	}
	if cfg.Height < 30 || cfg.Height > 160 {
		cfg.Height = 80
	}
	if cfg.NoiseCount < 0 || cfg.NoiseCount > 20 {
		cfg.NoiseCount = 2
	}
	if cfg.ShowLine < 0 {
		cfg.ShowLine = 2
	}
	if cfg.ExpireSeconds < 30 || cfg.ExpireSeconds > 3600 {
		cfg.ExpireSeconds = 300
	}
	if cfg.MaxStore < 100 {
		cfg.MaxStore = 10240
	}
	return cfg
}
