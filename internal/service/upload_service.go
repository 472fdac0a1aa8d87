package service

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/logger"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

var allowedUploadScenes = map[string]struct{}{
	"product":  {},
	"post":     {},
	"category": {},
	"deal":     {},
	"common":   {},
}

// UploadSignature 直传 Cloudinary 所需的签名参数
type UploadSignature struct {
	CloudName string `json:"cloud_name"`
	APIKey    string `json:"api_key"`
	Folder    string `json:"folder,omitempty"`
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
}

// UploadService 文件上传服务
type UploadService struct {
	upload     config.UploadConfig
	cloudinary config.CloudinaryConfig
	now        func() time.Time
}

// NewUploadService 创建文件上传服务实例
func NewUploadService(cfg *config.Config) *UploadService {
	return &UploadService{
		upload:     cfg.Upload,
		cloudinary: cfg.Cloudinary,
		now:        time.Now,
	}
}

// SaveFile 保存上传的文件，返回可访问的相对路径
func (s *UploadService) SaveFile(file *multipart.FileHeader, scene string) (string, error) {
	if s.upload.MaxSize > 0 && file.Size > s.upload.MaxSize {
		return "", ErrUploadTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.upload.AllowedExtensions) > 0 {
		if ext == "" || !isAllowedExtension(ext, s.upload.AllowedExtensions) {
			return "", ErrUploadTypeInvalid
		}
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// 读取文件头部识别 MIME 类型
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	contentType := http.DetectContentType(buffer[:n])
	if len(s.upload.AllowedTypes) > 0 && !containsFold(s.upload.AllowedTypes, contentType) {
		return "", ErrUploadTypeInvalid
	}

	if strings.HasPrefix(contentType, "image/") {
		width, height, err := decodeImageDimensions(src)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUploadTypeInvalid, err)
		}
		if s.upload.MaxWidth > 0 && width > s.upload.MaxWidth {
			return "", ErrUploadImageTooLarge
		}
		if s.upload.MaxHeight > 0 && height > s.upload.MaxHeight {
			return "", ErrUploadImageTooLarge
		}
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	normalizedScene := normalizeUploadScene(scene)
	filename := uuid.New().String() + ext
	now := s.now()
	year := now.Format("2006")
	month := now.Format("01")
	savePath := filepath.Join(s.uploadDir(), normalizedScene, year, month, filename)

	if err := os.MkdirAll(filepath.Dir(savePath), 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(savePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	// 返回相对路径，由前端根据环境配置拼接完整 URL
	return fmt.Sprintf("/uploads/%s/%s/%s/%s", normalizedScene, year, month, filename), nil
}

// CloudinarySignature 生成 Cloudinary 直传签名
func (s *UploadService) CloudinarySignature(scene string) (*UploadSignature, error) {
	cloudName := strings.TrimSpace(s.cloudinary.CloudName)
	apiKey := strings.TrimSpace(s.cloudinary.APIKey)
	apiSecret := strings.TrimSpace(s.cloudinary.APISecret)
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, ErrUploadNotConfigured
	}

	timestamp := s.now().Unix()
	params := map[string]string{
		"timestamp": strconv.FormatInt(timestamp, 10),
	}
	folder := strings.Trim(strings.TrimSpace(s.cloudinary.Folder), "/")
	if normalizedScene := normalizeUploadScene(scene); folder != "" {
		folder = folder + "/" + normalizedScene
	} else {
		folder = normalizedScene
	}
	params["folder"] = folder

	return &UploadSignature{
		CloudName: cloudName,
		APIKey:    apiKey,
		Folder:    folder,
		Timestamp: timestamp,
		Signature: signCloudinaryParams(params, apiSecret),
	}, nil
}

func (s *UploadService) uploadDir() string {
	if dir := strings.TrimSpace(s.upload.Dir); dir != "" {
		return dir
	}
	return "uploads"
}

// signCloudinaryParams 参数按 key 排序拼接为 k=v&k=v 后追加 secret 做 SHA-1
func signCloudinaryParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for key, value := range params {
		if strings.TrimSpace(value) == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}

func normalizeUploadScene(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := allowedUploadScenes[value]; ok {
		return value
	}
	return "common"
}

func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), value) {
			return true
		}
	}
	return false
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if ext == normalized {
			return true
		}
	}
	return false
}

// decodeImageDimensions 只解析图片头，不解码像素
func decodeImageDimensions(src io.ReadSeeker) (int, int, error) {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return 0, 0, err
	}
	cfg, format, err := image.DecodeConfig(src)
	if err != nil {
		return 0, 0, fmt.Errorf("decode image: %w", err)
	}
	logger.Debugw("upload_image_decoded", "format", format, "width", cfg.Width, "height", cfg.Height)
	return cfg.Width, cfg.Height, nil
}
