package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/madrasah-go-api/internal/dto"
	"github.com/noah-isme/madrasah-go-api/internal/models"
	"github.com/noah-isme/madrasah-go-api/internal/observability"
	"github.com/noah-isme/madrasah-go-api/internal/repository"
)

var (
	// ErrUploadTooLarge indicates the payload exceeded the configured limit.
	ErrUploadTooLarge = errors.New("file exceeds maximum allowed size")
	// ErrUploadTypeNotAllowed indicates the MIME type is not permitted.
	ErrUploadTypeNotAllowed = errors.New("file type not allowed")
)

// FileStorage abstracts attachment destinations.
type FileStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// UploadService validates and persists attachment uploads.
type UploadService interface {
	Upload(ctx context.Context, schoolID uint, file *multipart.FileHeader, uploaderID *uint) (dto.UploadResponse, error)
}

type uploadService struct {
	storage FileStorage
	repo    repository.AttachmentRepository
	logger  zerolog.Logger
	maxSize int64
	tracer  trace.Tracer
}

// NewUploadService constructs an upload service.
func NewUploadService(storage FileStorage, repo repository.AttachmentRepository, maxSizeMB int, logger zerolog.Logger) UploadService {
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	return &uploadService{
		storage: storage,
		repo:    repo,
		logger:  logger.With().Str("component", "upload_service").Logger(),
		maxSize: int64(maxSizeMB) * 1024 * 1024,
		tracer:  otel.Tracer("github.com/noah-isme/madrasah-go-api/internal/service/upload"),
	}
}

func (s *uploadService) Upload(ctx context.Context, schoolID uint, file *multipart.FileHeader, uploaderID *uint) (dto.UploadResponse, error) {
	ctx, span := s.tracer.Start(ctx, "upload.store")
	defer span.End()

	span.SetAttributes(attribute.Int64("upload.max_bytes", s.maxSize))
	if file != nil {
		span.SetAttributes(
			attribute.String("upload.original_name", strings.TrimSpace(file.Filename)),
			attribute.Int64("upload.request_size", file.Size),
		)
	} else {
		span.SetAttributes(attribute.Bool("upload.file_present", false))
	}

	start := time.Now()
	defer func() {
		observability.UploadLatency().Observe(time.Since(start).Seconds())
	}()

	if file == nil {
		err := errors.New("file is required")
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return dto.UploadResponse{}, err
	}

	if file.Size > s.maxSize {
		observability.UploadRejected().WithLabelValues("size").Inc()
		span.RecordError(ErrUploadTooLarge)
		span.SetStatus(codes.Error, "payload too large")
		return dto.UploadResponse{}, ErrUploadTooLarge
	}

	handle, err := file.Open()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "open failed")
		return dto.UploadResponse{}, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		return dto.UploadResponse{}, err
	}
	if int64(buf.Len()) > s.maxSize {
		observability.UploadRejected().WithLabelValues("size").Inc()
		span.RecordError(ErrUploadTooLarge)
		span.SetStatus(codes.Error, "payload too large")
		return dto.UploadResponse{}, ErrUploadTooLarge
	}

	mime := mimetype.Detect(buf.Bytes())
	fileType := strings.ToLower(strings.TrimSpace(mime.String()))
	span.SetAttributes(attribute.String("upload.detected_mime", fileType))
	if !isAllowedType(fileType) {
		observability.UploadRejected().WithLabelValues("type").Inc()
		span.RecordError(ErrUploadTypeNotAllowed)
		span.SetStatus(codes.Error, "type not allowed")
		s.logger.Warn().Str("mime_type", fileType).Str("file_name", file.Filename).Msg("rejected attachment with disallowed type")
		return dto.UploadResponse{}, ErrUploadTypeNotAllowed
	}

	checksum := sha256.Sum256(buf.Bytes())
	sanitizedName := sanitizeFileName(file.Filename)
	span.SetAttributes(
		attribute.String("upload.sanitized_name", sanitizedName),
		attribute.Int64("upload.size_bytes", int64(buf.Len())),
	)

	url, err := s.storage.Upload(ctx, sanitizedName, bytes.NewReader(buf.Bytes()))
	if err != nil {
		observability.UploadRejected().WithLabelValues("storage").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage failed")
		return dto.UploadResponse{}, err
	}

	attachment := models.Attachment{
		SchoolID:  schoolID,
		FileName:  sanitizedName,
		URL:       url,
		MimeType:  fileType,
		SizeBytes: int64(buf.Len()),
		Checksum:  hex.EncodeToString(checksum[:]),
	}
	if uploaderID != nil {
		attachment.UploaderID = uploaderID
		span.SetAttributes(attribute.Int("upload.uploader_id", int(*uploaderID)))
	}

	if err := s.repo.Create(ctx, &attachment); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		return dto.UploadResponse{}, err
	}

	span.SetStatus(codes.Ok, "stored")

	return dto.UploadResponse{
		URL:       url,
		SizeBytes: attachment.SizeBytes,
		MimeType:  attachment.MimeType,
		Checksum:  attachment.Checksum,
		FileName:  attachment.FileName,
	}, nil
}

func sanitizeFileName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.ToLower(base)
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		if r == '-' || r == '_' {
			return r
		}
		return '-'
	}, base)
	base = strings.Trim(base, "-")
	if base == "" {
		base = fmt.Sprintf("attachment-%d", time.Now().Unix())
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = ".bin"
	}
	return base + ext
}

// Only JPEG, PNG and PDF attachments are accepted.
func isAllowedType(m string) bool {
	switch m {
	case "image/jpeg", "image/png", "application/pdf":
		return true
	default:
		return false
	}
}
