package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zy091/iwishneed-sub001/internal/model"
	"github.com/zy091/iwishneed-sub001/internal/ports"
	"github.com/zy091/iwishneed-sub001/internal/util"
)

const (
	imageSizeLimit int64 = 5 << 20
	fileSizeLimit  int64 = 10 << 20
)

type AttachmentService struct {
	storage     ports.S3Storage
	uploadTTL   time.Duration
	downloadTTL time.Duration
	newID       func() string
}

func NewAttachmentService(storage ports.S3Storage, uploadTTL, downloadTTL time.Duration) *AttachmentService {
	return &AttachmentService{
		storage:     storage,
		uploadTTL:   uploadTTL,
		downloadTTL: downloadTTL,
		newID:       uuid.NewString,
	}
}

// SizeLimit : 5 МБ для image/*, 10 МБ для остальных типов
func SizeLimit(mimeType string) int64 {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(mimeType)), "image/") {
		return imageSizeLimit
	}
	return fileSizeLimit
}

// PresignUploads : весь пакет проверяется до первого обращения к хранилищу.
// Первая ошибка хранилища прерывает пакет целиком.
func (s *AttachmentService) PresignUploads(ctx context.Context, requirementID string, files []model.FileDeclaration) ([]model.UploadTicket, error) {
	if strings.TrimSpace(requirementID) == "" {
		return nil, validationError("отсутствует requirement_id")
	}
	if len(files) == 0 {
		return nil, validationError("список files пуст")
	}

	for _, file := range files {
		if strings.TrimSpace(file.Name) == "" {
			return nil, validationError("у файла отсутствует name")
		}
		if file.Size < 0 {
			return nil, validationError("некорректный размер файла %q", file.Name)
		}
		if limit := SizeLimit(file.Type); file.Size > limit {
			return nil, wrapTooLarge(file.Name, limit)
		}
	}

	prefix := util.SanitizePathSegment(requirementID)
	tickets := make([]model.UploadTicket, 0, len(files))
	for _, file := range files {
		path := prefix + "/" + s.newID() + "_" + util.SanitizePathSegment(file.Name)

		ticket, err := s.storage.CreateSignedUploadURL(ctx, path, s.uploadTTL)
		if err != nil {
			return nil, util.LogError("[AttachmentService] не удалось подписать URL загрузки", err)
		}
		tickets = append(tickets, *ticket)
	}

	return tickets, nil
}

// PresignDownload : владелец пути не проверяется, каждая выдача пишется в лог
func (s *AttachmentService) PresignDownload(ctx context.Context, caller *model.CallerIdentity, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", validationError("отсутствует параметр path")
	}

	signedURL, err := s.storage.CreateSignedDownloadURL(ctx, path, s.downloadTTL)
	if err != nil {
		return "", util.LogError("[AttachmentService] не удалось подписать URL скачивания", err)
	}

	callerID := ""
	if caller != nil {
		callerID = caller.ID
	}
	zap.L().Info("[AttachmentService] выдан URL скачивания",
		zap.String("caller_id", callerID),
		zap.String("path", path),
		zap.Duration("expires_in", s.downloadTTL),
	)

	return signedURL, nil
}

func wrapTooLarge(name string, limit int64) error {
	return fmt.Errorf("%w: %q превышает %d МБ", ErrFileTooLarge, name, limit>>20)
}
