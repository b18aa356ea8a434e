package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/studentcollab/backend/internal/config"
	"github.com/studentcollab/backend/internal/models"
	"github.com/studentcollab/backend/pkg/logger"
	"github.com/studentcollab/backend/pkg/response"
	"gorm.io/gorm"
)

type FileService struct {
	db *gorm.DB
}

func NewFileService(db *gorm.DB) *FileService {
	return &FileService{db: db}
}

// List returns a project's shared files, newest first. Members only.
func (s *FileService) List(projectID, userID uint) ([]models.ProjectFile, error) {
	project, err := findProject(s.db, projectID)
	if err != nil {
		return nil, err
	}
	if !isOwnerOrMember(s.db, project, userID) {
		return nil, response.NewForbidden("you are not a member of this project")
	}

	var files []models.ProjectFile
	if err := s.db.Preload("UploadedBy").
		Where("project_id = ?", projectID).
		Order("uploaded_at DESC").
		Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

// Upload stores a member's file under a collision-proof name and records it.
// Only extensions on the configured allow-list are accepted, and the blob
// lands directly inside the upload directory regardless of the client name.
func (s *FileService) Upload(projectID, userID uint, header *multipart.FileHeader) (*models.ProjectFile, error) {
	project, err := findProject(s.db, projectID)
	if err != nil {
		return nil, err
	}
	if !isOwnerOrMember(s.db, project, userID) {
		return nil, response.NewForbidden("you are not a member of this project")
	}

	storedPath, err := storeBlob(header, config.GlobalConfig.Upload.Extensions)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(header.Filename)

	file := models.ProjectFile{
		ProjectID:    projectID,
		UploadedByID: userID,
		Name:         name,
		StoredPath:   storedPath,
		Size:         header.Size,
	}
	if err := s.db.Create(&file).Error; err != nil {
		os.Remove(storedPath)
		return nil, err
	}

	LogInfo("file", "upload", "file uploaded: "+name, &userID, "", map[string]uint{"project_id": projectID})
	return &file, nil
}

// Open resolves a file record to its blob for download. Members only.
func (s *FileService) Open(fileID, userID uint) (*models.ProjectFile, error) {
	var file models.ProjectFile
	if err := s.db.First(&file, fileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("file not found")
		}
		return nil, err
	}

	project, err := findProject(s.db, file.ProjectID)
	if err != nil {
		return nil, err
	}
	if !isOwnerOrMember(s.db, project, userID) {
		return nil, response.NewForbidden("you are not a member of this project")
	}
	return &file, nil
}

// Delete removes a file record and its blob. The project owner or the
// original uploader may delete.
func (s *FileService) Delete(fileID, userID uint) error {
	var file models.ProjectFile
	if err := s.db.First(&file, fileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("file not found")
		}
		return err
	}

	project, err := findProject(s.db, file.ProjectID)
	if err != nil {
		return err
	}
	if project.OwnerID != userID && file.UploadedByID != userID {
		return response.NewForbidden("only the project owner or the uploader can delete this file")
	}

	if err := s.db.Delete(&file).Error; err != nil {
		return err
	}
	if err := os.Remove(file.StoredPath); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Str("path", file.StoredPath).Msg("failed to remove file blob")
	}
	return nil
}

// imageExtensions is the allow-list for avatar and thumbnail uploads.
const imageExtensions = ".png,.jpg,.jpeg,.gif,.webp"

// StoreImage saves an uploaded avatar or thumbnail blob and returns its
// stored path. Callers record the path on the owning entity.
func StoreImage(header *multipart.FileHeader) (string, error) {
	return storeBlob(header, imageExtensions)
}

// storeBlob writes an upload under a collision-proof uuid name inside the
// upload directory, regardless of the client-supplied name.
func storeBlob(header *multipart.FileHeader, allowList string) (string, error) {
	cfg := config.GlobalConfig.Upload
	ext := strings.ToLower(filepath.Ext(filepath.Base(header.Filename)))
	if !extensionAllowed(ext, allowList) {
		return "", response.NewBadRequest("file type not allowed")
	}
	if cfg.MaxSizeMB > 0 && header.Size > int64(cfg.MaxSizeMB)<<20 {
		return "", response.NewBadRequest(fmt.Sprintf("file exceeds the %d MB limit", cfg.MaxSizeMB))
	}

	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return "", err
	}
	storedPath := filepath.Join(cfg.Dir, uuid.NewString()+ext)

	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(storedPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(storedPath)
		return "", err
	}
	return storedPath, nil
}

// removeStoredBlob deletes a blob previously written by storeBlob. Paths
// outside the upload directory (external URLs, empty values) are left alone.
func removeStoredBlob(path string) {
	if path == "" {
		return
	}
	rel, err := filepath.Rel(config.GlobalConfig.Upload.Dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Str("path", path).Msg("failed to remove file blob")
	}
}

func extensionAllowed(ext, allowList string) bool {
	if ext == "" {
		return false
	}
	for _, allowed := range strings.Split(allowList, ",") {
		if strings.EqualFold(strings.TrimSpace(allowed), ext) {
			return true
		}
	}
	return false
}
