package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alimarchal/maharat-sub001/internal/apierror"
	"github.com/alimarchal/maharat-sub001/internal/model"
	"github.com/alimarchal/maharat-sub001/internal/repository"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultFolder receives uploads that name no folder.
const DefaultFolder = "uploads"

// sniffLen is how much of an upload is read to detect its type.
const sniffLen = 3072

var (
	folderPattern = regexp.MustCompile(`^[a-zA-Z0-9_\-/]+$`)
	extPattern    = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)
)

// Storage stores uploaded objects under paths relative to its root.
type Storage interface {
	Save(ctx context.Context, relPath string, r io.Reader) (int64, error)
	Delete(ctx context.Context, relPath string) error
}

// UploadInput is one received multipart file.
type UploadInput struct {
	Filename   string
	Size       int64
	Content    io.Reader
	Folder     string
	Type       *string
	UploadedBy uuid.UUID
}

type FileService interface {
	Upload(ctx context.Context, in UploadInput) (*model.File, error)
	// Hooks remove the stored object when its row is deleted.
	Hooks() Hooks[model.File]
}

type fileService struct {
	repo     repository.CRUDRepository[model.File]
	storage  Storage
	maxBytes int64
}

func NewFileService(repo repository.CRUDRepository[model.File], storage Storage, maxUploadMB int64) FileService {
	return &fileService{repo: repo, storage: storage, maxBytes: maxUploadMB << 20}
}

func (s *fileService) Upload(ctx context.Context, in UploadInput) (*model.File, error) {
	if s.maxBytes > 0 && in.Size > s.maxBytes {
		return nil, apierror.Validation(fmt.Sprintf("The file may not be greater than %d megabytes", s.maxBytes>>20))
	}
	folder, err := cleanFolder(in.Folder)
	if err != nil {
		return nil, err
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(in.Content, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, apierror.Storage("Failed to read upload", err)
	}
	head = head[:n]
	mime := mimetype.Detect(head)

	// Client extensions outside the plain alphanumeric form give way to the detected one.
	ext := strings.ToLower(filepath.Ext(in.Filename))
	if !extPattern.MatchString(ext) {
		ext = mime.Extension()
	}
	relPath := folder + "/" + uuid.NewString() + ext

	size, err := s.storage.Save(ctx, relPath, io.MultiReader(bytes.NewReader(head), in.Content))
	if err != nil {
		return nil, apierror.Storage("Failed to store file", err)
	}

	f := &model.File{
		OriginalName: filepath.Base(in.Filename),
		Path:         relPath,
		MimeType:     mime.String(),
		Size:         size,
		Folder:       folder,
		Type:         in.Type,
		UploadedBy:   actorRef(in.UploadedBy),
	}
	if err := s.repo.Create(ctx, f); err != nil {
		if derr := s.storage.Delete(ctx, relPath); derr != nil {
			log.Warn().Err(derr).Str("path", relPath).Msg("failed to remove orphaned upload")
		}
		return nil, err
	}
	return f, nil
}

func (s *fileService) Hooks() Hooks[model.File] {
	return Hooks[model.File]{
		AfterDelete: func(ctx context.Context, f *model.File) {
			if err := s.storage.Delete(ctx, f.Path); err != nil {
				log.Warn().Err(err).Str("path", f.Path).Msg("failed to remove stored file")
			}
		},
	}
}

// cleanFolder normalises the requested folder and rejects traversal.
func cleanFolder(folder string) (string, error) {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return DefaultFolder, nil
	}
	if !folderPattern.MatchString(folder) {
		return "", apierror.Validation("Folder may only contain letters, digits, '_', '-' and '/'")
	}
	for _, part := range strings.Split(folder, "/") {
		if part == "" || part == "." || part == ".." {
			return "", apierror.Validation("Folder is not a valid path")
		}
	}
	return folder, nil
}
