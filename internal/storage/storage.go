// Package storage keeps uploaded media on the local filesystem and serves
// them under a public URL prefix.
package storage

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrInvalidFileName = errors.New("invalid file name")
	ErrFileNotFound    = errors.New("file not found")
)

const (
	MaxImageSize int64 = 5 << 20
	MaxMediaSize int64 = 10 << 20
	MaxFiles           = 10
)

var imageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp", "image/svg+xml"}

// Rules limits what a single upload may contain.
type Rules struct {
	MaxSize      int64
	AllowedTypes []string
}

var (
	// ImageRules apply to images attached to sliders, sections and posts.
	ImageRules = Rules{MaxSize: MaxImageSize, AllowedTypes: imageTypes}
	// MediaRules apply to the media library upload endpoints.
	MediaRules = Rules{MaxSize: MaxMediaSize, AllowedTypes: append(append([]string{}, imageTypes...), "application/pdf", "video/mp4")}
)

var listablePattern = regexp.MustCompile(`(?i)\.(jpe?g|png|gif|webp|svg|pdf|mp4)$`)

// StoredFile describes a file written to the upload directory.
type StoredFile struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimeType"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
}

// LocalStorage writes uploads into a single flat directory.
type LocalStorage struct {
	dir     string
	urlPath string
	now     func() time.Time
}

// NewLocalStorage returns a storage rooted at dir; the directory is created on first write.
func NewLocalStorage(dir, urlPath string) *LocalStorage {
	urlPath = "/" + strings.Trim(strings.TrimSpace(urlPath), "/")
	if urlPath == "/" {
		urlPath = "/uploads"
	}
	return &LocalStorage{dir: dir, urlPath: urlPath, now: time.Now}
}

func (s *LocalStorage) Dir() string {
	return s.dir
}

func (s *LocalStorage) URLPath() string {
	return s.urlPath
}

// URL returns the public URL of a stored filename.
func (s *LocalStorage) URL(filename string) string {
	return path.Join(s.urlPath, filename)
}

// Save sniffs the content type, enforces rules and writes the file under a random name.
func (s *LocalStorage) Save(file *multipart.FileHeader, rules Rules) (*StoredFile, error) {
	if file == nil {
		return nil, ErrFileNotFound
	}
	if rules.MaxSize > 0 && file.Size > rules.MaxSize {
		return nil, ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return nil, fmt.Errorf("detect type: %w", err)
	}
	if !mimetype.EqualsAny(mtype.String(), rules.AllowedTypes...) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFileType, mtype.String())
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	filename := fmt.Sprintf("%s-%s%s", s.now().Format("20060102"), uuid.NewString(), mtype.Extension())
	fullPath := filepath.Join(s.dir, filename)

	dst, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}

	limit := rules.MaxSize
	if limit <= 0 {
		limit = MaxMediaSize
	}
	written, copyErr := io.Copy(dst, io.LimitReader(src, limit+1))
	closeErr := dst.Close()
	if copyErr != nil || closeErr != nil || written > limit {
		os.Remove(fullPath)
		if written > limit {
			return nil, ErrFileTooLarge
		}
		if copyErr != nil {
			return nil, fmt.Errorf("write file: %w", copyErr)
		}
		return nil, fmt.Errorf("close file: %w", closeErr)
	}

	stored := &StoredFile{
		URL:          s.URL(filename),
		Filename:     filename,
		OriginalName: filepath.Base(file.Filename),
		Size:         written,
		MimeType:     mimeTypeWithoutParams(mtype.String()),
	}
	if strings.HasPrefix(stored.MimeType, "image/") && stored.MimeType != "image/svg+xml" {
		stored.Width, stored.Height = imageDimensions(fullPath)
	}
	return stored, nil
}

// List returns listable filenames sorted by name; a missing directory yields an empty list.
func (s *LocalStorage) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !listablePattern.MatchString(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a stored file by its bare filename.
func (s *LocalStorage) Delete(filename string) error {
	if !validFilename(filename) {
		return ErrInvalidFileName
	}
	if err := os.Remove(filepath.Join(s.dir, filename)); err != nil {
		if os.IsNotExist(err) {
			return ErrFileNotFound
		}
		return err
	}
	return nil
}

func validFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return false
	}
	return filepath.Base(name) == name
}

func mimeTypeWithoutParams(value string) string {
	if idx := strings.Index(value, ";"); idx >= 0 {
		return strings.TrimSpace(value[:idx])
	}
	return value
}

func imageDimensions(fullPath string) (int, int) {
	f, err := os.Open(fullPath)
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
