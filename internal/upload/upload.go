// Package upload stores multipart uploads on local disk.
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"photoshare/internal/models"

	"github.com/chai2010/webp"
	_ "golang.org/x/image/bmp" // Register BMP decoder
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	ThumbnailMaxSize = 256
	WebPQuality      = 70
	thumbnailSuffix  = ".thumb.webp"
)

// ErrNoFile is returned when the request carried no file.
var ErrNoFile = models.NewValidationError("No file uploaded")

// SavedFile describes a stored upload using the field names browser clients expect.
type SavedFile struct {
	FieldName    string `json:"fieldname"`
	OriginalName string `json:"originalname"`
	MimeType     string `json:"mimetype"`
	FileName     string `json:"filename"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
}

// Store writes uploads into one directory, naming files by upload time.
type Store struct {
	dir      string
	maxBytes int64
	now      func() time.Time
}

// NewStore creates dir when missing.
func NewStore(dir string, maxMB int) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Store{dir: dir, maxBytes: int64(maxMB) * 1024 * 1024, now: time.Now}, nil
}

// Dir is where files are written.
func (s *Store) Dir() string {
	return s.dir
}

// Save stores the file as is under "<unix-millis><ext>".
func (s *Store) Save(field string, fh *multipart.FileHeader) (*SavedFile, error) {
	content, err := s.read(fh)
	if err != nil {
		return nil, err
	}
	return s.write(field, fh, content)
}

// SaveImage stores the file after checking it decodes as an image and writes
// a WebP thumbnail beside it.
func (s *Store) SaveImage(field string, fh *multipart.FileHeader) (*SavedFile, error) {
	content, err := s.read(fh)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}

	saved, err := s.write(field, fh, content)
	if err != nil {
		return nil, err
	}

	thumb, err := encodeThumbnail(img)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, ThumbnailName(saved.FileName)), thumb, 0o644); err != nil {
		return nil, models.NewInternalError(err)
	}
	return saved, nil
}

// ThumbnailName returns the thumbnail file name for a stored file.
func ThumbnailName(fileName string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName)) + thumbnailSuffix
}

func (s *Store) read(fh *multipart.FileHeader) ([]byte, error) {
	if fh == nil {
		return nil, ErrNoFile
	}
	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxBytes/(1024*1024)))
	}

	f, err := fh.Open()
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(content) == 0 {
		return nil, ErrNoFile
	}
	return content, nil
}

// write picks the first free millisecond-based name so concurrent uploads
// never overwrite each other.
func (s *Store) write(field string, fh *multipart.FileHeader, content []byte) (*SavedFile, error) {
	ext := filepath.Ext(fh.Filename)
	stamp := s.now().UnixMilli()

	for attempt := 0; attempt < 100; attempt++ {
		name := fmt.Sprintf("%d%s", stamp+int64(attempt), ext)
		path := filepath.Join(s.dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return nil, models.NewInternalError(err)
		}

		if _, err := f.Write(content); err != nil {
			_ = f.Close()
			_ = os.Remove(path)
			return nil, models.NewInternalError(err)
		}
		if err := f.Close(); err != nil {
			return nil, models.NewInternalError(err)
		}

		return &SavedFile{
			FieldName:    field,
			OriginalName: fh.Filename,
			MimeType:     fh.Header.Get("Content-Type"),
			FileName:     name,
			Path:         path,
			Size:         int64(len(content)),
		}, nil
	}
	return nil, models.NewInternalError(errors.New("no free upload file name"))
}

func encodeThumbnail(src image.Image) ([]byte, error) {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, errors.New("empty image")
	}

	newW, newH := w, h
	if w > ThumbnailMaxSize || h > ThumbnailMaxSize {
		if w >= h {
			newW = ThumbnailMaxSize
			newH = max(h*ThumbnailMaxSize/w, 1)
		} else {
			newH = ThumbnailMaxSize
			newW = max(w*ThumbnailMaxSize/h, 1)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)

	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, dst, &webp.Options{Quality: WebPQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
