package utils

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"polyglot-blog-be/config"
)

const MaxImageSize = 5 << 20 // 5MB

var (
	ErrImageTooLarge = errors.New("file size exceeds maximum allowed size of 5MB")
	ErrImageEmpty    = errors.New("file is empty")
	ErrImageType     = errors.New("file content does not match an allowed image format")
)

// imageFormat describes how an allowed format is recognised from its first
// bytes.
type imageFormat struct {
	extensions []string
	match      func(head []byte) bool
}

var imageFormats = []imageFormat{
	{
		extensions: []string{".jpg", ".jpeg"},
		match:      func(b []byte) bool { return bytes.HasPrefix(b, []byte{0xFF, 0xD8, 0xFF}) },
	},
	{
		extensions: []string{".png"},
		match:      func(b []byte) bool { return bytes.HasPrefix(b, []byte{0x89, 'P', 'N', 'G'}) },
	},
	{
		extensions: []string{".webp"},
		match: func(b []byte) bool {
			return len(b) >= 12 && string(b[0:4]) == "RIFF" && string(b[8:12]) == "WEBP"
		},
	},
	{
		// ISO BMFF: "ftyp" box at offset 4 followed by a HEIF brand
		extensions: []string{".heic"},
		match: func(b []byte) bool {
			if len(b) < 12 || string(b[4:8]) != "ftyp" {
				return false
			}
			brand := string(b[8:12])
			return brand == "heic" || brand == "mif1"
		},
	},
}

// ImageUploadResult contains the result of an image upload
type ImageUploadResult struct {
	Filename string
	Path     string
	URL      string
	Size     int64
}

// ValidateImage checks the size, extension and magic bytes of an upload
func ValidateImage(r io.ReadSeeker, filename string, size int64) error {
	if size > MaxImageSize {
		return ErrImageTooLarge
	}
	if size == 0 {
		return ErrImageEmpty
	}

	ext := strings.ToLower(filepath.Ext(filename))
	format, ok := formatFor(ext)
	if !ok {
		return fmt.Errorf("file extension %q is not allowed", ext)
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read image: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind image: %w", err)
	}

	if !format.match(head[:n]) {
		return ErrImageType
	}
	return nil
}

func formatFor(ext string) (imageFormat, bool) {
	for _, f := range imageFormats {
		for _, e := range f.extensions {
			if e == ext {
				return f, true
			}
		}
	}
	return imageFormat{}, false
}

// SaveImage validates the upload and stores it under the upload directory
func SaveImage(file multipart.File, header *multipart.FileHeader, subfolder string) (*ImageUploadResult, error) {
	if err := ValidateImage(file, header.Filename, header.Size); err != nil {
		return nil, err
	}

	uploadPath := filepath.Join(config.Get().UploadDir, subfolder)
	if err := os.MkdirAll(uploadPath, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	filename := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
	fullPath := filepath.Join(uploadPath, filename)

	dst, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, file)
	if err != nil {
		os.Remove(fullPath)
		return nil, fmt.Errorf("save image: %w", err)
	}

	return &ImageUploadResult{
		Filename: filename,
		Path:     fullPath,
		URL:      "/uploads/" + subfolder + "/" + filename,
		Size:     written,
	}, nil
}

// DeleteImage deletes an image previously returned by SaveImage. Missing
// files are not an error.
func DeleteImage(imageURL string) error {
	rel, ok := strings.CutPrefix(imageURL, "/uploads/")
	if !ok || rel == "" {
		return nil
	}

	root := filepath.Clean(config.Get().UploadDir)
	path := filepath.Join(root, filepath.Clean("/"+rel))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

// PrependBaseURL turns a stored upload path into an absolute URL. Stale
// absolute URLs pointing at local uploads are rebased on the current
// BASE_URL; external URLs are returned untouched.
func PrependBaseURL(imageURL, baseURL string) string {
	if imageURL == "" || baseURL == "" {
		return imageURL
	}
	if idx := strings.Index(imageURL, "/uploads/"); idx != -1 {
		return strings.TrimSuffix(baseURL, "/") + imageURL[idx:]
	}
	if strings.HasPrefix(imageURL, "http://") || strings.HasPrefix(imageURL, "https://") {
		return imageURL
	}
	return strings.TrimSuffix(baseURL, "/") + imageURL
}
