package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
)

const (
	fieldImages = "images"
	fieldVideo  = "video"

	// multipart parts beyond this are spooled to disk.
	formMemory = 32 << 20
)

var (
	imageExts = map[string]bool{".jpeg": true, ".jpg": true, ".png": true, ".gif": true, ".webp": true}
	videoExts = map[string]bool{".mp4": true, ".mov": true, ".avi": true, ".wmv": true, ".flv": true, ".mkv": true}
)

// propertyRequest is a decoded listing write: the scalar fields plus any
// media files. Close releases the open files and temp storage.
type propertyRequest struct {
	input  domain.PropertyInput
	images []domain.MediaFile
	video  *domain.MediaFile

	files []multipart.File
	form  *multipart.Form
}

func (p *propertyRequest) Close() {
	for _, f := range p.files {
		_ = f.Close()
	}
	if p.form != nil {
		_ = p.form.RemoveAll()
	}
}

// readPropertyRequest accepts multipart/form-data with optional media, or a
// JSON body without media.
func readPropertyRequest(w http.ResponseWriter, r *http.Request, maxFileBytes int64) (*propertyRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		return readMultipart(w, r, maxFileBytes)
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: malformed form body", domain.ErrValidation)
		}
		return &propertyRequest{input: inputFromValues(r.PostForm)}, nil
	default:
		var raw map[string]any
		if err := decodeJSON(w, r, &raw); err != nil {
			return nil, err
		}
		return &propertyRequest{input: inputFromJSON(raw)}, nil
	}
}

func readMultipart(w http.ResponseWriter, r *http.Request, maxFileBytes int64) (*propertyRequest, error) {
	limit := maxFileBytes*(domain.MaxImages+1) + formMemory
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(formMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, fmt.Errorf("%w: request body too large", domain.ErrValidation)
		}
		return nil, fmt.Errorf("%w: malformed multipart body", domain.ErrValidation)
	}

	req := &propertyRequest{form: r.MultipartForm, input: inputFromValues(r.MultipartForm.Value)}
	ok := false
	defer func() {
		if !ok {
			req.Close()
		}
	}()

	for field := range r.MultipartForm.File {
		if field != fieldImages && field != fieldVideo {
			return nil, fmt.Errorf("%w: unexpected file field %q", domain.ErrValidation, field)
		}
	}

	images := r.MultipartForm.File[fieldImages]
	if len(images) > domain.MaxImages {
		return nil, fmt.Errorf("%w: maximum %d images allowed", domain.ErrValidation, domain.MaxImages)
	}
	videos := r.MultipartForm.File[fieldVideo]
	if len(videos) > 1 {
		return nil, fmt.Errorf("%w: only one video allowed", domain.ErrValidation)
	}

	for _, fh := range images {
		mf, err := req.open(fh, domain.MediaImage, maxFileBytes)
		if err != nil {
			return nil, err
		}
		req.images = append(req.images, mf)
	}
	if len(videos) == 1 {
		mf, err := req.open(videos[0], domain.MediaVideo, maxFileBytes)
		if err != nil {
			return nil, err
		}
		req.video = &mf
	}

	ok = true
	return req, nil
}

func (p *propertyRequest) open(fh *multipart.FileHeader, kind domain.MediaKind, maxBytes int64) (domain.MediaFile, error) {
	contentType, err := checkFile(fh, kind, maxBytes)
	if err != nil {
		return domain.MediaFile{}, err
	}
	f, err := fh.Open()
	if err != nil {
		return domain.MediaFile{}, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	p.files = append(p.files, f)
	return domain.MediaFile{Filename: fh.Filename, ContentType: contentType, Size: fh.Size, Reader: f}, nil
}

// checkFile enforces extension, content type and size, and returns the
// content type to store the file with.
func checkFile(fh *multipart.FileHeader, kind domain.MediaKind, maxBytes int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	allowed, prefix, msg := imageExts, "image/", "only image files are allowed (jpeg, jpg, png, gif, webp)"
	if kind == domain.MediaVideo {
		allowed, prefix, msg = videoExts, "video/", "only video files are allowed (mp4, mov, avi, wmv, flv, mkv)"
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mime.TypeByExtension(ext)
	}
	if !allowed[ext] || !strings.HasPrefix(contentType, prefix) {
		return "", fmt.Errorf("%w: %s", domain.ErrValidation, msg)
	}
	if fh.Size > maxBytes {
		return "", fmt.Errorf("%w: %s exceeds the %d MB file limit", domain.ErrValidation, fh.Filename, maxBytes>>20)
	}
	return contentType, nil
}

// inputFromValues maps form values onto PropertyInput. Amenities may repeat
// as "amenities" or "amenities[]".
func inputFromValues(v map[string][]string) domain.PropertyInput {
	first := func(key string) string {
		if vals := v[key]; len(vals) > 0 {
			return vals[0]
		}
		return ""
	}
	in := domain.PropertyInput{
		Title:       first("title"),
		Description: first("description"),
		Price:       first("price"),
		BHK:         first("bhk"),
		Bathrooms:   first("bathrooms"),
		City:        first("city"),
		Address:     first("address"),
		Area:        first("area"),
		Featured:    first("featured"),
		Status:      first("status"),
	}
	amenities := append(append([]string{}, v["amenities"]...), v["amenities[]"]...)
	if len(amenities) > 0 {
		in.Amenities = amenities
	}
	return in
}

// inputFromJSON accepts numbers and booleans where forms would send
// strings.
func inputFromJSON(raw map[string]any) domain.PropertyInput {
	in := domain.PropertyInput{
		Title:       scalar(raw["title"]),
		Description: scalar(raw["description"]),
		Price:       scalar(raw["price"]),
		BHK:         scalar(raw["bhk"]),
		Bathrooms:   scalar(raw["bathrooms"]),
		City:        scalar(raw["city"]),
		Address:     scalar(raw["address"]),
		Area:        scalar(raw["area"]),
		Featured:    scalar(raw["featured"]),
		Status:      scalar(raw["status"]),
	}
	switch a := raw["amenities"].(type) {
	case []any:
		in.Amenities = make([]string, 0, len(a))
		for _, item := range a {
			if s := strings.TrimSpace(scalar(item)); s != "" {
				in.Amenities = append(in.Amenities, s)
			}
		}
	case string:
		in.Amenities = []string{a}
	}
	return in
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	}
	return ""
}
