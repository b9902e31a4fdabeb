package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// UploadRequest is the payload of POST /api/upload. Both object
// references must already exist in the object store; the API never
// receives file bytes.
type UploadRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Tags        string `json:"tags"` // comma-separated
	Author      string `json:"author"`
	ImageURL    string `json:"image_url"`
	FilePath    string `json:"file_path"`
}

func (r UploadRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ImageURL,
			validation.Required.Error("file and image info are required"),
		),
		validation.Field(&r.FilePath,
			validation.Required.Error("file and image info are required"),
		),
		validation.Field(&r.Title, validation.Length(0, 255)),
		validation.Field(&r.Category,
			validation.When(r.Category != "",
				validation.By(categoryRule),
			),
		),
	)
}

// UpdateRequest is the partial-update payload of PUT
// /api/resources/:id. Absent fields keep their stored values, so the
// object references survive metadata edits.
type UpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Tags        *string `json:"tags"` // comma-separated
	Author      *string `json:"author"`
	ImageURL    *string `json:"image_url"`
	FileURL     *string `json:"file_url"`
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil, validation.Length(0, 255)),
		),
		validation.Field(&r.Category,
			validation.When(r.Category != nil && *r.Category != "",
				validation.By(categoryRule),
			),
		),
	)
}

// categoryRule accepts both string and *string values since By rules
// receive pointer fields unindirected.
func categoryRule(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		p, ok := value.(*string)
		if !ok || p == nil {
			return validation.NewError("validation_category", "unknown category")
		}
		s = *p
	}
	if !IsValidCategory(s) {
		return validation.NewError("validation_category", "unknown category")
	}
	return nil
}

// SignUploadRequest asks for presigned PUT URLs so the client can push
// the asset and its cover image straight to the bucket before calling
// /api/upload.
type SignUploadRequest struct {
	FileName  string `json:"file_name"`
	ImageName string `json:"image_name"`
}

func (r SignUploadRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FileName, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.ImageName, validation.Required, validation.Length(1, 255)),
	)
}

// SignUploadResponse carries the presigned PUT URLs plus the public
// URLs the client should echo back in the upload payload.
type SignUploadResponse struct {
	FileKey        string `json:"file_key"`
	FileUploadURL  string `json:"file_upload_url"`
	FileURL        string `json:"file_url"`
	ImageKey       string `json:"image_key"`
	ImageUploadURL string `json:"image_upload_url"`
	ImageURL       string `json:"image_url"`
}

// DownloadGrant is the response of the download-issuing endpoint: a
// short-lived signed URL and the post-increment counter.
type DownloadGrant struct {
	URL       string `json:"url"`
	Downloads int64  `json:"downloads"`
}
