package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexload-backend/internal/domains/resource/model"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"Empty", "", []string{}},
		{"Single", "ui", []string{"ui"}},
		{"Trims whitespace", "ui, dashboard ,admin", []string{"ui", "dashboard", "admin"}},
		{"Drops empty entries", "ui,,admin,", []string{"ui", "admin"}},
		{"Only separators", ", ,", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := model.ParseTags(tc.raw)
			assert.NotNil(t, got)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIsValidCategory(t *testing.T) {
	for _, c := range model.Categories {
		assert.True(t, model.IsValidCategory(c), c)
	}
	assert.False(t, model.IsValidCategory("widgets"))
	assert.False(t, model.IsValidCategory(""))
}

func TestUploadRequestValidate(t *testing.T) {
	valid := model.UploadRequest{
		Title:    "Dashboard Kit",
		Category: "templates",
		ImageURL: "http://host/bucket/covers/x/c.png",
		FilePath: "http://host/bucket/files/x/f.zip",
	}

	t.Run("Valid", func(t *testing.T) {
		require.NoError(t, valid.Validate())
	})

	t.Run("Missing image reference", func(t *testing.T) {
		req := valid
		req.ImageURL = ""
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file and image info are required")
	})

	t.Run("Missing file reference", func(t *testing.T) {
		req := valid
		req.FilePath = ""
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file and image info are required")
	})

	t.Run("Unknown category", func(t *testing.T) {
		req := valid
		req.Category = "widgets"
		require.Error(t, req.Validate())
	})

	t.Run("Category optional", func(t *testing.T) {
		req := valid
		req.Category = ""
		require.NoError(t, req.Validate())
	})
}

func TestUpdateRequestValidate(t *testing.T) {
	t.Run("Empty request is valid", func(t *testing.T) {
		require.NoError(t, model.UpdateRequest{}.Validate())
	})

	t.Run("Unknown category", func(t *testing.T) {
		category := "widgets"
		require.Error(t, model.UpdateRequest{Category: &category}.Validate())
	})

	t.Run("Known category", func(t *testing.T) {
		category := "icons"
		require.NoError(t, model.UpdateRequest{Category: &category}.Validate())
	})
}

func TestResourceErrorUnwrap(t *testing.T) {
	err := model.NewNotFoundError()
	assert.ErrorIs(t, err, model.ErrResourceNotFound)
	assert.Equal(t, model.ErrCodeNotFound, err.Code)

	verr := model.NewValidationError("bad input")
	assert.Equal(t, model.ErrCodeValidation, verr.Code)
	assert.Equal(t, "bad input", verr.Error())
}
