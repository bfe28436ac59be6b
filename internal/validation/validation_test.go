package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workspace-service/internal/domain"
)

func TestValidateFileName(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		fileType string
		wantErr  string
	}{
		{"good extension doc", "filename.doc", "application/msword", ""},
		{"good extension docx", "filename.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", ""},
		{"good mime type", "image.png", "image/png", ""},
		{"bad mime type", "image.png", "image/gif", "the file extension is not valid for the specified MIME type"},
		{"bad extension zip", "filename.zip", "", "the file name does not have an allowed extension"},
		{"good extension has dot", "filename.txt", "text/plain", ""},
		{"bad extension no dot", "filenametxt", "", "the file name does not have an allowed extension"},
		{"too short", ".doc", "", "the file name must be between 5 and 255 characters long"},
		{"too long", strings.Repeat("a", 252) + ".doc", "application/msword", "the file name must be between 5 and 255 characters long"},
		{"bad char percent", "%.doc", "", "the file name contains characters that are not alphanumeric, space, period, hyphen or underscore"},
		{"multiple errors", "%", "", "the file name must be between 5 and 255 characters long, the file name contains characters that are not alphanumeric, space, period, hyphen or underscore, the file name does not have an allowed extension"},
		{"bad char emoji", "\U0001F980.doc", "", "the file name contains characters that are not alphanumeric, space, period, hyphen or underscore"},
		{"null char", "xx\x00.doc", "", "the file name contains characters that are not alphanumeric, space, period, hyphen or underscore"},
		{"space and hyphen ok", "my file-2.pdf", "application/pdf", ""},
	}

	for _, tt := range tests {
		t.Run("new file "+tt.name, func(t *testing.T) {
			err := ValidateNewFile(&domain.NewFile{
				FileName: tt.fileName,
				FileType: tt.fileType,
			})
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
			}
		})

		t.Run("new version "+tt.name, func(t *testing.T) {
			fileName, fileType := tt.fileName, tt.fileType
			err := ValidateNewFileVersion(&domain.NewFileVersion{
				FileName: &fileName,
				FileType: &fileType,
			})
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
			}
		})
	}
}

func TestValidateNewFileVersionNameTypePair(t *testing.T) {
	fileName := "filename.doc"
	fileType := "application/msword"

	assert.NoError(t, ValidateNewFileVersion(&domain.NewFileVersion{}))

	err := ValidateNewFileVersion(&domain.NewFileVersion{FileName: &fileName})
	require.Error(t, err)
	assert.Equal(t, "the file name and file type must be provided together", err.Error())

	err = ValidateNewFileVersion(&domain.NewFileVersion{FileType: &fileType})
	require.Error(t, err)
	assert.Equal(t, "the file name and file type must be provided together", err.Error())

	assert.NoError(t, ValidateNewFileVersion(&domain.NewFileVersion{
		FileName: &fileName,
		FileType: &fileType,
	}))
}

func TestValidationErrorsAggregate(t *testing.T) {
	err := ValidateNewFile(&domain.NewFile{FileName: "%", FileType: ""})
	require.Error(t, err)

	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 3)
}
