package validation

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"workspace-service/internal/domain"
)

const (
	msgLength    = "the file name must be between 5 and 255 characters long"
	msgCharset   = "the file name contains characters that are not alphanumeric, space, period, hyphen or underscore"
	msgExtension = "the file name does not have an allowed extension"
	msgFileType  = "the file extension is not valid for the specified MIME type"
	msgNameType  = "the file name and file type must be provided together"
)

var fileNameChars = regexp.MustCompile(`^[\w\s.-]+$`)

var allowedExtensions = map[string]struct{}{
	"bmp":  {},
	"doc":  {},
	"docx": {},
	"eps":  {},
	"gif":  {},
	"jpeg": {},
	"jpg":  {},
	"odp":  {},
	"ods":  {},
	"odt":  {},
	"pdf":  {},
	"png":  {},
	"ppt":  {},
	"pptx": {},
	"svg":  {},
	"txt":  {},
	"webp": {},
	"xls":  {},
	"xslx": {},
}

// mimeExtensions maps a declared MIME type to the extensions conventionally
// registered for it. The table is fixed; it is not a plugin point.
var mimeExtensions = map[string][]string{
	"application/msword": {"doc", "dot"},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {"docx"},
	"application/pdf":                {"pdf"},
	"application/postscript":         {"ai", "eps", "ps"},
	"application/vnd.ms-powerpoint":  {"ppt", "pps", "pot"},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {"pptx"},
	"application/vnd.ms-excel": {"xls", "xlm", "xla", "xlc", "xlt", "xlw"},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {"xlsx"},
	"application/vnd.oasis.opendocument.presentation":                   {"odp"},
	"application/vnd.oasis.opendocument.spreadsheet":                    {"ods"},
	"application/vnd.oasis.opendocument.text":                           {"odt"},
	"image/bmp":     {"bmp"},
	"image/gif":     {"gif"},
	"image/jpeg":    {"jpeg", "jpg", "jpe"},
	"image/png":     {"png"},
	"image/svg+xml": {"svg", "svgz"},
	"image/webp":    {"webp"},
	"text/plain":    {"txt", "text", "log"},
}

// Errors accumulates every failed rule; it is never partially applied.
type Errors []string

func (e Errors) Error() string {
	return strings.Join(e, ", ")
}

// ValidateNewFile checks a proposed file name against a declared MIME type.
// All name rules are evaluated independently so a caller sees every violation
// at once; the MIME cross-check runs only once the name itself is acceptable.
func ValidateNewFile(input *domain.NewFile) error {
	return validateNameAndType(input.FileName, input.FileType)
}

// ValidateNewFileVersion allows name and type to be omitted, but only as a
// pair: changing one without the other is rejected before extension checks.
func ValidateNewFileVersion(input *domain.NewFileVersion) error {
	switch {
	case input.FileName == nil && input.FileType == nil:
		return nil
	case input.FileName == nil || input.FileType == nil:
		return Errors{msgNameType}
	}
	return validateNameAndType(*input.FileName, *input.FileType)
}

func validateNameAndType(fileName, fileType string) error {
	var errs Errors

	if n := utf8.RuneCountInString(fileName); n < 5 || n > 255 {
		errs = append(errs, msgLength)
	}
	if !fileNameChars.MatchString(fileName) {
		errs = append(errs, msgCharset)
	}

	ext, ok := extension(fileName)
	if !ok {
		errs = append(errs, msgExtension)
	}

	if len(errs) > 0 {
		return errs
	}

	if !extensionMatchesType(ext, fileType) {
		return Errors{msgFileType}
	}
	return nil
}

func extension(fileName string) (string, bool) {
	ext := strings.TrimPrefix(filepath.Ext(fileName), ".")
	if ext == "" {
		return "", false
	}
	_, ok := allowedExtensions[ext]
	return ext, ok
}

func extensionMatchesType(ext, fileType string) bool {
	for _, possible := range mimeExtensions[fileType] {
		if ext == possible {
			return true
		}
	}
	return false
}
