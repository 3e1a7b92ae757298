package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// MaxBackupSize bounds a restore upload. A year of records is well under 1MB.
const MaxBackupSize = 5 << 20

var (
	ErrBackupTooLarge = fmt.Errorf("backup too large: maximum size is %d MB", MaxBackupSize>>20)
	ErrBackupType     = errors.New("backup must be a .json file exported from settings")
)

// ValidateBackup checks an uploaded backup before it is decoded: size, the
// .json extension, and content that sniffs as text starting with a JSON object.
func ValidateBackup(header *multipart.FileHeader) error {
	if header.Size > MaxBackupSize {
		return ErrBackupTooLarge
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".json") {
		return ErrBackupType
	}

	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("failed to open backup: %w", err)
	}
	defer func() { _ = file.Close() }()

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read backup: %w", err)
	}
	head = head[:n]

	// Sniffing reports JSON as plain text.
	if !strings.HasPrefix(http.DetectContentType(head), "text/plain") {
		return ErrBackupType
	}
	trimmed := bytes.TrimLeft(head, " \t\r\n\ufeff")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ErrBackupType
	}
	return nil
}
