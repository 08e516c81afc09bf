package convert

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/h2non/filetype"
)

// TestIsArchiveFile tests archive file detection
func TestIsArchiveFile(t *testing.T) {
	tmpDir := t.TempDir()

	// Test non-zip extension
	t.Run("non-zip extension", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "test.txt")
		if err := os.WriteFile(filePath, []byte("not a zip"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
		got, err := isArchiveFile(filePath)
		if err != nil {
			t.Errorf("isArchiveFile() error = %v", err)
		}
		if got != false {
			t.Errorf("isArchiveFile() = %v, want false", got)
		}
	})

	// Test zip extension but invalid content
	t.Run("zip extension but invalid content", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "test.zip")
		if err := os.WriteFile(filePath, []byte("not a real zip file"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
		got, err := isArchiveFile(filePath)
		if err != nil {
			t.Errorf("isArchiveFile() error = %v", err)
		}
		if got != false {
			t.Errorf("isArchiveFile() = %v, want false", got)
		}
	})

	// Test valid zip file - using actual zip creation
	t.Run("valid zip file via zip package", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "test2.zip")
		zipFile, err := os.Create(filePath)
		if err != nil {
			t.Fatalf("Failed to create zip file: %v", err)
		}
		w := zip.NewWriter(zipFile)
		f, err := w.Create("test.txt")
		if err != nil {
			t.Fatalf("Failed to create file in zip: %v", err)
		}
		content := make([]byte, 300)
		f.Write(content)
		w.Close()
		zipFile.Close()

		got, err := isArchiveFile(filePath)
		if err != nil {
			t.Errorf("isArchiveFile() error = %v", err)
		}
		if !got {
			t.Errorf("isArchiveFile() = %v, want true", got)
		}
	})
}

// TestIsArchiveFile_NonExistent tests with non-existent file
func TestIsArchiveFile_NonExistent(t *testing.T) {
	_, err := isArchiveFile("/nonexistent/file.zip")
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

// TestDetectUTF tests UTF encoding detection
func TestDetectUTF(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want srcEncoding
	}{
		{
			name: "UTF-8 BOM",
			buf:  []byte{0xEF, 0xBB, 0xBF, 0x00},
			want: encUTF8,
		},
		{
			name: "UTF-16 Big Endian BOM",
			buf:  []byte{0xFE, 0xFF, 0x00, 0x00},
			want: encUTF16BigEndian,
		},
		{
			name: "UTF-16 Little Endian BOM",
			buf:  []byte{0xFF, 0xFE, 0x01, 0x00}, // Different from UTF-32LE
			want: encUTF16LittleEndian,
		},
		{
			name: "UTF-32 Big Endian BOM",
			buf:  []byte{0x00, 0x00, 0xFE, 0xFF},
			want: encUTF32BigEndian,
		},
		{
			name: "UTF-32 Little Endian BOM",
			buf:  []byte{0xFF, 0xFE, 0x00, 0x00},
			want: encUTF32LittleEndian,
		},
		{
			name: "No BOM",
			buf:  []byte{0x00, 0x01, 0x02, 0x03},
			want: encUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectUTF(tt.buf)
			if got != tt.want {
				t.Errorf("detectUTF() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestBOMDetectionFunctions tests individual BOM detection functions
func TestBOMDetectionFunctions(t *testing.T) {
	t.Run("isUTF8BOM3", func(t *testing.T) {
		if !isUTF8BOM3([]byte{0xEF, 0xBB, 0xBF}) {
			t.Error("Expected true for UTF-8 BOM")
		}
		if isUTF8BOM3([]byte{0x00, 0x00, 0x00}) {
			t.Error("Expected false for non-BOM")
		}
	})

	t.Run("isUTF16BigEndianBOM2", func(t *testing.T) {
		if !isUTF16BigEndianBOM2([]byte{0xFE, 0xFF}) {
			t.Error("Expected true for UTF-16 BE BOM")
		}
		if isUTF16BigEndianBOM2([]byte{0xFF, 0xFE}) {
			t.Error("Expected false for UTF-16 LE BOM")
		}
	})

	t.Run("isUTF16LittleEndianBOM2", func(t *testing.T) {
		if !isUTF16LittleEndianBOM2([]byte{0xFF, 0xFE}) {
			t.Error("Expected true for UTF-16 LE BOM")
		}
		if isUTF16LittleEndianBOM2([]byte{0xFE, 0xFF}) {
			t.Error("Expected false for UTF-16 BE BOM")
		}
	})

	t.Run("isUTF32BigEndianBOM4", func(t *testing.T) {
		if !isUTF32BigEndianBOM4([]byte{0x00, 0x00, 0xFE, 0xFF}) {
			t.Error("Expected true for UTF-32 BE BOM")
		}
		if isUTF32BigEndianBOM4([]byte{0xFF, 0xFE, 0x00, 0x00}) {
			t.Error("Expected false for UTF-32 LE BOM")
		}
	})

	t.Run("isUTF32LittleEndianBOM4", func(t *testing.T) {
		if !isUTF32LittleEndianBOM4([]byte{0xFF, 0xFE, 0x00, 0x00}) {
			t.Error("Expected true for UTF-32 LE BOM")
		}
		if isUTF32LittleEndianBOM4([]byte{0x00, 0x00, 0xFE, 0xFF}) {
			t.Error("Expected false for UTF-32 BE BOM")
		}
	})
}

// TestIsJSONHead tests JSON content matcher
func TestIsJSONHead(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want bool
	}{
		{"object", []byte(`{"blocks":[]}`), true},
		{"array", []byte(`[1,2]`), true},
		{"leading whitespace", []byte(" \r\n\t{}"), true},
		{"UTF-8 BOM", append([]byte{0xEF, 0xBB, 0xBF}, '{'), true},
		{"UTF-16 LE", []byte{0xFF, 0xFE, '{', 0x00, '}', 0x00}, true},
		{"UTF-16 BE", []byte{0xFE, 0xFF, 0x00, '[', 0x00, ']'}, true},
		{"UTF-32 LE", []byte{0xFF, 0xFE, 0x00, 0x00, '{', 0x00, 0x00, 0x00}, true},
		{"bare string", []byte(`"text"`), false},
		{"xml", []byte(`<?xml version="1.0"?>`), false},
		{"only whitespace", []byte("   "), false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isJSONHead(tt.buf); got != tt.want {
				t.Errorf("isJSONHead() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestIsDocumentFile tests JSON document file detection
func TestIsDocumentFile(t *testing.T) {
	tmpDir := t.TempDir()

	docContent := []byte(`{"title":"Test","blocks":[{"type":"paragraph","content":"Content"}]}`)

	tests := []struct {
		name     string
		filename string
		content  []byte
		wantDoc  bool
		wantEnc  srcEncoding
		wantErr  bool
	}{
		{
			name:     "valid JSON file",
			filename: "test.json",
			content:  docContent,
			wantDoc:  true,
			wantEnc:  encUnknown,
		},
		{
			name:     "JSON with UTF-8 BOM",
			filename: "test-utf8.json",
			content:  append([]byte{0xEF, 0xBB, 0xBF}, docContent...),
			wantDoc:  true,
			wantEnc:  encUTF8,
		},
		{
			name:     "non-JSON extension",
			filename: "test.txt",
			content:  docContent,
			wantDoc:  false,
			wantEnc:  encUnknown,
		},
		{
			name:     "JSON extension but invalid content",
			filename: "test.json",
			content:  []byte("not a JSON document"),
			wantDoc:  false,
			wantEnc:  encUnknown,
		},
		{
			name:     "uppercase extension",
			filename: "test.JSON",
			content:  docContent,
			wantDoc:  true,
			wantEnc:  encUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filePath := filepath.Join(tmpDir, tt.filename)
			if err := os.WriteFile(filePath, tt.content, 0644); err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}

			gotDoc, gotEnc, err := isDocumentFile(filePath)
			if (err != nil) != tt.wantErr {
				t.Errorf("isDocumentFile() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if gotDoc != tt.wantDoc {
				t.Errorf("isDocumentFile() document = %v, want %v", gotDoc, tt.wantDoc)
			}
			if gotEnc != tt.wantEnc {
				t.Errorf("isDocumentFile() encoding = %v, want %v", gotEnc, tt.wantEnc)
			}
		})
	}
}

// TestIsDocumentFile_NonExistent tests with non-existent file
func TestIsDocumentFile_NonExistent(t *testing.T) {
	_, _, err := isDocumentFile("/nonexistent/file.json")
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

// TestIsDocumentInArchive tests JSON detection in archive
func TestIsDocumentInArchive(t *testing.T) {
	tmpDir := t.TempDir()
	zipPath := filepath.Join(tmpDir, "test.zip")

	docContent := []byte(`{"blocks":[{"type":"heading","level":1,"content":"Title"}]}`)

	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}

	w := zip.NewWriter(zipFile)
	entries := []struct {
		name string
		data []byte
	}{
		{"test.json", docContent},
		{"test.txt", []byte("not a document")},
		{"test-bom.json", append([]byte{0xEF, 0xBB, 0xBF}, docContent...)},
		{"broken.json", []byte("plain text")},
	}
	for _, e := range entries {
		f, err := w.CreateHeader(&zip.FileHeader{Name: e.name, Method: zip.Deflate})
		if err != nil {
			t.Fatalf("Failed to create file in zip: %v", err)
		}
		if _, err := f.Write(e.data); err != nil {
			t.Fatalf("Failed to write to zip: %v", err)
		}
	}
	w.Close()
	zipFile.Close()

	r, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("Failed to open zip: %v", err)
	}
	defer r.Close()

	tests := []struct {
		name    string
		fileIdx int
		wantDoc bool
		wantEnc srcEncoding
	}{
		{"JSON file in archive", 0, true, encUnknown},
		{"non-JSON file in archive", 1, false, encUnknown},
		{"JSON with BOM in archive", 2, true, encUTF8},
		{"JSON extension with text in archive", 3, false, encUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotDoc, gotEnc, err := isDocumentInArchive(r.File[tt.fileIdx])
			if err != nil {
				t.Errorf("isDocumentInArchive() error = %v", err)
				return
			}
			if gotDoc != tt.wantDoc {
				t.Errorf("isDocumentInArchive() document = %v, want %v", gotDoc, tt.wantDoc)
			}
			if gotEnc != tt.wantEnc {
				t.Errorf("isDocumentInArchive() encoding = %v, want %v", gotEnc, tt.wantEnc)
			}
		})
	}
}

// TestSelectReader tests reader selection for different encodings
func TestSelectReader(t *testing.T) {
	testData := []byte("test data")
	r := bytes.NewReader(testData)

	tests := []srcEncoding{
		encUnknown,
		encUTF8,
		encUTF16BigEndian,
		encUTF16LittleEndian,
		encUTF32BigEndian,
		encUTF32LittleEndian,
	}

	for i, enc := range tests {
		t.Run(string(rune('0'+i)), func(t *testing.T) {
			result := selectReader(r, enc)
			if result == nil {
				t.Error("selectReader() returned nil")
			}
		})
	}
}

// TestSelectReader_Panic tests that invalid encoding causes panic
func TestSelectReader_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for invalid encoding, but didn't panic")
		}
	}()

	r := bytes.NewReader([]byte("test"))
	// Use an invalid encoding value
	selectReader(r, srcEncoding(999))
}

// TestSrcEncoding tests srcEncoding constants
func TestSrcEncoding(t *testing.T) {
	// Verify encoding constants are distinct
	encodings := map[srcEncoding]string{
		encUnknown:           "unknown",
		encUTF8:              "utf8",
		encUTF16BigEndian:    "utf16be",
		encUTF16LittleEndian: "utf16le",
		encUTF32BigEndian:    "utf32be",
		encUTF32LittleEndian: "utf32le",
	}

	seen := make(map[srcEncoding]bool)
	for enc := range encodings {
		if seen[enc] {
			t.Errorf("Duplicate encoding value: %v", enc)
		}
		seen[enc] = true
	}

	if len(seen) != 6 {
		t.Errorf("Expected 6 unique encodings, got %d", len(seen))
	}
}

// TestSelectReader_Decodes tests that wide encodings come out as UTF-8
// without BOM
func TestSelectReader_Decodes(t *testing.T) {
	tests := []struct {
		name string
		enc  srcEncoding
		data []byte
	}{
		{"UTF-8 BOM", encUTF8, []byte{0xEF, 0xBB, 0xBF, '{', '}'}},
		{"UTF-16 LE", encUTF16LittleEndian, []byte{0xFF, 0xFE, '{', 0x00, '}', 0x00}},
		{"UTF-16 BE", encUTF16BigEndian, []byte{0xFE, 0xFF, 0x00, '{', 0x00, '}'}},
		{"UTF-32 LE", encUTF32LittleEndian, []byte{0xFF, 0xFE, 0x00, 0x00, '{', 0, 0, 0, '}', 0, 0, 0}},
		{"UTF-32 BE", encUTF32BigEndian, []byte{0x00, 0x00, 0xFE, 0xFF, 0, 0, 0, '{', 0, 0, 0, '}'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(selectReader(bytes.NewReader(tt.data), tt.enc))
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if string(got) != "{}" {
				t.Errorf("selectReader() produced %q, want %q", got, "{}")
			}
		})
	}
}

// TestFiletypeMatcher tests that JSON filetype matcher is registered
func TestFiletypeMatcher(t *testing.T) {
	if !filetype.Is([]byte(`{"a":1}`), "json") {
		t.Error("JSON content was not recognized by registered matcher")
	}
	if filetype.Is([]byte(`<?xml version="1.0"?>`), "json") {
		t.Error("XML content was recognized as JSON")
	}
}
