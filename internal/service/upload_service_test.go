package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

type storageStub struct {
	uploaded bytes.Buffer
}

func (s *storageStub) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	s.uploaded.Reset()
	_, err := s.uploaded.ReadFrom(reader)
	if err != nil {
		return "", err
	}
	return "https://cdn.example.com/" + name, nil
}

type attachmentRepoStub struct {
	record models.Attachment
}

func (u *attachmentRepoStub) Create(ctx context.Context, attachment *models.Attachment) error {
	u.record = *attachment
	return nil
}

func (u *attachmentRepoStub) ListBySchool(ctx context.Context, schoolID uint) ([]models.Attachment, error) {
	return []models.Attachment{u.record}, nil
}

func TestUploadServiceRejectsSize(t *testing.T) {
	storage := &storageStub{}
	repo := &attachmentRepoStub{}
	svc := NewUploadService(storage, repo, 1, testLogger())

	file := buildFileHeader(t, "file.pdf", bytes.Repeat([]byte("a"), 2*1024*1024))

	_, err := svc.Upload(context.Background(), 1, file, nil)
	require.ErrorIs(t, err, ErrUploadTooLarge)
}

func TestUploadServiceRejectsDisallowedType(t *testing.T) {
	storage := &storageStub{}
	repo := &attachmentRepoStub{}
	svc := NewUploadService(storage, repo, 5, testLogger())

	file := buildFileHeader(t, "file.txt", []byte("plain text"))
	_, err := svc.Upload(context.Background(), 1, file, nil)
	require.ErrorIs(t, err, ErrUploadTypeNotAllowed)
}

func TestUploadServiceRejectsGif(t *testing.T) {
	storage := &storageStub{}
	repo := &attachmentRepoStub{}
	svc := NewUploadService(storage, repo, 5, testLogger())

	gifHeader := []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00")
	file := buildFileHeader(t, "anim.gif", gifHeader)
	_, err := svc.Upload(context.Background(), 1, file, nil)
	require.ErrorIs(t, err, ErrUploadTypeNotAllowed)
}

func TestUploadServiceStoresPng(t *testing.T) {
	storage := &storageStub{}
	repo := &attachmentRepoStub{}
	svc := NewUploadService(storage, repo, 5, testLogger())

	pngHeader := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	file := buildFileHeader(t, "photo.png", pngHeader)

	resp, err := svc.Upload(context.Background(), 42, file, nil)
	require.NoError(t, err)
	require.Contains(t, resp.URL, "photo")
	require.Equal(t, "image/png", repo.record.MimeType)
	require.Equal(t, uint(42), repo.record.SchoolID)
	require.NotEmpty(t, repo.record.Checksum)
}

func TestUploadServiceStoresPdf(t *testing.T) {
	storage := &storageStub{}
	repo := &attachmentRepoStub{}
	svc := NewUploadService(storage, repo, 5, testLogger())

	pdfHeader := []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")
	file := buildFileHeader(t, "Excuse Letter.PDF", pdfHeader)

	resp, err := svc.Upload(context.Background(), 1, file, nil)
	require.NoError(t, err)
	require.Equal(t, "application/pdf", resp.MimeType)
	require.Equal(t, "excuse-letter.pdf", resp.FileName)
}

func buildFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {"form-data; name=\"file\"; filename=\"" + filename + "\""},
		"Content-Type":        {"application/octet-stream"},
	})
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content) + 1024))
	require.NoError(t, err)
	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}
