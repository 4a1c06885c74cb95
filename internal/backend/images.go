package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"go.uber.org/zap"

	"tecelar/internal/dto"
	apperrors "tecelar/internal/errors"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// UploadImage posts one image as multipart form data. Type and size are
// enforced here, before any request leaves the process: a rejected file
// never reaches the network.
func (c *Client) UploadImage(ctx context.Context, filename string, content []byte) (*dto.UploadResponse, error) {
	if int64(len(content)) > c.maxUpload {
		return nil, apperrors.NewUploadError(filename,
			fmt.Sprintf("file is %d bytes, limit is %d", len(content), c.maxUpload))
	}

	contentType := http.DetectContentType(content)
	if !allowedImageTypes[contentType] {
		return nil, apperrors.NewUploadError(filename,
			fmt.Sprintf("unsupported type %s, only image/jpeg and image/png are accepted", contentType))
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, apperrors.NewInternalError("building upload form", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, apperrors.NewInternalError("building upload form", err)
	}
	if err := writer.Close(); err != nil {
		return nil, apperrors.NewInternalError("building upload form", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/imagens/upload", &buf)
	if err != nil {
		return nil, apperrors.NewInternalError("building upload request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("image upload failed", zap.String("filename", filename), zap.Error(err))
		return nil, apperrors.NewNetworkError("upload image", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := make([]byte, 0)
		if b, readErr := readBody(resp); readErr == nil {
			body = b
		}
		c.logger.Warn("image upload rejected by backend",
			zap.String("filename", filename), zap.Int("status", resp.StatusCode), zap.ByteString("body", body))
		return nil, apperrors.NewServerError("upload image", resp.StatusCode, string(body))
	}

	var result dto.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, apperrors.NewInternalError("decoding upload response", err)
	}

	c.logger.Info("image uploaded",
		zap.String("filename", filename), zap.String("caminhoImagem", result.CaminhoImagem))
	return &result, nil
}

// ImageExists asks the backend whether an uploaded file is still present.
// Any failure counts as absent; the caller only uses this as a hint.
func (c *Client) ImageExists(ctx context.Context, filename string) bool {
	var resp dto.ExisteResponse
	path := "/api/imagens/existe/" + url.PathEscape(filename)
	if err := c.doJSON(ctx, "check image", http.MethodGet, path, nil, &resp); err != nil {
		c.logger.Debug("image existence check failed", zap.String("filename", filename), zap.Error(err))
		return false
	}
	return resp.Existe
}

func (c *Client) DeleteImage(ctx context.Context, filename string) error {
	path := "/api/imagens/" + url.PathEscape(filename)
	return c.doJSON(ctx, "delete image", http.MethodDelete, path, nil, nil)
}

// ImageURL is the static serving path for an uploaded image.
func (c *Client) ImageURL(caminhoImagem string) string {
	return c.baseURL + "/uploads/" + caminhoImagem
}

func readBody(resp *http.Response) ([]byte, error) {
	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	return buf.Bytes(), err
}
